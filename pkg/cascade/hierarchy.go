package cascade

import "github.com/aretw0/storyboard/pkg/domain"

// HierarchyOffsets computes the cascade offset (ms) of every element.
//
// Elements are grouped by parent. Within a group, siblings are staggered by
// cfg.Stagger using snapshot order. A relative element starts at its parent's
// offset plus one step plus its sibling delay. An independent element inherits
// nothing: its offset is zero and its own children cascade from zero.
// Elements whose parent is not part of the snapshot are treated as roots.
// Disabled configs yield zero for every element.
func HierarchyOffsets(elements []domain.AnimationStateElement, cfg domain.CascadeConfig) map[string]float64 {
	offsets := make(map[string]float64, len(elements))
	for _, el := range elements {
		offsets[el.ElementID] = 0
	}
	if !cfg.Enabled || cfg.Stagger.PerElementDelay == 0 || len(elements) == 0 {
		return offsets
	}

	byID := make(map[string]domain.AnimationStateElement, len(elements))
	for _, el := range elements {
		if _, dup := byID[el.ElementID]; !dup {
			byID[el.ElementID] = el
		}
	}

	children := make(map[string][]string)
	var roots []string
	seen := make(map[string]bool, len(elements))
	for _, el := range elements {
		if seen[el.ElementID] {
			continue
		}
		seen[el.ElementID] = true
		parent := el.ParentID
		if _, ok := byID[parent]; !ok || parent == el.ElementID {
			roots = append(roots, el.ElementID)
			continue
		}
		children[parent] = append(children[parent], el.ElementID)
	}

	step := cfg.Stagger.PerElementDelay
	origin := cfg.Stagger.Origin
	visited := make(map[string]bool, len(elements))

	var walk func(ids []string, base float64, nested bool)
	walk = func(ids []string, base float64, nested bool) {
		delays := CalculateStaggerDelays(ids, step, origin)
		for _, id := range ids {
			if visited[id] {
				continue
			}
			visited[id] = true

			offset := 0.0
			if byID[id].Inheritance() == domain.InheritRelative {
				offset = delays[id]
				if nested {
					offset += base + step
				}
			}
			offsets[id] = offset
			walk(children[id], offset, true)
		}
	}
	walk(roots, 0, false)

	// Elements caught in a parent cycle never reach a root; stagger them flat.
	var orphans []string
	for _, el := range elements {
		if !visited[el.ElementID] {
			orphans = append(orphans, el.ElementID)
		}
	}
	if len(orphans) > 0 {
		walk(orphans, 0, false)
	}
	return offsets
}

// Depths returns each element's depth in the snapshot hierarchy (roots are 0).
func Depths(elements []domain.AnimationStateElement) map[string]int {
	parents := make(map[string]string, len(elements))
	for _, el := range elements {
		parents[el.ElementID] = el.ParentID
	}
	depths := make(map[string]int, len(elements))
	for _, el := range elements {
		d := 0
		cur := el.ParentID
		guard := make(map[string]bool)
		for cur != "" && !guard[cur] {
			if _, ok := parents[cur]; !ok {
				break
			}
			guard[cur] = true
			d++
			cur = parents[cur]
		}
		depths[el.ElementID] = d
	}
	return depths
}
