// Package capture builds State element snapshots from the live canvas.
//
// The canvas and its layout engine are owned by the host; this package only
// consumes their records at the boundary.
package capture

import (
	"encoding/json"

	"github.com/aretw0/storyboard/pkg/domain"
)

// Box is a canvas element as exposed by the host.
type Box struct {
	ID         string          `json:"id"`
	ParentID   string          `json:"parent_id,omitempty"`
	Name       string          `json:"name,omitempty"`
	ArtboardID string          `json:"artboard_id"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Visible    bool            `json:"visible"`
	Layout     json.RawMessage `json:"layout,omitempty"`
}

// LayoutFunc computes child positions of a box with a layout configuration.
type LayoutFunc func(parent Box, children []Box) []domain.ChildPosition

// Elements snapshots the boxes of one artboard, parents before children.
// Boxes carrying a layout configuration get a LayoutSnapshot, and when layout
// is non-nil their children take the computed positions.
func Elements(artboardID string, boxes []Box, layout LayoutFunc) []domain.AnimationStateElement {
	byID := make(map[string]Box)
	var ids []string
	for _, b := range boxes {
		if b.ArtboardID != artboardID {
			continue
		}
		if _, dup := byID[b.ID]; dup {
			continue
		}
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	children := make(map[string][]Box)
	var roots []Box
	for _, id := range ids {
		b := byID[id]
		if _, ok := byID[b.ParentID]; ok && b.ParentID != b.ID {
			children[b.ParentID] = append(children[b.ParentID], b)
			continue
		}
		roots = append(roots, b)
	}

	out := make([]domain.AnimationStateElement, 0, len(ids))
	visited := make(map[string]bool, len(ids))

	var walk func(b Box)
	walk = func(b Box) {
		if visited[b.ID] {
			return
		}
		visited[b.ID] = true

		el := toElement(b)
		kids := children[b.ID]
		if len(b.Layout) > 0 {
			snap := &domain.LayoutSnapshot{Config: append(json.RawMessage(nil), b.Layout...)}
			if layout != nil && len(kids) > 0 {
				snap.Children = layout(b, kids)
				kids = place(kids, snap.Children)
			}
			el.LayoutSnapshot = snap
		}
		out = append(out, el)
		for _, k := range kids {
			walk(k)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	// Parent cycles never reach a root.
	for _, id := range ids {
		walk(byID[id])
	}
	return out
}

func toElement(b Box) domain.AnimationStateElement {
	el := domain.NewElement(b.ID, b.X, b.Y, b.Width, b.Height)
	el.ElementName = b.Name
	el.ParentID = b.ParentID
	el.Visible = b.Visible
	return el
}

// place copies computed positions onto children.
func place(kids []Box, positions []domain.ChildPosition) []Box {
	pos := make(map[string]domain.ChildPosition, len(positions))
	for _, p := range positions {
		pos[p.ElementID] = p
	}
	out := make([]Box, len(kids))
	for i, k := range kids {
		if p, ok := pos[k.ID]; ok {
			k.X, k.Y, k.Width, k.Height = p.X, p.Y, p.Width, p.Height
		}
		out[i] = k
	}
	return out
}
