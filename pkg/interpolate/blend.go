package interpolate

import "github.com/aretw0/storyboard/pkg/domain"

var numeric = []domain.AnimatableProperty{
	domain.PropX, domain.PropY, domain.PropWidth, domain.PropHeight,
	domain.PropScale, domain.PropRotation,
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// blend interpolates from toward to with per-property eased progress.
func blend(from, to domain.AnimationStateElement, eased func(domain.AnimatableProperty) float64) domain.AnimationStateElement {
	done := true
	for _, p := range domain.AllProperties {
		if eased(p) < 1 {
			done = false
			break
		}
	}

	out := from.Clone()
	if done {
		out = to.Clone()
	}

	for _, p := range numeric {
		out.SetProperty(p, lerp(from.Property(p), to.Property(p), eased(p)))
	}

	out.Opacity = lerp(from.Opacity, to.Opacity, eased(domain.PropOpacity))
	vis := eased(domain.PropVisible)
	switch {
	case from.Visible == to.Visible:
		out.Visible = to.Visible
	case from.Visible:
		// Fading out: visible until the end, opacity scaled down.
		if vis >= 1 {
			out.Visible = false
		} else {
			out.Visible = true
			out.Opacity *= 1 - vis
		}
	default:
		if vis <= 0 {
			out.Visible = false
		} else {
			out.Visible = true
			out.Opacity *= vis
		}
	}

	out.Normalize()
	return out
}

// counterparts pairs elements by id. Elements present only in from hold their
// values, or fade out when marked as exiting. Elements present only in to fade
// in from zero opacity unless marked as persisting.
func counterparts(from, to []domain.AnimationStateElement) (ids []string, src, dst map[string]domain.AnimationStateElement) {
	src = make(map[string]domain.AnimationStateElement, len(from))
	dst = make(map[string]domain.AnimationStateElement, len(to))
	for _, el := range from {
		if _, dup := src[el.ElementID]; dup {
			continue
		}
		src[el.ElementID] = el
		ids = append(ids, el.ElementID)
	}
	for _, el := range to {
		if _, dup := dst[el.ElementID]; dup {
			continue
		}
		dst[el.ElementID] = el
		if _, ok := src[el.ElementID]; !ok {
			ids = append(ids, el.ElementID)
		}
	}

	for _, id := range ids {
		f, inFrom := src[id]
		t, inTo := dst[id]
		switch {
		case !inTo:
			t = f.Clone()
			if f.EnterExitType == domain.EnterExitExit {
				t.Visible = false
				t.Opacity = 0
			}
			dst[id] = t
		case !inFrom:
			f = t.Clone()
			if t.EnterExitType != domain.EnterExitPersist {
				f.Visible = false
				f.Opacity = 0
			}
			src[id] = f
		}
	}
	return ids, src, dst
}

// hierarchyOf returns the snapshots used to compute cascade offsets, in id order.
func hierarchyOf(ids []string, src, dst map[string]domain.AnimationStateElement) []domain.AnimationStateElement {
	out := make([]domain.AnimationStateElement, 0, len(ids))
	for _, id := range ids {
		el := dst[id]
		if s, ok := src[id]; ok && s.ParentID != "" && el.ParentID == "" {
			el.ParentID = s.ParentID
		}
		out = append(out, el)
	}
	return out
}
