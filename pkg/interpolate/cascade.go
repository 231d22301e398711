package interpolate

import (
	"github.com/aretw0/storyboard/pkg/cascade"
	"github.com/aretw0/storyboard/pkg/domain"
)

// InterpolateElementsWithCascade computes element values when a transition's
// cascade is enabled. timeInTransition is measured from the start of the
// transition's delay window, so an element with cascade offset o starts moving
// at transitionDelay+o. Element overrides and legacy stagger are not consulted;
// an element's own timing still takes precedence and is measured from the end
// of the delay window.
func InterpolateElementsWithCascade(
	from, to []domain.AnimationStateElement,
	timeInTransition float64,
	easing domain.Easing,
	cfg domain.CascadeConfig,
	baseDuration, transitionDelay float64,
) map[string]domain.AnimationStateElement {
	ids, src, dst := counterparts(from, to)
	offsets := cascade.HierarchyOffsets(hierarchyOf(ids, src, dst), cfg)
	elapsed := timeInTransition - transitionDelay

	out := make(map[string]domain.AnimationStateElement, len(ids))
	for _, id := range ids {
		f, t := src[id], dst[id]

		sched := Schedule{Duration: baseDuration, Delay: offsets[id], Easing: easing}
		if own := OwnTiming(&f, &t); own != nil {
			sched = Schedule{Duration: own.Duration, Delay: own.Delay, Easing: own.Easing.OrDefault(easing)}
		}

		out[id] = blend(f, t, func(domain.AnimatableProperty) float64 {
			return sched.Progress(elapsed)
		})
	}
	return out
}

// CascadeDuration is the time from the end of the delay window until the last
// cascaded element completes.
func CascadeDuration(elements []domain.AnimationStateElement, cfg domain.CascadeConfig, baseDuration float64) float64 {
	var max float64
	for _, off := range cascade.HierarchyOffsets(elements, cfg) {
		if off > max {
			max = off
		}
	}
	return max + baseDuration
}
