package interpolate

import (
	"github.com/aretw0/storyboard/pkg/cascade"
	"github.com/aretw0/storyboard/pkg/domain"
)

// InterpolateElements computes element values at a global transition progress
// in [0,1]. Each element's elapsed time is progress*baseDuration, evaluated
// against its resolved schedule. Results are keyed by element id.
func InterpolateElements(
	from, to []domain.AnimationStateElement,
	progress float64,
	easing domain.Easing,
	overrides map[string]domain.ElementOverride,
	baseDuration float64,
) map[string]domain.AnimationStateElement {
	progress = clamp01(progress)
	elapsed := progress * baseDuration
	base := Schedule{Duration: baseDuration, Easing: easing}

	ids, src, dst := counterparts(from, to)
	out := make(map[string]domain.AnimationStateElement, len(ids))
	for _, id := range ids {
		f, t := src[id], dst[id]

		var ov *domain.ElementOverride
		if o, ok := overrides[id]; ok {
			ov = &o
		}
		timing := ResolveTiming(OwnTiming(&f, &t), ov, base)

		out[id] = blend(f, t, func(p domain.AnimatableProperty) float64 {
			return timing.For(p).Progress(elapsed)
		})
	}
	return out
}

// ApplyLegacyStagger folds a flat stagger record into an override map. Each
// element's stagger delay replaces only the delay of an existing override;
// elements without one get a new entry on the base duration and easing. The
// input map is not modified.
func ApplyLegacyStagger(
	overrides map[string]domain.ElementOverride,
	elementIDs []string,
	stagger *domain.LegacyStagger,
	baseDuration float64,
	easing domain.Easing,
) map[string]domain.ElementOverride {
	out := make(map[string]domain.ElementOverride, len(overrides)+len(elementIDs))
	for id, o := range overrides {
		out[id] = o
	}
	if stagger == nil || !stagger.Enabled {
		return out
	}
	for id, delay := range cascade.CalculateStaggerDelays(elementIDs, stagger.Delay, stagger.From) {
		o, ok := out[id]
		if !ok {
			o = domain.ElementOverride{Duration: baseDuration, Easing: easing}
		}
		o.Delay = delay
		out[id] = o
	}
	return out
}

// Apply interpolates tr at elapsed ms after its segment start, taking the
// cascade path when the transition enables it.
func Apply(from, to []domain.AnimationStateElement, tr domain.StateTransition, elapsed float64) map[string]domain.AnimationStateElement {
	if tr.CascadeEnabled() {
		return InterpolateElementsWithCascade(from, to, elapsed+tr.Delay, tr.Easing, *tr.Cascade, tr.Duration, tr.Delay)
	}

	overrides := tr.ElementOverrides
	if tr.Stagger != nil && tr.Stagger.Enabled {
		ids := make([]string, len(from))
		for i, el := range from {
			ids[i] = el.ElementID
		}
		overrides = ApplyLegacyStagger(overrides, ids, tr.Stagger, tr.Duration, tr.Easing)
	}

	progress := 1.0
	if tr.Duration > 0 {
		progress = elapsed / tr.Duration
	}
	return InterpolateElements(from, to, progress, tr.Easing, overrides, tr.Duration)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
