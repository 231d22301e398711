package interpolate

import "github.com/aretw0/storyboard/pkg/domain"

// Schedule is a resolved per-element timing window, measured in ms from the
// start of the transition segment.
type Schedule struct {
	Duration float64
	Delay    float64
	Easing   domain.Easing
}

// Progress returns the eased progress at elapsed ms. A zero-length window
// completes as soon as its delay has passed.
func (s Schedule) Progress(elapsed float64) float64 {
	local := elapsed - s.Delay
	if s.Duration <= 0 {
		if local >= 0 {
			return 1
		}
		return 0
	}
	return Ease(s.Easing, local/s.Duration)
}

// Timing pairs the schedule that drives an element with the base schedule used
// for properties outside an override's property list.
type Timing struct {
	Primary    Schedule
	Base       Schedule
	Properties []domain.AnimatableProperty
}

// For returns the schedule driving property p.
func (t Timing) For(p domain.AnimatableProperty) Schedule {
	if len(t.Properties) == 0 {
		return t.Primary
	}
	for _, q := range t.Properties {
		if q == p {
			return t.Primary
		}
	}
	return t.Base
}

// OwnTiming returns the element-level timing, preferring the target snapshot.
func OwnTiming(from, to *domain.AnimationStateElement) *domain.ElementTiming {
	if to != nil && to.Timing != nil {
		return to.Timing
	}
	if from != nil && from.Timing != nil {
		return from.Timing
	}
	return nil
}

// ResolveTiming picks an element's schedule. Priority, highest first: the
// element's own timing, its override entry, the transition base timing.
func ResolveTiming(own *domain.ElementTiming, override *domain.ElementOverride, base Schedule) Timing {
	if own != nil {
		return Timing{
			Primary: Schedule{Duration: own.Duration, Delay: own.Delay, Easing: own.Easing.OrDefault(base.Easing)},
			Base:    base,
		}
	}
	if override != nil {
		return Timing{
			Primary:    Schedule{Duration: override.Duration, Delay: override.Delay, Easing: override.Easing.OrDefault(base.Easing)},
			Base:       base,
			Properties: override.Properties,
		}
	}
	return Timing{Primary: base, Base: base}
}
