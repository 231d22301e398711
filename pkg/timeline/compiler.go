package timeline

import (
	"sort"

	"github.com/aretw0/storyboard/pkg/domain"
)

// Compute sorts states by Order and compiles them with ComputeSequence.
func Compute(states []domain.AnimationState, transitions []domain.StateTransition) domain.ComputedTimeline {
	ordered := make([]domain.AnimationState, len(states))
	copy(ordered, states)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })
	return ComputeSequence(ordered, transitions)
}

// ComputeSequence compiles states in the given order. A state may appear more
// than once (chains); its StateTimings entry then records the last occurrence.
func ComputeSequence(states []domain.AnimationState, transitions []domain.StateTransition) domain.ComputedTimeline {
	tl := domain.ComputedTimeline{
		Segments:          []domain.Segment{},
		StateTimings:      make(map[string]domain.StateTiming, len(states)),
		TransitionTimings: make(map[string]domain.TransitionTiming),
	}
	if len(states) == 0 {
		return tl
	}

	pairs := Index(transitions)
	currentTime := 0.0

	for i, state := range states {
		hold := state.HoldTime
		if hold < 0 {
			hold = 0
		}
		stateStart := currentTime
		holdEnd := stateStart + hold

		if i == len(states)-1 {
			tl.Segments = append(tl.Segments, domain.Segment{
				StartTime:   stateStart,
				EndTime:     holdEnd,
				Type:        domain.SegmentState,
				ReferenceID: state.ID,
				Label:       state.Name,
			})
			tl.StateTimings[state.ID] = domain.StateTiming{
				StartTime:   stateStart,
				HoldEndTime: holdEnd,
				EndTime:     holdEnd,
				HoldTime:    hold,
			}
			currentTime = holdEnd
			break
		}

		next := states[i+1]
		id, delay, duration := Resolve(pairs, state.ID, next.ID)
		transitionStart := holdEnd + delay
		transitionEnd := transitionStart + duration

		tl.Segments = append(tl.Segments,
			domain.Segment{
				StartTime:   stateStart,
				EndTime:     transitionStart,
				Type:        domain.SegmentState,
				ReferenceID: state.ID,
				Label:       state.Name,
			},
			domain.Segment{
				StartTime:   transitionStart,
				EndTime:     transitionEnd,
				Type:        domain.SegmentTransition,
				ReferenceID: id,
				Label:       state.Name + " → " + next.Name,
			},
		)
		tl.StateTimings[state.ID] = domain.StateTiming{
			StartTime:   stateStart,
			HoldEndTime: holdEnd,
			EndTime:     transitionStart,
			HoldTime:    hold,
		}
		tl.TransitionTimings[id] = domain.TransitionTiming{
			StartTime:   transitionStart,
			EndTime:     transitionEnd,
			FromStateID: state.ID,
			ToStateID:   next.ID,
		}
		currentTime = transitionEnd
	}

	tl.TotalDuration = currentTime
	return tl
}

// Index maps "from\x00to" pairs to their transition. The first transition of a
// pair wins if the input violates uniqueness.
func Index(transitions []domain.StateTransition) map[string]*domain.StateTransition {
	idx := make(map[string]*domain.StateTransition, len(transitions))
	for i := range transitions {
		k := pairKey(transitions[i].FromStateID, transitions[i].ToStateID)
		if _, ok := idx[k]; !ok {
			idx[k] = &transitions[i]
		}
	}
	return idx
}

// Lookup returns the explicit transition between two states, if any.
func Lookup(idx map[string]*domain.StateTransition, fromID, toID string) (*domain.StateTransition, bool) {
	t, ok := idx[pairKey(fromID, toID)]
	return t, ok
}

// Resolve returns the id, delay and duration used between two states, falling
// back to the implicit default transition.
func Resolve(idx map[string]*domain.StateTransition, fromID, toID string) (id string, delay, duration float64) {
	if t, ok := Lookup(idx, fromID, toID); ok {
		delay, duration = t.Delay, t.Duration
		if delay < 0 {
			delay = 0
		}
		if duration < 0 {
			duration = 0
		}
		return t.ID, delay, duration
	}
	return domain.ImplicitTransitionID(fromID, toID), 0, domain.DefaultTransitionDuration
}

// Implicit builds the synthetic transition used when no explicit one exists.
func Implicit(fromID, toID string) domain.StateTransition {
	return domain.StateTransition{
		ID:          domain.ImplicitTransitionID(fromID, toID),
		FromStateID: fromID,
		ToStateID:   toID,
		Duration:    domain.DefaultTransitionDuration,
		Easing:      domain.DefaultEasing,
	}
}

func pairKey(fromID, toID string) string {
	return fromID + "\x00" + toID
}
