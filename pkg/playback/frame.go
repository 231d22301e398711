package playback

import (
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/interpolate"
	"github.com/aretw0/storyboard/pkg/studio"
	"github.com/aretw0/storyboard/pkg/timeline"
)

// Frame is the derived output for one instant.
type Frame struct {
	Time         float64 `json:"time"`
	SegmentIndex int     `json:"segment_index"`
	// Segment is the zero value when SegmentIndex is -1.
	Segment     domain.Segment                          `json:"segment"`
	Transition  *domain.StateTransition                 `json:"transition,omitempty"`
	FromStateID string                                  `json:"from_state_id,omitempty"`
	ToStateID   string                                  `json:"to_state_id,omitempty"`
	Progress    float64                                 `json:"progress"`
	Elements    map[string]domain.AnimationStateElement `json:"elements"`
}

// Evaluate samples the timeline of board at time t (ms). Transitions whose
// states no longer exist fall back to whichever side is still present.
func Evaluate(board studio.Board, tl domain.ComputedTimeline, t float64) Frame {
	frame := Frame{Time: t, SegmentIndex: -1, Elements: map[string]domain.AnimationStateElement{}}

	idx := timeline.ActiveSegment(tl, t)
	if idx < 0 {
		return frame
	}
	seg := tl.Segments[idx]
	frame.SegmentIndex = idx
	frame.Segment = seg
	frame.Progress = timeline.Progress(seg, t)

	if seg.Type == domain.SegmentState {
		frame.FromStateID = seg.ReferenceID
		if st, ok := findState(board.States, seg.ReferenceID); ok {
			frame.Elements = elementMap(st.Elements)
		}
		return frame
	}

	timing, ok := tl.TransitionTimings[seg.ReferenceID]
	if !ok {
		return frame
	}
	frame.FromStateID, frame.ToStateID = timing.FromStateID, timing.ToStateID

	tr := transitionFor(board.Transitions, seg.ReferenceID, timing.FromStateID, timing.ToStateID)
	frame.Transition = &tr
	frame.Elements = blendStates(board.States, tr, t-seg.StartTime)
	return frame
}

// transitionFor resolves a timeline reference to an explicit or implicit transition.
func transitionFor(transitions []domain.StateTransition, id, fromID, toID string) domain.StateTransition {
	if !domain.IsImplicitTransitionID(id) {
		for _, tr := range transitions {
			if tr.ID == id {
				return tr
			}
		}
	}
	if tr, ok := timeline.Lookup(timeline.Index(transitions), fromID, toID); ok {
		return *tr
	}
	return timeline.Implicit(fromID, toID)
}

// blendStates interpolates tr at elapsed ms after its segment start.
func blendStates(states []domain.AnimationState, tr domain.StateTransition, elapsed float64) map[string]domain.AnimationStateElement {
	from, okFrom := findState(states, tr.FromStateID)
	to, okTo := findState(states, tr.ToStateID)
	switch {
	case okFrom && okTo:
		return interpolate.Apply(from.Elements, to.Elements, tr, elapsed)
	case okFrom:
		return elementMap(from.Elements)
	case okTo:
		return elementMap(to.Elements)
	}
	return map[string]domain.AnimationStateElement{}
}

func findState(states []domain.AnimationState, id string) (domain.AnimationState, bool) {
	for _, st := range states {
		if st.ID == id {
			return st, true
		}
	}
	return domain.AnimationState{}, false
}

func elementMap(elements []domain.AnimationStateElement) map[string]domain.AnimationStateElement {
	out := make(map[string]domain.AnimationStateElement, len(elements))
	for _, el := range elements {
		if _, dup := out[el.ElementID]; !dup {
			out[el.ElementID] = el.Clone()
		}
	}
	return out
}
