package playback

import (
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/interpolate"
	"github.com/aretw0/storyboard/pkg/studio"
	"github.com/aretw0/storyboard/pkg/timeline"
)

// resolvedStep is a chain step whose state exists.
type resolvedStep struct {
	step  domain.ChainStep
	state domain.AnimationState
	hold  float64
}

// stepPlan is the schedule of one step: its hold, then the transition toward
// the neighboring step in the walking direction, if any.
type stepPlan struct {
	hold       float64
	next       int
	hasNext    bool
	transition domain.StateTransition
	total      float64
}

// resolveSteps drops steps that reference missing states.
func resolveSteps(board studio.Board, chain domain.AnimationChain) []resolvedStep {
	steps := make([]resolvedStep, 0, len(chain.Steps))
	for _, step := range chain.Steps {
		st, ok := findState(board.States, step.StateID)
		if !ok {
			continue
		}
		hold := st.HoldTime
		if h := step.Options().HoldTime; h != nil && *h >= 0 {
			hold = *h
		}
		steps = append(steps, resolvedStep{step: step, state: st, hold: hold})
	}
	return steps
}

func neighbor(n, i int, reversing bool) (int, bool) {
	if reversing {
		return i - 1, i-1 >= 0
	}
	return i + 1, i+1 < n
}

func planStep(transitions []domain.StateTransition, steps []resolvedStep, i int, reversing bool) stepPlan {
	p := stepPlan{hold: steps[i].hold}
	p.total = p.hold
	p.next, p.hasNext = neighbor(len(steps), i, reversing)
	if !p.hasNext {
		return p
	}
	fromID, toID := steps[i].state.ID, steps[p.next].state.ID
	if tr, ok := timeline.Lookup(timeline.Index(transitions), fromID, toID); ok {
		p.transition = *tr
	} else {
		p.transition = timeline.Implicit(fromID, toID)
	}
	p.total += p.transition.Delay + p.transition.Duration
	return p
}

// sampleStep derives element values at elapsed ms into step i.
func sampleStep(steps []resolvedStep, p stepPlan, i int, elapsed float64) map[string]domain.AnimationStateElement {
	if !p.hasNext {
		return elementMap(steps[i].state.Elements)
	}
	inSegment := elapsed - p.hold - p.transition.Delay
	if inSegment < 0 {
		return elementMap(steps[i].state.Elements)
	}
	return interpolate.Apply(steps[i].state.Elements, steps[p.next].state.Elements, p.transition, inSegment)
}

// EvaluateChain samples a chain at the given cursor. Unknown chains and chains
// without resolvable steps yield an empty frame.
func EvaluateChain(board studio.Board, chainID string, cursor domain.ChainPlaybackState) Frame {
	frame := Frame{Time: cursor.ElapsedTime, SegmentIndex: -1, Elements: map[string]domain.AnimationStateElement{}}

	chain, ok := findChain(board.Chains, chainID)
	if !ok {
		return frame
	}
	steps := resolveSteps(board, chain)
	if len(steps) == 0 {
		return frame
	}
	i := clampIndex(cursor.CurrentStepIndex, len(steps))
	p := planStep(board.Transitions, steps, i, cursor.IsReversing)

	frame.SegmentIndex = i
	frame.FromStateID = steps[i].state.ID
	frame.Elements = sampleStep(steps, p, i, cursor.ElapsedTime)
	frame.Progress = 1
	if p.total > 0 {
		frame.Progress = cursor.ElapsedTime / p.total
		if frame.Progress > 1 {
			frame.Progress = 1
		}
	}
	if p.hasNext {
		frame.ToStateID = steps[p.next].state.ID
		if cursor.ElapsedTime >= p.hold+p.transition.Delay {
			tr := p.transition
			frame.Transition = &tr
		}
	}
	return frame
}

func findChain(chains []domain.AnimationChain, id string) (domain.AnimationChain, bool) {
	for _, c := range chains {
		if c.ID == id {
			return c, true
		}
	}
	return domain.AnimationChain{}, false
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
