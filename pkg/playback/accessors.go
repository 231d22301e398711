package playback

import "github.com/aretw0/storyboard/pkg/domain"

// AnimatedElement returns the published values of one element.
func (s *Scheduler) AnimatedElement(elementID string) (domain.AnimationStateElement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.frame.Elements[elementID]
	if !ok {
		return domain.AnimationStateElement{}, false
	}
	return el.Clone(), true
}

// Elements returns a copy of the published element map.
func (s *Scheduler) Elements() map[string]domain.AnimationStateElement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.AnimationStateElement, len(s.frame.Elements))
	for id, el := range s.frame.Elements {
		out[id] = el.Clone()
	}
	return out
}

// Frame returns the last derived frame. Its element map must not be modified.
func (s *Scheduler) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// State returns the timeline cursor.
func (s *Scheduler) State() domain.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playback
}

// ChainState returns the chain cursor.
func (s *Scheduler) ChainState() domain.ChainPlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chain
}

func (s *Scheduler) IsPlaying() bool        { return s.State().IsPlaying }
func (s *Scheduler) IsPaused() bool         { return s.State().IsPaused }
func (s *Scheduler) CurrentTime() float64   { return s.State().CurrentTime }
func (s *Scheduler) PlaybackSpeed() float64 { return s.State().PlaybackSpeed }
func (s *Scheduler) IsLooping() bool        { return s.State().Loop }

// Timeline returns the compiled timeline of the artboard.
func (s *Scheduler) Timeline() domain.ComputedTimeline {
	return s.model.Timeline(s.artboardID)
}

// TotalDuration returns the timeline length in ms.
func (s *Scheduler) TotalDuration() float64 {
	return s.Timeline().TotalDuration
}

// Progress returns progress within the active segment, or chain step.
func (s *Scheduler) Progress() float64 {
	return s.Frame().Progress
}

// CurrentTransition returns the transition being played, if any.
func (s *Scheduler) CurrentTransition() (domain.StateTransition, bool) {
	f := s.Frame()
	if f.Transition == nil {
		return domain.StateTransition{}, false
	}
	return f.Transition.Clone(), true
}

// CurrentFromState returns the state being held, or left by the current transition.
func (s *Scheduler) CurrentFromState() (domain.AnimationState, bool) {
	return s.lookupState(s.Frame().FromStateID)
}

// CurrentToState returns the target of the current transition.
func (s *Scheduler) CurrentToState() (domain.AnimationState, bool) {
	f := s.Frame()
	if f.Transition == nil {
		return domain.AnimationState{}, false
	}
	return s.lookupState(f.ToStateID)
}

func (s *Scheduler) lookupState(id string) (domain.AnimationState, bool) {
	if id == "" {
		return domain.AnimationState{}, false
	}
	st, ok := findState(s.model.Snapshot(s.artboardID).States, id)
	if !ok {
		return domain.AnimationState{}, false
	}
	return st.Clone(), true
}
