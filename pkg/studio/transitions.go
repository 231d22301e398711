package studio

import (
	"github.com/aretw0/storyboard/pkg/cascade"
	"github.com/aretw0/storyboard/pkg/domain"
)

// CreateTransition creates the transition from -> to with default timing. If
// the pair already has a transition its id is returned instead. Both states
// must exist on the same artboard and differ.
func (s *Studio) CreateTransition(fromStateID, toStateID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	artboardID, ok := s.pairBoard(fromStateID, toStateID)
	if !ok {
		return "", false
	}
	b := s.board(artboardID)
	if i := findPair(b.transitions, fromStateID, toStateID); i >= 0 {
		return b.transitions[i].ID, true
	}

	now := s.now()
	tr := domain.StateTransition{
		ID:          s.newID(),
		FromStateID: fromStateID,
		ToStateID:   toStateID,
		Duration:    s.defaultDur,
		Easing:      s.defaultEasing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.transitions = append(append([]domain.StateTransition(nil), b.transitions...), tr)
	s.transitionBoard[tr.ID] = artboardID
	s.touch(b)

	s.logger.Debug("transition created", "transition", tr.ID, "from", fromStateID, "to", toStateID)
	return tr.ID, true
}

// Transition returns a copy of the transition with the given id.
func (s *Studio) Transition(id string) (domain.StateTransition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, i := s.findTransition(id)
	if b == nil {
		return domain.StateTransition{}, false
	}
	return b.transitions[i].Clone(), true
}

// FindTransition returns the transition for an ordered pair.
func (s *Studio) FindTransition(fromStateID, toStateID string) (domain.StateTransition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	artboardID, ok := s.stateBoard[fromStateID]
	if !ok {
		return domain.StateTransition{}, false
	}
	b := s.boards[artboardID]
	if i := findPair(b.transitions, fromStateID, toStateID); i >= 0 {
		return b.transitions[i].Clone(), true
	}
	return domain.StateTransition{}, false
}

// Transitions returns copies of the artboard's transitions in creation order.
func (s *Studio) Transitions(artboardID string) []domain.StateTransition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.boards[artboardID]
	if b == nil {
		return nil
	}
	out := make([]domain.StateTransition, len(b.transitions))
	for i, tr := range b.transitions {
		out[i] = tr.Clone()
	}
	return out
}

// UpdateTransition applies fn to a copy of the transition. Endpoints, id and
// creation time are preserved; negative durations and delays become zero.
func (s *Studio) UpdateTransition(id string, fn func(*domain.StateTransition)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findTransition(id)
	if b == nil {
		return false
	}
	old := b.transitions[i]
	next := old.Clone()
	fn(&next)

	next.ID, next.FromStateID, next.ToStateID, next.CreatedAt = old.ID, old.FromStateID, old.ToStateID, old.CreatedAt
	if next.Duration < 0 {
		next.Duration = 0
	}
	if next.Delay < 0 {
		next.Delay = 0
	}
	next.UpdatedAt = s.now()

	transitions := append([]domain.StateTransition(nil), b.transitions...)
	transitions[i] = next
	b.transitions = transitions
	s.touch(b)
	return true
}

// SetCascadePreset replaces the transition's cascade with a catalogue preset.
func (s *Studio) SetCascadePreset(id, presetID string) bool {
	cfg, ok := cascade.ApplyCascadePreset(presetID)
	if !ok {
		return false
	}
	return s.UpdateTransition(id, func(tr *domain.StateTransition) {
		tr.Cascade = &cfg
	})
}

// DeleteTransition removes a transition.
func (s *Studio) DeleteTransition(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findTransition(id)
	if b == nil {
		return false
	}
	transitions := make([]domain.StateTransition, 0, len(b.transitions)-1)
	transitions = append(transitions, b.transitions[:i]...)
	transitions = append(transitions, b.transitions[i+1:]...)
	b.transitions = transitions
	delete(s.transitionBoard, id)
	s.touch(b)
	return true
}

// DuplicateTransition copies a transition's timing onto another state pair.
// Empty endpoints keep the source's. The copy is refused when the resulting
// pair already has a transition, so the source pair can only be duplicated
// after its transition is moved or deleted.
func (s *Studio) DuplicateTransition(id, fromStateID, toStateID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findTransition(id)
	if b == nil {
		return "", false
	}
	src := b.transitions[i]
	if fromStateID == "" {
		fromStateID = src.FromStateID
	}
	if toStateID == "" {
		toStateID = src.ToStateID
	}
	artboardID, ok := s.pairBoard(fromStateID, toStateID)
	if !ok || artboardID != s.transitionBoard[id] {
		return "", false
	}
	if findPair(b.transitions, fromStateID, toStateID) >= 0 {
		return "", false
	}

	now := s.now()
	dup := src.Clone()
	dup.ID = s.newID()
	dup.FromStateID, dup.ToStateID = fromStateID, toStateID
	dup.CreatedAt, dup.UpdatedAt = now, now

	b.transitions = append(append([]domain.StateTransition(nil), b.transitions...), dup)
	s.transitionBoard[dup.ID] = artboardID
	s.touch(b)
	return dup.ID, true
}

func (s *Studio) findTransition(id string) (*board, int) {
	artboardID, ok := s.transitionBoard[id]
	if !ok {
		return nil, -1
	}
	b := s.boards[artboardID]
	for i := range b.transitions {
		if b.transitions[i].ID == id {
			return b, i
		}
	}
	return nil, -1
}

// pairBoard resolves the artboard shared by two distinct existing states.
func (s *Studio) pairBoard(fromStateID, toStateID string) (string, bool) {
	if fromStateID == toStateID {
		return "", false
	}
	from, ok := s.stateBoard[fromStateID]
	if !ok {
		return "", false
	}
	to, ok := s.stateBoard[toStateID]
	if !ok || to != from {
		return "", false
	}
	return from, true
}

func findPair(transitions []domain.StateTransition, fromStateID, toStateID string) int {
	for i := range transitions {
		if transitions[i].FromStateID == fromStateID && transitions[i].ToStateID == toStateID {
			return i
		}
	}
	return -1
}
