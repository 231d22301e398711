package studio

import (
	"github.com/aretw0/storyboard/pkg/domain"
)

// CreateState appends a state to the artboard. The first state of an artboard
// gets the initial trigger, later ones an auto trigger.
func (s *Studio) CreateState(artboardID, name string, elements []domain.AnimationStateElement) domain.AnimationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board(artboardID)
	now := s.now()

	var trig domain.Trigger = domain.AutoTrigger{}
	if len(b.states) == 0 {
		trig = domain.InitialTrigger{}
	}

	state := domain.AnimationState{
		ID:         s.newID(),
		ArtboardID: artboardID,
		Name:       name,
		Order:      len(b.states),
		Trigger:    trig,
		HoldTime:   s.clampHold(s.defaultHold),
		Elements:   normalized(elements),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	b.states = append(append([]domain.AnimationState(nil), b.states...), state)
	s.stateBoard[state.ID] = artboardID
	s.touch(b)

	s.logger.Debug("state created", "artboard", artboardID, "state", state.ID, "order", state.Order)
	return state.Clone()
}

// State returns a copy of the state with the given id.
func (s *Studio) State(id string) (domain.AnimationState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, i := s.findState(id)
	if b == nil {
		return domain.AnimationState{}, false
	}
	return b.states[i].Clone(), true
}

// States returns copies of the artboard's states in order.
func (s *Studio) States(artboardID string) []domain.AnimationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.boards[artboardID]
	if b == nil {
		return nil
	}
	out := make([]domain.AnimationState, len(b.states))
	for i, st := range b.states {
		out[i] = st.Clone()
	}
	return out
}

// UpdateState applies fn to a copy of the state and stores the result. The id,
// artboard, order and creation time cannot be changed through fn; the hold
// time is re-clamped.
func (s *Studio) UpdateState(id string, fn func(*domain.AnimationState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findState(id)
	if b == nil {
		return false
	}
	old := b.states[i]
	next := old.Clone()
	fn(&next)

	next.ID, next.ArtboardID, next.Order, next.CreatedAt = old.ID, old.ArtboardID, old.Order, old.CreatedAt
	next.HoldTime = s.clampHold(next.HoldTime)
	next.Elements = normalized(next.Elements)
	next.UpdatedAt = s.now()

	s.replaceState(b, i, next)
	return true
}

// SetStateElements replaces the state's element snapshots.
func (s *Studio) SetStateElements(id string, elements []domain.AnimationStateElement) bool {
	return s.UpdateState(id, func(st *domain.AnimationState) {
		st.Elements = elements
	})
}

// UpdateElement applies fn to one element snapshot of a state.
func (s *Studio) UpdateElement(stateID, elementID string, fn func(*domain.AnimationStateElement)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findState(stateID)
	if b == nil {
		return false
	}
	next := b.states[i].Clone()
	found := false
	for j := range next.Elements {
		if next.Elements[j].ElementID == elementID {
			fn(&next.Elements[j])
			next.Elements[j].ElementID = elementID
			next.Elements[j].Normalize()
			found = true
			break
		}
	}
	if !found {
		return false
	}
	next.UpdatedAt = s.now()
	s.replaceState(b, i, next)
	return true
}

// DeleteState removes a state and renumbers its siblings to 0..N-1.
// Transitions and chain steps referencing it are kept and filtered at use.
func (s *Studio) DeleteState(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findState(id)
	if b == nil {
		return false
	}
	states := make([]domain.AnimationState, 0, len(b.states)-1)
	states = append(states, b.states[:i]...)
	states = append(states, b.states[i+1:]...)
	b.states = s.renumber(states)
	delete(s.stateBoard, id)
	s.touch(b)

	s.logger.Debug("state deleted", "state", id)
	return true
}

// DuplicateState copies a state under a new id, inserted right after the source.
func (s *Studio) DuplicateState(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findState(id)
	if b == nil {
		return "", false
	}
	now := s.now()
	dup := b.states[i].Clone()
	dup.ID = s.newID()
	dup.CreatedAt, dup.UpdatedAt = now, now

	states := make([]domain.AnimationState, 0, len(b.states)+1)
	states = append(states, b.states[:i+1]...)
	states = append(states, dup)
	states = append(states, b.states[i+1:]...)
	b.states = s.renumber(states)
	s.stateBoard[dup.ID] = s.stateBoard[id]
	s.touch(b)

	return dup.ID, true
}

// MoveState moves a state to a new position, clamped to the valid range, and
// renumbers the artboard.
func (s *Studio) MoveState(id string, order int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findState(id)
	if b == nil {
		return false
	}
	if order < 0 {
		order = 0
	}
	if order >= len(b.states) {
		order = len(b.states) - 1
	}
	if order == i {
		return true
	}

	moved := b.states[i]
	states := make([]domain.AnimationState, 0, len(b.states))
	states = append(states, b.states[:i]...)
	states = append(states, b.states[i+1:]...)
	states = append(states[:order], append([]domain.AnimationState{moved}, states[order:]...)...)
	b.states = s.renumber(states)
	s.touch(b)
	return true
}

func (s *Studio) findState(id string) (*board, int) {
	artboardID, ok := s.stateBoard[id]
	if !ok {
		return nil, -1
	}
	b := s.boards[artboardID]
	for i := range b.states {
		if b.states[i].ID == id {
			return b, i
		}
	}
	return nil, -1
}

func (s *Studio) replaceState(b *board, i int, next domain.AnimationState) {
	states := append([]domain.AnimationState(nil), b.states...)
	states[i] = next
	b.states = states
	s.touch(b)
}

// renumber rewrites Order to match slice position. Records whose order changes
// are replaced, never modified in place.
func (s *Studio) renumber(states []domain.AnimationState) []domain.AnimationState {
	now := s.now()
	for i := range states {
		if states[i].Order != i {
			st := states[i]
			st.Order = i
			st.UpdatedAt = now
			states[i] = st
		}
	}
	return states
}

func normalized(elements []domain.AnimationStateElement) []domain.AnimationStateElement {
	if elements == nil {
		return nil
	}
	out := make([]domain.AnimationStateElement, len(elements))
	for i, el := range elements {
		out[i] = el.Clone()
		out[i].Normalize()
	}
	return out
}
