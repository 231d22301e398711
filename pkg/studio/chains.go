package studio

import (
	"github.com/aretw0/storyboard/pkg/domain"
)

// CreateChain creates a chain whose first step is startStateID. The first
// chain of an artboard becomes its default.
func (s *Studio) CreateChain(artboardID, name, startStateID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.stateBoard[startStateID]; !ok || owner != artboardID {
		return "", false
	}
	b := s.board(artboardID)
	now := s.now()
	chain := domain.AnimationChain{
		ID:           s.newID(),
		ArtboardID:   artboardID,
		Name:         name,
		StartStateID: startStateID,
		Steps:        []domain.ChainStep{{ID: s.newID(), StateID: startStateID}},
		IsDefault:    len(b.chains) == 0,
		Mode:         domain.ModeOnce,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.chains = append(append([]domain.AnimationChain(nil), b.chains...), chain)
	s.chainBoard[chain.ID] = artboardID
	s.touch(b)

	s.logger.Debug("chain created", "artboard", artboardID, "chain", chain.ID, "default", chain.IsDefault)
	return chain.ID, true
}

// Chain returns a copy of the chain with the given id.
func (s *Studio) Chain(id string) (domain.AnimationChain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, i := s.findChain(id)
	if b == nil {
		return domain.AnimationChain{}, false
	}
	return b.chains[i].Clone(), true
}

// Chains returns copies of the artboard's chains in creation order.
func (s *Studio) Chains(artboardID string) []domain.AnimationChain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.boards[artboardID]
	if b == nil {
		return nil
	}
	out := make([]domain.AnimationChain, len(b.chains))
	for i, c := range b.chains {
		out[i] = c.Clone()
	}
	return out
}

// DefaultChain returns the artboard's default chain.
func (s *Studio) DefaultChain(artboardID string) (domain.AnimationChain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.boards[artboardID]
	if b == nil {
		return domain.AnimationChain{}, false
	}
	for _, c := range b.chains {
		if c.IsDefault {
			return c.Clone(), true
		}
	}
	return domain.AnimationChain{}, false
}

// AddChainStep appends a step referencing stateID. A state may appear in any
// number of steps.
func (s *Studio) AddChainStep(chainID, stateID string, metadata map[string]any) (string, bool) {
	var stepID string
	ok := s.mutateChain(chainID, func(c *domain.AnimationChain) bool {
		if owner, ok := s.stateBoard[stateID]; !ok || owner != c.ArtboardID {
			return false
		}
		stepID = s.newID()
		step := domain.ChainStep{ID: stepID, StateID: stateID}
		if len(metadata) > 0 {
			step.Metadata = make(map[string]any, len(metadata))
			for k, v := range metadata {
				step.Metadata[k] = v
			}
		}
		c.Steps = append(c.Steps, step)
		return true
	})
	return stepID, ok
}

// RemoveChainStep removes a step. The start state follows the new first step.
func (s *Studio) RemoveChainStep(chainID, stepID string) bool {
	return s.mutateChain(chainID, func(c *domain.AnimationChain) bool {
		i := stepIndex(c.Steps, stepID)
		if i < 0 {
			return false
		}
		c.Steps = append(c.Steps[:i], c.Steps[i+1:]...)
		if len(c.Steps) > 0 {
			c.StartStateID = c.Steps[0].StateID
		}
		return true
	})
}

// MoveChainStep moves a step to index, clamped to the valid range.
func (s *Studio) MoveChainStep(chainID, stepID string, index int) bool {
	return s.mutateChain(chainID, func(c *domain.AnimationChain) bool {
		i := stepIndex(c.Steps, stepID)
		if i < 0 {
			return false
		}
		if index < 0 {
			index = 0
		}
		if index >= len(c.Steps) {
			index = len(c.Steps) - 1
		}
		step := c.Steps[i]
		rest := append(c.Steps[:i:i], c.Steps[i+1:]...)
		c.Steps = append(rest[:index:index], append([]domain.ChainStep{step}, rest[index:]...)...)
		c.StartStateID = c.Steps[0].StateID
		return true
	})
}

// UpdateChain applies fn to a copy of the chain. Id, artboard, default flag and
// creation time are preserved; use SetDefaultChain to change the default.
func (s *Studio) UpdateChain(id string, fn func(*domain.AnimationChain)) bool {
	return s.mutateChain(id, func(c *domain.AnimationChain) bool {
		old := *c
		fn(c)
		c.ID, c.ArtboardID, c.IsDefault, c.CreatedAt = old.ID, old.ArtboardID, old.IsDefault, old.CreatedAt
		return true
	})
}

// SetDefaultChain makes id the artboard's only default chain.
func (s *Studio) SetDefaultChain(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findChain(id)
	if b == nil {
		return false
	}
	now := s.now()
	chains := append([]domain.AnimationChain(nil), b.chains...)
	for j := range chains {
		want := j == i
		if chains[j].IsDefault != want {
			c := chains[j]
			c.IsDefault = want
			c.UpdatedAt = now
			chains[j] = c
		}
	}
	b.chains = chains
	s.touch(b)
	return true
}

// DeleteChain removes a chain. Deleting the default promotes the first remaining chain.
func (s *Studio) DeleteChain(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findChain(id)
	if b == nil {
		return false
	}
	wasDefault := b.chains[i].IsDefault
	chains := make([]domain.AnimationChain, 0, len(b.chains)-1)
	chains = append(chains, b.chains[:i]...)
	chains = append(chains, b.chains[i+1:]...)
	if wasDefault && len(chains) > 0 {
		c := chains[0]
		c.IsDefault = true
		c.UpdatedAt = s.now()
		chains[0] = c
	}
	b.chains = chains
	delete(s.chainBoard, id)
	s.touch(b)
	return true
}

// DuplicateChain copies a chain under a new id with fresh step ids. The copy
// is never the default.
func (s *Studio) DuplicateChain(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findChain(id)
	if b == nil {
		return "", false
	}
	now := s.now()
	dup := b.chains[i].Clone()
	dup.ID = s.newID()
	dup.IsDefault = false
	dup.CreatedAt, dup.UpdatedAt = now, now
	for j := range dup.Steps {
		dup.Steps[j].ID = s.newID()
	}

	b.chains = append(append([]domain.AnimationChain(nil), b.chains...), dup)
	s.chainBoard[dup.ID] = s.chainBoard[id]
	s.touch(b)
	return dup.ID, true
}

// mutateChain applies fn to a copy of the chain and stores it when fn reports a change.
func (s *Studio) mutateChain(id string, fn func(*domain.AnimationChain) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := s.findChain(id)
	if b == nil {
		return false
	}
	next := b.chains[i].Clone()
	if !fn(&next) {
		return false
	}
	next.UpdatedAt = s.now()

	chains := append([]domain.AnimationChain(nil), b.chains...)
	chains[i] = next
	b.chains = chains
	s.touch(b)
	return true
}

func (s *Studio) findChain(id string) (*board, int) {
	artboardID, ok := s.chainBoard[id]
	if !ok {
		return nil, -1
	}
	b := s.boards[artboardID]
	for i := range b.chains {
		if b.chains[i].ID == id {
			return b, i
		}
	}
	return nil, -1
}

func stepIndex(steps []domain.ChainStep, stepID string) int {
	for i := range steps {
		if steps[i].ID == stepID {
			return i
		}
	}
	return -1
}
