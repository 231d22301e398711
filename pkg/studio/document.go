package studio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/storyboard/pkg/domain"
)

// ErrNoStore is returned by Save and Load when the Studio has no DocumentStore.
var ErrNoStore = errors.New("studio has no document store")

// Export returns a deep copy of the artboard's model. Transitions and chain
// steps that point at states no longer on the artboard are left out.
func (s *Studio) Export(artboardID string) domain.Document {
	snap := s.Snapshot(artboardID)
	kept := make(map[string]bool, len(snap.States))
	for _, st := range snap.States {
		kept[st.ID] = true
	}

	doc := domain.Document{
		Version:    domain.DocumentVersion,
		ArtboardID: artboardID,
		ExportedAt: s.now(),
		States:     snap.States,
	}
	for _, t := range snap.Transitions {
		if kept[t.FromStateID] && kept[t.ToStateID] {
			doc.Transitions = append(doc.Transitions, t)
		}
	}
	for _, c := range snap.Chains {
		c = c.Clone()
		steps := c.Steps[:0]
		for _, step := range c.Steps {
			if kept[step.StateID] {
				steps = append(steps, step)
			}
		}
		c.Steps = steps
		if !kept[c.StartStateID] {
			if len(steps) == 0 {
				s.logger.Warn("chain dropped from export", "artboard", artboardID, "chain", c.ID)
				continue
			}
			c.StartStateID = steps[0].StateID
		}
		doc.Chains = append(doc.Chains, c)
	}
	return doc.Clone()
}

// Import loads a document into an artboard. Replace purges the artboard first;
// merge appends after existing states. All ids are remapped to fresh ones.
// Transitions and chain steps whose states are not part of the imported set
// are dropped, as are transitions whose pair already exists. The result counts
// what was actually imported.
func (s *Studio) Import(artboardID string, doc domain.Document, mode domain.ImportMode) domain.ImportResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode != domain.ImportMerge {
		mode = domain.ImportReplace
	}
	b := s.board(artboardID)
	if mode == domain.ImportReplace {
		s.purge(b)
	}

	now := s.now()

	var result domain.ImportResult

	// States, in document order, appended after any existing ones.
	incoming := make([]domain.AnimationState, len(doc.States))
	copy(incoming, doc.States)
	sort.SliceStable(incoming, func(i, j int) bool { return incoming[i].Order < incoming[j].Order })

	stateIDs := make(map[string]string, len(incoming))
	states := append([]domain.AnimationState(nil), b.states...)
	for _, src := range incoming {
		if _, dup := stateIDs[src.ID]; dup {
			s.logger.Warn("duplicate state id dropped from import", "artboard", artboardID, "state", src.ID, "name", src.Name)
			continue
		}
		st := src.Clone()
		st.ID = s.newID()
		st.ArtboardID = artboardID
		st.Order = len(states)
		st.HoldTime = s.clampHold(st.HoldTime)
		st.Elements = normalized(st.Elements)
		if st.Trigger == nil {
			st.Trigger = domain.AutoTrigger{}
			if len(states) == 0 {
				st.Trigger = domain.InitialTrigger{}
			}
		}
		fillTimes(&st.CreatedAt, &st.UpdatedAt, now)

		stateIDs[src.ID] = st.ID
		s.stateBoard[st.ID] = artboardID
		states = append(states, st)
		result.States++
	}
	b.states = states

	transitions := append([]domain.StateTransition(nil), b.transitions...)
	for _, src := range doc.Transitions {
		from, okFrom := stateIDs[src.FromStateID]
		to, okTo := stateIDs[src.ToStateID]
		if !okFrom || !okTo || from == to || findPair(transitions, from, to) >= 0 {
			continue
		}
		tr := src.Clone()
		tr.ID = s.newID()
		tr.FromStateID, tr.ToStateID = from, to
		fillTimes(&tr.CreatedAt, &tr.UpdatedAt, now)

		s.transitionBoard[tr.ID] = artboardID
		transitions = append(transitions, tr)
		result.Transitions++
	}
	b.transitions = transitions

	hasDefault := false
	for _, c := range b.chains {
		hasDefault = hasDefault || c.IsDefault
	}
	chains := append([]domain.AnimationChain(nil), b.chains...)
	for _, src := range doc.Chains {
		c := src.Clone()
		steps := c.Steps[:0]
		for _, step := range c.Steps {
			mapped, ok := stateIDs[step.StateID]
			if !ok {
				continue
			}
			step.ID = s.newID()
			step.StateID = mapped
			steps = append(steps, step)
		}
		c.Steps = steps

		if start, ok := stateIDs[c.StartStateID]; ok {
			c.StartStateID = start
		} else if len(steps) > 0 {
			c.StartStateID = steps[0].StateID
		} else {
			continue
		}

		c.ID = s.newID()
		c.ArtboardID = artboardID
		c.IsDefault = c.IsDefault && !hasDefault
		hasDefault = hasDefault || c.IsDefault
		fillTimes(&c.CreatedAt, &c.UpdatedAt, now)

		s.chainBoard[c.ID] = artboardID
		chains = append(chains, c)
		result.Chains++
	}
	if !hasDefault && len(chains) > 0 {
		chains[0].IsDefault = true
	}
	b.chains = chains

	s.touch(b)
	s.logger.Debug("document imported",
		"artboard", artboardID,
		"mode", mode,
		"states", result.States,
		"transitions", result.Transitions,
		"chains", result.Chains,
	)
	return result
}

// ClearArtboard removes every state, transition and chain of an artboard.
func (s *Studio) ClearArtboard(artboardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.boards[artboardID]
	if b == nil {
		return false
	}
	s.purge(b)
	s.touch(b)
	return true
}

// Save exports the artboard to the configured DocumentStore.
func (s *Studio) Save(ctx context.Context, artboardID string) error {
	if s.store == nil {
		return ErrNoStore
	}
	doc := s.Export(artboardID)
	if err := s.store.Save(ctx, artboardID, &doc); err != nil {
		return fmt.Errorf("failed to save artboard %s: %w", artboardID, err)
	}
	return nil
}

// Load imports the artboard from the configured DocumentStore.
func (s *Studio) Load(ctx context.Context, artboardID string, mode domain.ImportMode) (domain.ImportResult, error) {
	if s.store == nil {
		return domain.ImportResult{}, ErrNoStore
	}
	doc, err := s.store.Load(ctx, artboardID)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("failed to load artboard %s: %w", artboardID, err)
	}
	return s.Import(artboardID, *doc, mode), nil
}

func (s *Studio) purge(b *board) {
	for _, st := range b.states {
		delete(s.stateBoard, st.ID)
	}
	for _, tr := range b.transitions {
		delete(s.transitionBoard, tr.ID)
	}
	for _, c := range b.chains {
		delete(s.chainBoard, c.ID)
	}
	b.states, b.transitions, b.chains = nil, nil, nil
}

func fillTimes(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = now
	}
}
