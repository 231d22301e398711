package dsl

import (
	"fmt"

	"github.com/aretw0/storyboard/internal/validator"
	"github.com/aretw0/storyboard/pkg/domain"
)

// Builder manages the artboard construction.
type Builder struct {
	artboardID  string
	states      []*StateBuilder
	byID        map[string]*StateBuilder
	transitions []*TransitionBuilder
	chains      []*ChainBuilder
}

// New creates a new artboard builder.
func New(artboardID string) *Builder {
	return &Builder{
		artboardID: artboardID,
		byID:       make(map[string]*StateBuilder),
	}
}

// State creates a new state in the artboard.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.byID[id]; ok {
		return sb
	}
	sb := &StateBuilder{
		state: domain.AnimationState{
			ID:         id,
			ArtboardID: b.artboardID,
			Name:       id,
			Order:      len(b.states),
			HoldTime:   domain.DefaultHoldTime,
		},
		builder: b,
	}
	b.states = append(b.states, sb)
	b.byID[id] = sb
	return sb
}

// Chain creates a new chain. The first declared chain is the default one.
func (b *Builder) Chain(id, name string) *ChainBuilder {
	for _, cb := range b.chains {
		if cb.chain.ID == id {
			return cb
		}
	}
	cb := &ChainBuilder{
		chain: domain.AnimationChain{
			ID:         id,
			ArtboardID: b.artboardID,
			Name:       name,
			IsDefault:  len(b.chains) == 0,
			Mode:       domain.ModeOnce,
		},
		builder: b,
	}
	b.chains = append(b.chains, cb)
	return cb
}

// Build compiles the artboard into a document and validates it.
func (b *Builder) Build() (domain.Document, error) {
	doc := domain.Document{
		Version:     domain.DocumentVersion,
		ArtboardID:  b.artboardID,
		States:      make([]domain.AnimationState, 0, len(b.states)),
		Transitions: make([]domain.StateTransition, 0, len(b.transitions)),
		Chains:      make([]domain.AnimationChain, 0, len(b.chains)),
	}
	for _, sb := range b.states {
		doc.States = append(doc.States, sb.state.Clone())
	}
	for _, tb := range b.transitions {
		doc.Transitions = append(doc.Transitions, tb.transition.Clone())
	}
	for _, cb := range b.chains {
		doc.Chains = append(doc.Chains, cb.chain.Clone())
	}

	if err := validator.ValidateDocument(doc); err != nil {
		return domain.Document{}, fmt.Errorf("failed to build artboard %s: %w", b.artboardID, err)
	}
	return doc, nil
}

// MustBuild is Build for static definitions; it panics on error.
func (b *Builder) MustBuild() domain.Document {
	doc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return doc
}
