package dsl

import (
	"strconv"

	"github.com/aretw0/storyboard/pkg/cascade"
	"github.com/aretw0/storyboard/pkg/domain"
)

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state   domain.AnimationState
	builder *Builder
}

// Name sets the display name. It defaults to the id.
func (s *StateBuilder) Name(name string) *StateBuilder {
	s.state.Name = name
	return s
}

// Hold sets how long (ms) the state displays before its outgoing transition.
func (s *StateBuilder) Hold(ms float64) *StateBuilder {
	s.state.HoldTime = ms
	return s
}

// Trigger sets what activates the state.
func (s *StateBuilder) Trigger(t domain.Trigger) *StateBuilder {
	s.state.Trigger = t
	return s
}

// Initial marks the state shown when the artboard loads.
func (s *StateBuilder) Initial() *StateBuilder {
	return s.Trigger(domain.InitialTrigger{})
}

// Element appends element snapshots to the state.
func (s *StateBuilder) Element(elements ...domain.AnimationStateElement) *StateBuilder {
	s.state.Elements = append(s.state.Elements, elements...)
	return s
}

// To adds an explicit transition toward target, which may be declared later.
func (s *StateBuilder) To(target string) *TransitionBuilder {
	tb := &TransitionBuilder{
		transition: domain.StateTransition{
			ID:          s.state.ID + "->" + target,
			FromStateID: s.state.ID,
			ToStateID:   target,
			Duration:    domain.DefaultTransitionDuration,
			Easing:      domain.DefaultEasing,
		},
	}
	s.builder.transitions = append(s.builder.transitions, tb)
	return tb
}

// TransitionBuilder provides a fluent API for configuring a transition.
type TransitionBuilder struct {
	transition domain.StateTransition
}

// Duration sets the transition length in ms.
func (t *TransitionBuilder) Duration(ms float64) *TransitionBuilder {
	t.transition.Duration = ms
	return t
}

// Delay sets the pause in ms between the hold end and the transition start.
func (t *TransitionBuilder) Delay(ms float64) *TransitionBuilder {
	t.transition.Delay = ms
	return t
}

// Easing sets the transition curve.
func (t *TransitionBuilder) Easing(e domain.Easing) *TransitionBuilder {
	t.transition.Easing = e
	return t
}

// Cascade enables a hierarchy stagger from the preset catalogue. Unknown
// presets leave the cascade disabled.
func (t *TransitionBuilder) Cascade(preset string) *TransitionBuilder {
	cfg, _ := cascade.ApplyCascadePreset(preset)
	t.transition.Cascade = &cfg
	return t
}

// Override replaces the timing of one element.
func (t *TransitionBuilder) Override(elementID string, o domain.ElementOverride) *TransitionBuilder {
	if t.transition.ElementOverrides == nil {
		t.transition.ElementOverrides = make(map[string]domain.ElementOverride)
	}
	t.transition.ElementOverrides[elementID] = o
	return t
}

// ChainBuilder provides a fluent API for configuring a chain.
type ChainBuilder struct {
	chain   domain.AnimationChain
	builder *Builder
}

// Steps appends one step per state id. The first step sets the start state.
func (c *ChainBuilder) Steps(stateIDs ...string) *ChainBuilder {
	for _, id := range stateIDs {
		if c.chain.StartStateID == "" {
			c.chain.StartStateID = id
		}
		c.chain.Steps = append(c.chain.Steps, domain.ChainStep{
			ID:      c.chain.ID + "-" + id + "-" + strconv.Itoa(len(c.chain.Steps)),
			StateID: id,
		})
	}
	return c
}

// Hold overrides the hold of the most recently added step.
func (c *ChainBuilder) Hold(ms float64) *ChainBuilder {
	if n := len(c.chain.Steps); n > 0 {
		step := &c.chain.Steps[n-1]
		if step.Metadata == nil {
			step.Metadata = make(map[string]any)
		}
		step.Metadata["hold_time"] = ms
	}
	return c
}

// Mode sets the end-of-sequence policy.
func (c *ChainBuilder) Mode(m domain.PlaybackMode) *ChainBuilder {
	c.chain.Mode = m
	return c
}

// Default makes this chain the default one.
func (c *ChainBuilder) Default() *ChainBuilder {
	for _, other := range c.builder.chains {
		other.chain.IsDefault = false
	}
	c.chain.IsDefault = true
	return c
}
