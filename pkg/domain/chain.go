package domain

import (
	"time"

	"github.com/mitchellh/mapstructure"
)

// PlaybackMode is a chain's end-of-sequence policy.
type PlaybackMode string

const (
	// ModeOnce stops on the last step.
	ModeOnce PlaybackMode = "once"
	// ModeLoop restarts from the first step.
	ModeLoop PlaybackMode = "loop"
	// ModePingPong walks the steps back in reverse, then forward again.
	ModePingPong PlaybackMode = "ping-pong"
)

// ChainStep references a State by id. A State may appear in several steps.
type ChainStep struct {
	ID      string `json:"id"`
	StateID string `json:"state_id"`
	// Metadata carries optional per-step settings, see StepOptions.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// StepOptions is the typed view of ChainStep.Metadata.
type StepOptions struct {
	// HoldTime overrides the referenced state's hold for this step.
	HoldTime *float64 `mapstructure:"hold_time"`
	Label    string   `mapstructure:"label"`
}

// Options decodes the step metadata. Unknown keys and malformed values are ignored.
func (s ChainStep) Options() StepOptions {
	var opts StepOptions
	if len(s.Metadata) == 0 {
		return opts
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return StepOptions{}
	}
	if err := decoder.Decode(s.Metadata); err != nil {
		return StepOptions{}
	}
	return opts
}

// AnimationChain is an ordered, named sequence of steps played independently of
// the artboard's default state order.
type AnimationChain struct {
	ID           string       `json:"id"`
	ArtboardID   string       `json:"artboard_id"`
	Name         string       `json:"name"`
	StartStateID string       `json:"start_state_id"`
	Steps        []ChainStep  `json:"steps"`
	IsDefault    bool         `json:"is_default"`
	Mode         PlaybackMode `json:"mode,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveMode returns the chain's mode, defaulting to ModeOnce.
func (c *AnimationChain) EffectiveMode() PlaybackMode {
	switch c.Mode {
	case ModeLoop, ModePingPong:
		return c.Mode
	}
	return ModeOnce
}

// Clone returns a deep copy of the chain.
func (c AnimationChain) Clone() AnimationChain {
	out := c
	if c.Steps != nil {
		out.Steps = make([]ChainStep, len(c.Steps))
		for i, st := range c.Steps {
			if st.Metadata != nil {
				md := make(map[string]any, len(st.Metadata))
				for k, v := range st.Metadata {
					md[k] = v
				}
				st.Metadata = md
			}
			out.Steps[i] = st
		}
	}
	return out
}
