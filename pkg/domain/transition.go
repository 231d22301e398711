package domain

import "time"

// StaggerOrigin selects where a stagger sequence starts.
type StaggerOrigin string

const (
	OriginFirst  StaggerOrigin = "first"
	OriginLast   StaggerOrigin = "last"
	OriginCenter StaggerOrigin = "center"
	OriginEdges  StaggerOrigin = "edges"
)

// StaggerConfig is the per-element step of a cascade.
type StaggerConfig struct {
	PerElementDelay float64       `json:"per_element_delay"`
	Origin          StaggerOrigin `json:"origin"`
}

// CascadeConfig enables hierarchy-aware staggering of element start times.
type CascadeConfig struct {
	Enabled bool          `json:"enabled"`
	Stagger StaggerConfig `json:"stagger"`
	// Preset records the catalogue entry this config was derived from, if any.
	Preset string `json:"preset,omitempty"`
}

// LegacyStagger is the flat stagger record kept for older documents.
// Cascade supersedes it; both may be present.
type LegacyStagger struct {
	Enabled bool          `json:"enabled"`
	Delay   float64       `json:"delay"`
	From    StaggerOrigin `json:"from"`
}

// ElementOverride replaces transition timing for one element. When Properties
// is non-empty the override only drives those properties.
type ElementOverride struct {
	Duration   float64              `json:"duration"`
	Delay      float64              `json:"delay"`
	Easing     Easing               `json:"easing,omitempty"`
	Properties []AnimatableProperty `json:"properties,omitempty"`
}

// Applies reports whether the override drives property p.
func (o ElementOverride) Applies(p AnimatableProperty) bool {
	if len(o.Properties) == 0 {
		return true
	}
	for _, q := range o.Properties {
		if q == p {
			return true
		}
	}
	return false
}

// StateTransition is a directed edge between two States of the same artboard.
// At most one transition exists per ordered (from, to) pair.
type StateTransition struct {
	ID          string `json:"id"`
	FromStateID string `json:"from_state_id"`
	ToStateID   string `json:"to_state_id"`

	Duration float64 `json:"duration"` // ms
	Delay    float64 `json:"delay"`    // ms
	Easing   Easing  `json:"easing"`

	// ElementOverrides is keyed by element id.
	ElementOverrides map[string]ElementOverride `json:"element_overrides,omitempty"`

	Cascade *CascadeConfig `json:"cascade,omitempty"`
	Stagger *LegacyStagger `json:"stagger,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CascadeEnabled selects the cascade-aware interpolation path.
func (t *StateTransition) CascadeEnabled() bool {
	return t.Cascade != nil && t.Cascade.Enabled
}

// Clone returns a deep copy of the transition.
func (t StateTransition) Clone() StateTransition {
	out := t
	if t.ElementOverrides != nil {
		out.ElementOverrides = make(map[string]ElementOverride, len(t.ElementOverrides))
		for id, o := range t.ElementOverrides {
			if o.Properties != nil {
				o.Properties = append([]AnimatableProperty(nil), o.Properties...)
			}
			out.ElementOverrides[id] = o
		}
	}
	if t.Cascade != nil {
		c := *t.Cascade
		out.Cascade = &c
	}
	if t.Stagger != nil {
		s := *t.Stagger
		out.Stagger = &s
	}
	return out
}
