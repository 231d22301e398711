package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// AnimationState is a named snapshot of element values belonging to one artboard.
type AnimationState struct {
	ID         string `json:"id"`
	ArtboardID string `json:"artboard_id"`
	Name       string `json:"name"`

	// Order is dense and unique per artboard; siblings form the range 0..N-1.
	Order int `json:"order"`

	Trigger Trigger `json:"-"`

	// HoldTime is how long (ms) the state displays before an outgoing transition starts.
	HoldTime float64 `json:"hold_time"`

	Elements []AnimationStateElement `json:"elements"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Element returns the snapshot for elementID, if present.
func (s *AnimationState) Element(elementID string) (AnimationStateElement, bool) {
	for _, el := range s.Elements {
		if el.ElementID == elementID {
			return el, true
		}
	}
	return AnimationStateElement{}, false
}

// ElementIDs returns the element ids in snapshot order.
func (s *AnimationState) ElementIDs() []string {
	ids := make([]string, len(s.Elements))
	for i, el := range s.Elements {
		ids[i] = el.ElementID
	}
	return ids
}

// Clone returns a deep copy of the state.
func (s AnimationState) Clone() AnimationState {
	out := s
	if s.Elements != nil {
		out.Elements = make([]AnimationStateElement, len(s.Elements))
		for i, el := range s.Elements {
			out.Elements[i] = el.Clone()
		}
	}
	return out
}

// MarshalJSON writes the trigger as its tagged envelope.
func (s AnimationState) MarshalJSON() ([]byte, error) {
	type alias AnimationState
	return json.Marshal(struct {
		alias
		Trigger map[string]any `json:"trigger,omitempty"`
	}{
		alias:   alias(s),
		Trigger: EncodeTrigger(s.Trigger),
	})
}

// UnmarshalJSON reads the trigger envelope back into its variant.
func (s *AnimationState) UnmarshalJSON(data []byte) error {
	type alias AnimationState
	aux := struct {
		*alias
		Trigger map[string]any `json:"trigger,omitempty"`
	}{
		alias: (*alias)(s),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	trig, err := DecodeTrigger(aux.Trigger)
	if err != nil {
		return fmt.Errorf("state %s: %w", s.ID, err)
	}
	s.Trigger = trig
	return nil
}

// ClampHoldTime bounds a hold time to [min, max].
func ClampHoldTime(hold, min, max float64) float64 {
	if hold < min {
		return min
	}
	if max > min && hold > max {
		return max
	}
	return hold
}
