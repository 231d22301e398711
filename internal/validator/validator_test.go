package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/storyboard/pkg/domain"
)

func TestValidateDocument(t *testing.T) {
	// 1. Scenario A: Valid document
	// a -> b, one default chain
	valid := domain.Document{
		ArtboardID: "hero",
		States: []domain.AnimationState{
			{ID: "a", Name: "A", Trigger: domain.InitialTrigger{}, HoldTime: 500},
			{ID: "b", Name: "B", Order: 1},
		},
		Transitions: []domain.StateTransition{
			{ID: "t1", FromStateID: "a", ToStateID: "b", Duration: 300, Easing: "cubic-bezier(0.4, 0, 0.2, 1)"},
		},
		Chains: []domain.AnimationChain{
			{ID: "c1", Name: "Main", StartStateID: "a", IsDefault: true, Steps: []domain.ChainStep{{StateID: "a"}, {StateID: "b"}}},
		},
	}
	if err := ValidateDocument(valid); err != nil {
		t.Errorf("Scenario A (Valid) failed: %v", err)
	}

	// 2. Scenario B: Broken references and values
	broken := domain.Document{
		States: []domain.AnimationState{
			{ID: "a", Name: "A", HoldTime: -1},
		},
		Transitions: []domain.StateTransition{
			{ID: "t1", FromStateID: "a", ToStateID: "ghost", Easing: "wobble"},
			{ID: "t2", FromStateID: "a", ToStateID: "ghost"},
			{ID: "t3", FromStateID: "a", ToStateID: "a"},
		},
		Chains: []domain.AnimationChain{
			{Name: "One", IsDefault: true, Steps: []domain.ChainStep{{StateID: "gone"}}},
			{Name: "Two", IsDefault: true},
		},
	}
	err := ValidateDocument(broken)
	if err == nil {
		t.Fatal("Scenario B (Broken) should have failed, but got nil")
	}
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("Expected ErrInvalidDocument, got: %v", err)
	}
	for _, want := range []string{
		"Negative hold time",
		"Missing state 'ghost'",
		"Unknown easing 'wobble'",
		"share the pair a->ghost",
		"Self transition 't3'",
		"Missing state 'gone' at step 0",
		"Multiple default chains: 2",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in error, got: %v", want, err)
		}
	}
}
