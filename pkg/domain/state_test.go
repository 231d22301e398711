package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimationState_TriggerEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		want    string
	}{
		{name: "Initial", trigger: InitialTrigger{}, want: `{"type":"initial"}`},
		{name: "Click on element", trigger: ClickTrigger{Element: "btn"}, want: `{"element":"btn","type":"click"}`},
		{name: "Auto with timing", trigger: AutoTrigger{Timing: 1200}, want: `{"timing":1200,"type":"auto"}`},
		{name: "Custom", trigger: CustomTrigger{Name: "scrolled", Element: "hero"}, want: `{"element":"hero","name":"scrolled","type":"custom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := AnimationState{ID: "s1", ArtboardID: "a1", Trigger: tt.trigger}

			data, err := json.Marshal(state)
			require.NoError(t, err)

			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &raw))
			assert.JSONEq(t, tt.want, string(raw["trigger"]))

			var decoded AnimationState
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.trigger, decoded.Trigger)
			assert.Equal(t, "a1", decoded.ArtboardID)
		})
	}
}

func TestDecodeTrigger_WeakTyping(t *testing.T) {
	// YAML-sourced documents may carry integers or strings for numeric fields.
	trig, err := DecodeTrigger(map[string]any{"type": "auto", "timing": "250"})
	require.NoError(t, err)
	assert.Equal(t, AutoTrigger{Timing: 250}, trig)

	_, err = DecodeTrigger(map[string]any{"type": "swipe"})
	assert.ErrorIs(t, err, ErrUnknownTrigger)

	trig, err = DecodeTrigger(nil)
	assert.NoError(t, err)
	assert.Nil(t, trig)
}

func TestDescribeTrigger(t *testing.T) {
	assert.Equal(t, "hover #card", DescribeTrigger(HoverTrigger{Element: "card"}))
	assert.Equal(t, "auto 500ms", DescribeTrigger(AutoTrigger{Timing: 500}))
	assert.Equal(t, "none", DescribeTrigger(nil))
}

func TestAnimationState_CloneIsolation(t *testing.T) {
	el := NewElement("box", 0, 0, 10, 10)
	el.Timing = &ElementTiming{Duration: 100}
	el.LayoutSnapshot = &LayoutSnapshot{Children: []ChildPosition{{ElementID: "c"}}}
	orig := AnimationState{ID: "s", Elements: []AnimationStateElement{el}}

	cp := orig.Clone()
	cp.Elements[0].X = 99
	cp.Elements[0].Timing.Duration = 1
	cp.Elements[0].LayoutSnapshot.Children[0].X = 5

	assert.Equal(t, 0.0, orig.Elements[0].X)
	assert.Equal(t, 100.0, orig.Elements[0].Timing.Duration)
	assert.Equal(t, 0.0, orig.Elements[0].LayoutSnapshot.Children[0].X)
}

func TestElement_Normalize(t *testing.T) {
	el := AnimationStateElement{Opacity: 1.4, Scale: 0}
	el.Normalize()
	assert.Equal(t, 1.0, el.Opacity)
	assert.Equal(t, MinScale, el.Scale)
	assert.Equal(t, InheritRelative, el.Inheritance())
}

func TestChainStep_Options(t *testing.T) {
	step := ChainStep{ID: "st", StateID: "s", Metadata: map[string]any{"hold_time": 750, "label": "intro"}}
	opts := step.Options()
	require.NotNil(t, opts.HoldTime)
	assert.Equal(t, 750.0, *opts.HoldTime)
	assert.Equal(t, "intro", opts.Label)

	assert.Nil(t, ChainStep{}.Options().HoldTime)
}

func TestClampHoldTime(t *testing.T) {
	assert.Equal(t, 0.0, ClampHoldTime(-5, MinHoldTime, MaxHoldTime))
	assert.Equal(t, MaxHoldTime, ClampHoldTime(MaxHoldTime+1, MinHoldTime, MaxHoldTime))
	assert.Equal(t, 400.0, ClampHoldTime(400, MinHoldTime, MaxHoldTime))
}
