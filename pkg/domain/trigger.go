package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// TriggerKind names the variant of a Trigger.
type TriggerKind string

const (
	TriggerInitial TriggerKind = "initial"
	TriggerClick   TriggerKind = "click"
	TriggerHover   TriggerKind = "hover"
	TriggerFocus   TriggerKind = "focus"
	TriggerAuto    TriggerKind = "auto"
	TriggerCustom  TriggerKind = "custom"
)

// Trigger describes what activates a State. It is a closed set of variants:
// InitialTrigger, ClickTrigger, HoverTrigger, FocusTrigger, AutoTrigger and
// CustomTrigger. Type switches over Trigger should handle all of them.
type Trigger interface {
	Kind() TriggerKind
	// Target is the element the interaction is bound to, empty for the artboard.
	Target() string
	trigger()
}

// InitialTrigger marks the state shown when the artboard loads.
type InitialTrigger struct {
	Element string `mapstructure:"element"`
}

// ClickTrigger activates on a click on Element (or anywhere when empty).
type ClickTrigger struct {
	Element string `mapstructure:"element"`
}

// HoverTrigger activates while the pointer is over Element.
type HoverTrigger struct {
	Element string `mapstructure:"element"`
}

// FocusTrigger activates when Element receives focus.
type FocusTrigger struct {
	Element string `mapstructure:"element"`
}

// AutoTrigger activates automatically after Timing milliseconds.
type AutoTrigger struct {
	Timing  float64 `mapstructure:"timing"`
	Element string  `mapstructure:"element"`
}

// CustomTrigger activates on a host-defined event called Name.
type CustomTrigger struct {
	Name    string `mapstructure:"name"`
	Element string `mapstructure:"element"`
}

func (InitialTrigger) Kind() TriggerKind { return TriggerInitial }
func (ClickTrigger) Kind() TriggerKind   { return TriggerClick }
func (HoverTrigger) Kind() TriggerKind   { return TriggerHover }
func (FocusTrigger) Kind() TriggerKind   { return TriggerFocus }
func (AutoTrigger) Kind() TriggerKind    { return TriggerAuto }
func (CustomTrigger) Kind() TriggerKind  { return TriggerCustom }

func (t InitialTrigger) Target() string { return t.Element }
func (t ClickTrigger) Target() string   { return t.Element }
func (t HoverTrigger) Target() string   { return t.Element }
func (t FocusTrigger) Target() string   { return t.Element }
func (t AutoTrigger) Target() string    { return t.Element }
func (t CustomTrigger) Target() string  { return t.Element }

func (InitialTrigger) trigger() {}
func (ClickTrigger) trigger()   {}
func (HoverTrigger) trigger()   {}
func (FocusTrigger) trigger()   {}
func (AutoTrigger) trigger()    {}
func (CustomTrigger) trigger()  {}

// DescribeTrigger returns a short human label, e.g. "click #btn" or "auto 1200ms".
func DescribeTrigger(t Trigger) string {
	if t == nil {
		return "none"
	}
	var label string
	switch v := t.(type) {
	case InitialTrigger:
		label = "initial"
	case ClickTrigger:
		label = "click"
	case HoverTrigger:
		label = "hover"
	case FocusTrigger:
		label = "focus"
	case AutoTrigger:
		label = fmt.Sprintf("auto %gms", v.Timing)
	case CustomTrigger:
		label = "custom " + v.Name
	default:
		label = string(t.Kind())
	}
	if target := t.Target(); target != "" {
		label += " #" + target
	}
	return label
}

// EncodeTrigger flattens a trigger into its persisted envelope:
// {"type": kind, ...variant fields}.
func EncodeTrigger(t Trigger) map[string]any {
	if t == nil {
		return nil
	}
	env := map[string]any{"type": string(t.Kind())}
	if el := t.Target(); el != "" {
		env["element"] = el
	}
	switch v := t.(type) {
	case AutoTrigger:
		env["timing"] = v.Timing
	case CustomTrigger:
		env["name"] = v.Name
	}
	return env
}

// DecodeTrigger rebuilds a Trigger from its envelope. A nil envelope yields a nil trigger.
func DecodeTrigger(env map[string]any) (Trigger, error) {
	if env == nil {
		return nil, nil
	}
	kind, _ := env["type"].(string)

	var target Trigger
	switch TriggerKind(kind) {
	case TriggerInitial:
		target = &InitialTrigger{}
	case TriggerClick:
		target = &ClickTrigger{}
	case TriggerHover:
		target = &HoverTrigger{}
	case TriggerFocus:
		target = &FocusTrigger{}
	case TriggerAuto:
		target = &AutoTrigger{}
	case TriggerCustom:
		target = &CustomTrigger{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrigger, kind)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(env); err != nil {
		return nil, fmt.Errorf("failed to decode %s trigger: %w", kind, err)
	}

	switch v := target.(type) {
	case *InitialTrigger:
		return *v, nil
	case *ClickTrigger:
		return *v, nil
	case *HoverTrigger:
		return *v, nil
	case *FocusTrigger:
		return *v, nil
	case *AutoTrigger:
		return *v, nil
	case *CustomTrigger:
		return *v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTrigger, kind)
}
