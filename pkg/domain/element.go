package domain

import "encoding/json"

// InheritanceMode governs whether hierarchical cascade offsets apply to an element.
type InheritanceMode string

const (
	// InheritRelative compounds the cascade offsets of the element's ancestors.
	InheritRelative InheritanceMode = "relative"
	// InheritIndependent ignores ancestors and animates on the base schedule.
	InheritIndependent InheritanceMode = "independent"
)

// EnterExitType distinguishes elements that appear or disappear during a state
// from elements that persist across it.
type EnterExitType string

const (
	EnterExitNone    EnterExitType = ""
	EnterExitEnter   EnterExitType = "enter"
	EnterExitExit    EnterExitType = "exit"
	EnterExitPersist EnterExitType = "persist"
)

// AnimatableProperty names a field of AnimationStateElement that can be interpolated.
type AnimatableProperty string

const (
	PropX        AnimatableProperty = "x"
	PropY        AnimatableProperty = "y"
	PropWidth    AnimatableProperty = "width"
	PropHeight   AnimatableProperty = "height"
	PropOpacity  AnimatableProperty = "opacity"
	PropScale    AnimatableProperty = "scale"
	PropRotation AnimatableProperty = "rotation"
	PropVisible  AnimatableProperty = "visible"
)

// AllProperties lists every animatable property in canonical order.
var AllProperties = []AnimatableProperty{
	PropX, PropY, PropWidth, PropHeight, PropOpacity, PropScale, PropRotation, PropVisible,
}

// ElementTiming is a per-element schedule. When set on an element it bypasses
// transition-level and cascade-level timing entirely.
type ElementTiming struct {
	Duration float64 `json:"duration" yaml:"duration"`
	Delay    float64 `json:"delay" yaml:"delay"`
	Easing   Easing  `json:"easing,omitempty" yaml:"easing,omitempty"`
}

// ChildPosition is a pre-computed child box inside a layout snapshot.
type ChildPosition struct {
	ElementID string  `json:"element_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// LayoutSnapshot records an element's flex/grid configuration and the child
// positions computed by the layout collaborator. It is treated as immutable.
type LayoutSnapshot struct {
	Config   json.RawMessage `json:"config,omitempty"`
	Children []ChildPosition `json:"children,omitempty"`
}

// AnimationStateElement is the visual snapshot of one canvas element within a State.
type AnimationStateElement struct {
	// ElementID references an externally owned box.
	ElementID   string `json:"element_id"`
	ElementName string `json:"element_name,omitempty"`
	// ParentID mirrors the canvas hierarchy at snapshot time. Empty for roots.
	ParentID string `json:"parent_id,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Opacity  float64 `json:"opacity"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"` // degrees
	Visible  bool    `json:"visible"`

	InheritanceMode InheritanceMode `json:"inheritance_mode,omitempty"`
	Timing          *ElementTiming  `json:"timing,omitempty"`
	EnterExitType   EnterExitType   `json:"enter_exit_type,omitempty"`
	LayoutSnapshot  *LayoutSnapshot `json:"layout_snapshot,omitempty"`
}

// NewElement returns a visible, fully opaque, unscaled element snapshot.
func NewElement(id string, x, y, width, height float64) AnimationStateElement {
	return AnimationStateElement{
		ElementID:       id,
		X:               x,
		Y:               y,
		Width:           width,
		Height:          height,
		Opacity:         1,
		Scale:           1,
		Visible:         true,
		InheritanceMode: InheritRelative,
	}
}

// Inheritance returns the element's mode, defaulting to relative.
func (e AnimationStateElement) Inheritance() InheritanceMode {
	if e.InheritanceMode == InheritIndependent {
		return InheritIndependent
	}
	return InheritRelative
}

// Normalize clamps opacity to [0,1] and scale to MinScale.
func (e *AnimationStateElement) Normalize() {
	if e.Opacity < 0 {
		e.Opacity = 0
	} else if e.Opacity > 1 {
		e.Opacity = 1
	}
	if e.Scale < MinScale {
		e.Scale = MinScale
	}
}

// Clone returns a deep copy of the element.
func (e AnimationStateElement) Clone() AnimationStateElement {
	out := e
	if e.Timing != nil {
		t := *e.Timing
		out.Timing = &t
	}
	if e.LayoutSnapshot != nil {
		ls := LayoutSnapshot{}
		if e.LayoutSnapshot.Config != nil {
			ls.Config = append(json.RawMessage(nil), e.LayoutSnapshot.Config...)
		}
		if e.LayoutSnapshot.Children != nil {
			ls.Children = append([]ChildPosition(nil), e.LayoutSnapshot.Children...)
		}
		out.LayoutSnapshot = &ls
	}
	return out
}

// Property reads a numeric property. Visible reads as 1 or 0.
func (e AnimationStateElement) Property(p AnimatableProperty) float64 {
	switch p {
	case PropX:
		return e.X
	case PropY:
		return e.Y
	case PropWidth:
		return e.Width
	case PropHeight:
		return e.Height
	case PropOpacity:
		return e.Opacity
	case PropScale:
		return e.Scale
	case PropRotation:
		return e.Rotation
	case PropVisible:
		if e.Visible {
			return 1
		}
	}
	return 0
}

// SetProperty writes a numeric property. Visible is set when v > 0.
func (e *AnimationStateElement) SetProperty(p AnimatableProperty, v float64) {
	switch p {
	case PropX:
		e.X = v
	case PropY:
		e.Y = v
	case PropWidth:
		e.Width = v
	case PropHeight:
		e.Height = v
	case PropOpacity:
		e.Opacity = v
	case PropScale:
		e.Scale = v
	case PropRotation:
		e.Rotation = v
	case PropVisible:
		e.Visible = v > 0
	}
}
