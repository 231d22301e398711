package domain

// Timing defaults, all in milliseconds.
const (
	// DefaultTransitionDuration is used for implicit transitions and new explicit ones.
	DefaultTransitionDuration = 300.0

	// DefaultHoldTime is the hold assigned to newly created states.
	DefaultHoldTime = 500.0

	// MinHoldTime and MaxHoldTime bound State.HoldTime unless configured otherwise.
	MinHoldTime = 0.0
	MaxHoldTime = 10000.0

	// MinScale is the smallest scale an element snapshot may carry.
	MinScale = 0.1
)

// DefaultPlaybackSpeed is the fallback for rejected speed values.
const DefaultPlaybackSpeed = 1.0

// AllowedPlaybackSpeeds is the allow-list accepted by the scheduler.
var AllowedPlaybackSpeeds = []float64{0.25, 0.5, 1, 1.5, 2}

// ImplicitTransitionPrefix marks synthetic transition ids in a computed timeline.
const ImplicitTransitionPrefix = "implicit-"
