package domain

import "strings"

// SegmentType distinguishes hold windows from transition windows.
type SegmentType string

const (
	SegmentState      SegmentType = "state"
	SegmentTransition SegmentType = "transition"
)

// Segment is a half-open window [StartTime, EndTime) on the compiled time axis.
type Segment struct {
	StartTime   float64     `json:"start_time"`
	EndTime     float64     `json:"end_time"`
	Type        SegmentType `json:"type"`
	ReferenceID string      `json:"reference_id"`
	Label       string      `json:"label"`
}

// Duration is EndTime - StartTime.
func (s Segment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// StateTiming locates one state on the time axis. The delay window of an
// outgoing transition belongs to the state, so EndTime may exceed HoldEndTime.
type StateTiming struct {
	StartTime   float64 `json:"start_time"`
	HoldEndTime float64 `json:"hold_end_time"`
	EndTime     float64 `json:"end_time"`
	HoldTime    float64 `json:"hold_time"`
}

// TransitionTiming locates one transition on the time axis.
type TransitionTiming struct {
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	FromStateID string  `json:"from_state_id"`
	ToStateID   string  `json:"to_state_id"`
}

// ComputedTimeline is derived from States and Transitions and never persisted.
type ComputedTimeline struct {
	TotalDuration     float64                     `json:"total_duration"`
	Segments          []Segment                   `json:"segments"`
	StateTimings      map[string]StateTiming      `json:"state_timings"`
	TransitionTimings map[string]TransitionTiming `json:"transition_timings"`
}

// ImplicitTransitionID is the synthetic id of a default transition between two states.
func ImplicitTransitionID(fromID, toID string) string {
	return ImplicitTransitionPrefix + fromID + "-" + toID
}

// IsImplicitTransitionID reports whether id was synthesized by the compiler.
func IsImplicitTransitionID(id string) bool {
	return strings.HasPrefix(id, ImplicitTransitionPrefix)
}
