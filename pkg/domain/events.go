package domain

import (
	"context"
	"time"
)

// EventType defines the category of a playback event.
type EventType string

const (
	EventPlay         EventType = "play"
	EventPause        EventType = "pause"
	EventStop         EventType = "stop"
	EventSeek         EventType = "seek"
	EventLoop         EventType = "loop"
	EventFinish       EventType = "finish"
	EventSegmentEnter EventType = "segment_enter"
	EventChainStart   EventType = "chain_start"
	EventChainStep    EventType = "chain_step"
	EventChainEnd     EventType = "chain_end"
	EventFrame        EventType = "frame"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	ArtboardID string    `json:"artboard_id"`
}

// PlaybackEvent reports a change of the timeline cursor.
type PlaybackEvent struct {
	EventBase
	CurrentTime float64 `json:"current_time"`
	Speed       float64 `json:"speed"`
}

// SegmentEvent reports that the cursor entered a new timeline segment.
type SegmentEvent struct {
	EventBase
	Segment Segment `json:"segment"`
}

// ChainEvent reports chain progress.
type ChainEvent struct {
	EventBase
	ChainID    string `json:"chain_id"`
	StepIndex  int    `json:"step_index"`
	StateID    string `json:"state_id"`
	Iterations int    `json:"iterations"`
	Reversing  bool   `json:"reversing"`
}

// FrameEvent is emitted after every derivation of element values.
type FrameEvent struct {
	EventBase
	DeltaMs  float64 `json:"delta_ms"`
	Elements int     `json:"elements"`
}

// PlaybackHooks defines callbacks for scheduler observability.
type PlaybackHooks struct {
	OnPlayback     func(context.Context, *PlaybackEvent)
	OnSegmentEnter func(context.Context, *SegmentEvent)
	OnChain        func(context.Context, *ChainEvent)
	OnFrame        func(context.Context, *FrameEvent)
}
