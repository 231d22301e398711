package playback

import (
	"time"

	"github.com/aretw0/storyboard/pkg/domain"
)

// Hook calls are queued while the lock is held and fired by do afterwards.
// Event values are captured at queue time.

func (s *Scheduler) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, ArtboardID: s.artboardID}
}

func (s *Scheduler) emitPlayback(t domain.EventType) {
	if s.hooks.OnPlayback == nil {
		return
	}
	ev := &domain.PlaybackEvent{
		EventBase:   s.base(t),
		CurrentTime: s.playback.CurrentTime,
		Speed:       s.playback.PlaybackSpeed,
	}
	hook, ctx := s.hooks.OnPlayback, s.ctx
	s.pending = append(s.pending, func() { hook(ctx, ev) })
}

func (s *Scheduler) emitSegment(seg domain.Segment) {
	if s.hooks.OnSegmentEnter == nil {
		return
	}
	ev := &domain.SegmentEvent{EventBase: s.base(domain.EventSegmentEnter), Segment: seg}
	hook, ctx := s.hooks.OnSegmentEnter, s.ctx
	s.pending = append(s.pending, func() { hook(ctx, ev) })
}

func (s *Scheduler) emitChain(t domain.EventType) {
	if s.hooks.OnChain == nil {
		return
	}
	ev := &domain.ChainEvent{
		EventBase:  s.base(t),
		ChainID:    s.chain.ActiveChainID,
		StepIndex:  s.chain.CurrentStepIndex,
		StateID:    s.frame.FromStateID,
		Iterations: s.chain.Iterations,
		Reversing:  s.chain.IsReversing,
	}
	hook, ctx := s.hooks.OnChain, s.ctx
	s.pending = append(s.pending, func() { hook(ctx, ev) })
}

func (s *Scheduler) emitFrame(deltaMs float64) {
	if s.hooks.OnFrame == nil {
		return
	}
	ev := &domain.FrameEvent{
		EventBase: s.base(domain.EventFrame),
		DeltaMs:   deltaMs,
		Elements:  len(s.frame.Elements),
	}
	hook, ctx := s.hooks.OnFrame, s.ctx
	s.pending = append(s.pending, func() { hook(ctx, ev) })
}
