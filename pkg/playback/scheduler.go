package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/ports"
	"github.com/aretw0/storyboard/pkg/studio"
)

// Model is the read side of the animation model consumed by the scheduler.
// *studio.Studio satisfies it.
type Model interface {
	Snapshot(artboardID string) studio.Board
	Timeline(artboardID string) domain.ComputedTimeline
}

// Scheduler plays one artboard. Safe for concurrent use.
type Scheduler struct {
	mu sync.Mutex

	model      Model
	artboardID string
	driver     ports.FrameDriver
	logger     *slog.Logger
	hooks      domain.PlaybackHooks
	ctx        context.Context

	allowedSpeeds []float64
	defaultSpeed  float64

	playback domain.PlaybackState
	chain    domain.ChainPlaybackState

	lastTick    time.Time
	hasLastTick bool

	frame   Frame
	pending []func()
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDriver sets the frame driver. Without one, the scheduler only moves on
// explicit Tick or Advance calls.
func WithDriver(d ports.FrameDriver) Option {
	return func(s *Scheduler) {
		s.driver = d
	}
}

// WithHooks sets the observability callbacks.
func WithHooks(h domain.PlaybackHooks) Option {
	return func(s *Scheduler) {
		s.hooks = h
	}
}

// WithContext sets the context passed to hooks.
func WithContext(ctx context.Context) Option {
	return func(s *Scheduler) {
		s.ctx = ctx
	}
}

// WithSpeeds sets the speed allow-list and the fallback for rejected values.
func WithSpeeds(allowed []float64, fallback float64) Option {
	return func(s *Scheduler) {
		if len(allowed) > 0 {
			s.allowedSpeeds = append([]float64(nil), allowed...)
		}
		if fallback > 0 {
			s.defaultSpeed = fallback
		}
	}
}

// WithLoop sets the initial loop flag.
func WithLoop(loop bool) Option {
	return func(s *Scheduler) {
		s.playback.Loop = loop
	}
}

// NewScheduler creates a stopped scheduler for one artboard.
func NewScheduler(model Model, artboardID string, opts ...Option) *Scheduler {
	s := &Scheduler{
		model:         model,
		artboardID:    artboardID,
		logger:        logging.NewNop(),
		ctx:           context.Background(),
		allowedSpeeds: domain.AllowedPlaybackSpeeds,
		defaultSpeed:  domain.DefaultPlaybackSpeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.playback.PlaybackSpeed = s.defaultSpeed
	s.frame = Frame{SegmentIndex: -1, Elements: map[string]domain.AnimationStateElement{}}
	return s
}

// ArtboardID returns the artboard being played.
func (s *Scheduler) ArtboardID() string {
	return s.artboardID
}

// do runs fn under the lock and fires queued hook calls after releasing it.
func (s *Scheduler) do(fn func()) {
	s.mu.Lock()
	fn()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

// Play starts or resumes timeline playback, stopping any chain. A finished
// timeline restarts from 0.
func (s *Scheduler) Play() {
	s.do(func() {
		if s.chain.Active() {
			s.endChain()
		}
		tl := s.model.Timeline(s.artboardID)
		if tl.TotalDuration > 0 && s.playback.CurrentTime >= tl.TotalDuration {
			s.playback.CurrentTime = 0
		}
		s.playback.IsPlaying = true
		s.playback.IsPaused = false
		s.hasLastTick = false
		s.derive(tl)
		s.startDriver()
		s.emitPlayback(domain.EventPlay)
		s.logger.Debug("playback started", "artboard", s.artboardID, "time", s.playback.CurrentTime)
	})
}

// Pause halts timeline playback, keeping the current time.
func (s *Scheduler) Pause() {
	s.do(func() {
		if !s.playback.IsPlaying {
			return
		}
		s.playback.IsPlaying = false
		s.playback.IsPaused = true
		s.stopDriver()
		s.emitPlayback(domain.EventPause)
	})
}

// Stop halts timeline playback and rewinds to 0.
func (s *Scheduler) Stop() {
	s.do(func() {
		s.playback.IsPlaying = false
		s.playback.IsPaused = false
		s.playback.CurrentTime = 0
		if !s.chain.Active() {
			s.stopDriver()
			s.derive(s.model.Timeline(s.artboardID))
		}
		s.emitPlayback(domain.EventStop)
	})
}

// SeekTo moves the timeline cursor to t ms and re-derives values immediately.
// Negative times clamp to 0. Past the end, a looping timeline resets to 0 and a
// non-looping one clamps to the total duration and stops. While a chain plays
// only the cursor moves; the chain keeps its frame and its driver.
func (s *Scheduler) SeekTo(t float64) {
	s.do(func() {
		if t < 0 {
			t = 0
		}
		tl := s.model.Timeline(s.artboardID)
		if t > tl.TotalDuration {
			s.overrun(tl)
		} else {
			s.playback.CurrentTime = t
		}
		if !s.chain.Active() {
			s.derive(tl)
		}
		s.emitPlayback(domain.EventSeek)
	})
}

// SetPlaybackSpeed applies speed when it is on the allow-list, otherwise the
// default speed. It returns the applied value.
func (s *Scheduler) SetPlaybackSpeed(speed float64) float64 {
	var applied float64
	s.do(func() {
		applied = s.defaultSpeed
		for _, allowed := range s.allowedSpeeds {
			if speed == allowed {
				applied = speed
				break
			}
		}
		if applied != speed {
			s.logger.Warn("playback speed rejected", "requested", speed, "applied", applied)
		}
		s.playback.PlaybackSpeed = applied
	})
	return applied
}

// ToggleLoop flips the loop flag and returns the new value.
func (s *Scheduler) ToggleLoop() bool {
	var loop bool
	s.do(func() {
		s.playback.Loop = !s.playback.Loop
		loop = s.playback.Loop
	})
	return loop
}

// SetLoop sets the loop flag.
func (s *Scheduler) SetLoop(loop bool) {
	s.do(func() {
		s.playback.Loop = loop
	})
}

// Tick advances playback to now. The first tick after Play only records the
// timestamp.
func (s *Scheduler) Tick(now time.Time) {
	s.do(func() {
		if !s.running() {
			return
		}
		if !s.hasLastTick {
			s.lastTick = now
			s.hasLastTick = true
			return
		}
		wall := float64(now.Sub(s.lastTick)) / float64(time.Millisecond)
		s.lastTick = now
		if wall < 0 {
			wall = 0
		}
		s.advance(wall)
	})
}

// Advance moves playback forward by wall-clock ms, scaled by the playback speed.
func (s *Scheduler) Advance(wallMs float64) {
	s.do(func() {
		if !s.running() || wallMs <= 0 {
			return
		}
		s.advance(wallMs)
	})
}

func (s *Scheduler) running() bool {
	return s.playback.IsPlaying || (s.chain.Active() && !s.chain.IsPaused)
}

func (s *Scheduler) advance(wallMs float64) {
	delta := wallMs * s.playback.PlaybackSpeed
	if s.chain.Active() {
		s.advanceChain(delta, wallMs)
		return
	}

	tl := s.model.Timeline(s.artboardID)
	next := s.playback.CurrentTime + delta
	if next >= tl.TotalDuration {
		s.overrun(tl)
	} else {
		s.playback.CurrentTime = next
	}
	s.derive(tl)
	s.emitFrame(wallMs)
}

// overrun applies the end-of-timeline policy.
func (s *Scheduler) overrun(tl domain.ComputedTimeline) {
	if s.playback.Loop && tl.TotalDuration > 0 {
		s.playback.CurrentTime = 0
		s.emitPlayback(domain.EventLoop)
		return
	}
	s.playback.CurrentTime = tl.TotalDuration
	wasPlaying := s.playback.IsPlaying
	s.playback.IsPlaying = false
	s.playback.IsPaused = false
	if !s.chain.Active() {
		s.stopDriver()
	}
	if wasPlaying {
		s.emitPlayback(domain.EventFinish)
	}
}

func (s *Scheduler) derive(tl domain.ComputedTimeline) {
	prev := s.frame.SegmentIndex
	s.frame = Evaluate(s.model.Snapshot(s.artboardID), tl, s.playback.CurrentTime)
	if s.frame.SegmentIndex >= 0 && s.frame.SegmentIndex != prev {
		s.emitSegment(s.frame.Segment)
	}
}

func (s *Scheduler) startDriver() {
	if s.driver != nil {
		s.driver.Start(s.Tick)
	}
}

func (s *Scheduler) stopDriver() {
	if s.driver != nil {
		s.driver.Stop()
	}
}
