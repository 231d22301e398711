package playback_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/playback"
	"github.com/aretw0/storyboard/pkg/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriver struct {
	mock.Mock
}

func (m *MockDriver) Start(fn func(time.Time)) { m.Called(fn) }
func (m *MockDriver) Stop()                    { m.Called() }

type fixture struct {
	studio *studio.Studio
	a, b   domain.AnimationState
	trID   string
}

// newFixture builds A (x=0, hold 500) -> B (x=100, hold 0) joined by a linear
// 300ms transition: total duration 800.
func newFixture(t *testing.T) fixture {
	t.Helper()
	s := studio.New()
	a := s.CreateState("board", "A", []domain.AnimationStateElement{domain.NewElement("box", 0, 0, 10, 10)})
	b := s.CreateState("board", "B", []domain.AnimationStateElement{domain.NewElement("box", 100, 0, 10, 10)})
	require.True(t, s.UpdateState(a.ID, func(st *domain.AnimationState) { st.HoldTime = 500 }))
	require.True(t, s.UpdateState(b.ID, func(st *domain.AnimationState) { st.HoldTime = 0 }))
	trID, ok := s.CreateTransition(a.ID, b.ID)
	require.True(t, ok)
	require.True(t, s.UpdateTransition(trID, func(tr *domain.StateTransition) {
		tr.Duration = 300
		tr.Easing = domain.EasingLinear
	}))
	return fixture{studio: s, a: a, b: b, trID: trID}
}

func TestScheduler_SeekPastEndWithoutLoopStops(t *testing.T) {
	f := newFixture(t)
	s := playback.NewScheduler(f.studio, "board")

	s.Play()
	require.True(t, s.IsPlaying())
	s.SeekTo(s.TotalDuration() + 1000)

	assert.Equal(t, 800.0, s.CurrentTime())
	assert.False(t, s.IsPlaying())
	assert.False(t, s.IsPaused())

	el, ok := s.AnimatedElement("box")
	require.True(t, ok)
	assert.Equal(t, 100.0, el.X)
}

func TestScheduler_LoopResetsToZero(t *testing.T) {
	f := newFixture(t)
	s := playback.NewScheduler(f.studio, "board", playback.WithLoop(true))

	s.Play()
	s.Advance(700)
	assert.Equal(t, 700.0, s.CurrentTime())

	s.Advance(250)
	assert.Equal(t, 0.0, s.CurrentTime())
	assert.True(t, s.IsPlaying())

	s.SeekTo(5000)
	assert.Equal(t, 0.0, s.CurrentTime())
}

func TestScheduler_DerivesTransitionValues(t *testing.T) {
	f := newFixture(t)
	s := playback.NewScheduler(f.studio, "board")

	s.Play()
	s.Advance(650)

	el, ok := s.AnimatedElement("box")
	require.True(t, ok)
	assert.InDelta(t, 50, el.X, 1e-9)
	assert.InDelta(t, 0.5, s.Progress(), 1e-9)

	tr, ok := s.CurrentTransition()
	require.True(t, ok)
	assert.Equal(t, f.trID, tr.ID)
	from, ok := s.CurrentFromState()
	require.True(t, ok)
	assert.Equal(t, f.a.ID, from.ID)
	to, ok := s.CurrentToState()
	require.True(t, ok)
	assert.Equal(t, f.b.ID, to.ID)

	_, ok = s.AnimatedElement("ghost")
	assert.False(t, ok)
}

func TestScheduler_PicksUpEditsOnNextTick(t *testing.T) {
	f := newFixture(t)
	s := playback.NewScheduler(f.studio, "board")

	s.Play()
	s.Advance(100)
	require.True(t, f.studio.UpdateElement(f.a.ID, "box", func(el *domain.AnimationStateElement) { el.Y = 42 }))
	s.Advance(100)

	el, _ := s.AnimatedElement("box")
	assert.Equal(t, 42.0, el.Y)
}

func TestScheduler_PlaybackSpeed(t *testing.T) {
	f := newFixture(t)
	s := playback.NewScheduler(f.studio, "board")

	assert.Equal(t, 1.0, s.SetPlaybackSpeed(3))
	assert.Equal(t, 2.0, s.SetPlaybackSpeed(2))

	s.Play()
	s.Advance(100)
	assert.Equal(t, 200.0, s.CurrentTime())
}

func TestScheduler_PauseStopAndRestart(t *testing.T) {
	f := newFixture(t)
	s := playback.NewScheduler(f.studio, "board")

	s.Play()
	s.Advance(300)
	s.Pause()
	assert.True(t, s.IsPaused())
	s.Advance(300)
	assert.Equal(t, 300.0, s.CurrentTime(), "paused scheduler ignores frames")

	s.Stop()
	assert.Equal(t, 0.0, s.CurrentTime())
	assert.False(t, s.IsPlaying())

	s.Play()
	s.Advance(2000)
	assert.False(t, s.IsPlaying())
	s.Play()
	assert.Equal(t, 0.0, s.CurrentTime(), "finished timeline restarts")
}

func TestScheduler_TickUsesWallClock(t *testing.T) {
	f := newFixture(t)
	s := playback.NewScheduler(f.studio, "board")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Tick(start)
	assert.Equal(t, 0.0, s.CurrentTime(), "stopped scheduler ignores ticks")

	s.Play()
	s.Tick(start)
	assert.Equal(t, 0.0, s.CurrentTime())
	s.Tick(start.Add(120 * time.Millisecond))
	assert.InDelta(t, 120, s.CurrentTime(), 1e-9)

	// Play resets the last tick, so time spent paused is not counted.
	s.Pause()
	s.Play()
	s.Tick(start.Add(10 * time.Second))
	s.Tick(start.Add(10*time.Second + 30*time.Millisecond))
	assert.InDelta(t, 150, s.CurrentTime(), 1e-9)
}

func TestScheduler_DriverRegistration(t *testing.T) {
	f := newFixture(t)
	driver := new(MockDriver)
	driver.On("Start", mock.Anything).Return()
	driver.On("Stop").Return()

	s := playback.NewScheduler(f.studio, "board", playback.WithDriver(driver))
	s.Play()
	driver.AssertNumberOfCalls(t, "Start", 1)

	s.Pause()
	driver.AssertNumberOfCalls(t, "Stop", 1)

	s.Play()
	s.SeekTo(10000)
	driver.AssertNumberOfCalls(t, "Start", 2)
	driver.AssertNumberOfCalls(t, "Stop", 2)
}

func TestScheduler_Hooks(t *testing.T) {
	f := newFixture(t)

	var mu sync.Mutex
	var events []domain.EventType
	var segments []domain.SegmentType
	record := func(t domain.EventType) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, t)
	}

	hooks := domain.PlaybackHooks{
		OnPlayback: func(_ context.Context, ev *domain.PlaybackEvent) { record(ev.Type) },
		OnSegmentEnter: func(_ context.Context, ev *domain.SegmentEvent) {
			mu.Lock()
			defer mu.Unlock()
			segments = append(segments, ev.Segment.Type)
		},
		OnFrame: func(_ context.Context, ev *domain.FrameEvent) {
			assert.Equal(t, 1, ev.Elements)
		},
	}
	s := playback.NewScheduler(f.studio, "board", playback.WithHooks(hooks))

	s.Play()
	s.Advance(600)
	s.Advance(600)

	assert.Equal(t, []domain.EventType{domain.EventPlay, domain.EventFinish}, events)
	assert.Equal(t, []domain.SegmentType{domain.SegmentState, domain.SegmentTransition, domain.SegmentState}, segments)
}

func TestScheduler_EmptyArtboard(t *testing.T) {
	s := playback.NewScheduler(studio.New(), "empty")
	s.Play()
	s.Advance(100)

	assert.Equal(t, 0.0, s.CurrentTime())
	assert.False(t, s.IsPlaying())
	assert.Empty(t, s.Elements())
}

// chainFixture builds A (x=0) and B (x=100), both holding 100ms, with no explicit
// transition: steps are joined by the implicit 300ms ease-in-out transition.
func chainFixture(t *testing.T, mode domain.PlaybackMode) (*studio.Studio, string) {
	t.Helper()
	s := studio.New()
	a := s.CreateState("board", "A", []domain.AnimationStateElement{domain.NewElement("box", 0, 0, 10, 10)})
	b := s.CreateState("board", "B", []domain.AnimationStateElement{domain.NewElement("box", 100, 0, 10, 10)})
	for _, id := range []string{a.ID, b.ID} {
		require.True(t, s.UpdateState(id, func(st *domain.AnimationState) { st.HoldTime = 100 }))
	}
	chainID, ok := s.CreateChain("board", "Intro", a.ID)
	require.True(t, ok)
	_, ok = s.AddChainStep(chainID, b.ID, nil)
	require.True(t, ok)
	require.True(t, s.UpdateChain(chainID, func(c *domain.AnimationChain) { c.Mode = mode }))
	return s, chainID
}

func TestScheduler_ChainOnce(t *testing.T) {
	model, chainID := chainFixture(t, domain.ModeOnce)
	s := playback.NewScheduler(model, "board")

	require.True(t, s.PlayChain(chainID))
	assert.False(t, s.PlayChain("missing"))
	assert.Equal(t, chainID, s.ChainState().ActiveChainID)

	s.Advance(250) // 150ms into the 300ms transition
	el, _ := s.AnimatedElement("box")
	assert.InDelta(t, 50, el.X, 1e-3)
	assert.Equal(t, 0, s.ChainState().CurrentStepIndex)

	s.Advance(150)
	assert.Equal(t, 1, s.ChainState().CurrentStepIndex)
	assert.Equal(t, 0.0, s.ChainState().ElapsedTime)

	s.Advance(100)
	assert.False(t, s.ChainState().Active(), "once mode ends after the last hold")
	el, _ = s.AnimatedElement("box")
	assert.Equal(t, 100.0, el.X, "last values are kept")
}

func TestScheduler_ChainLoop(t *testing.T) {
	model, chainID := chainFixture(t, domain.ModeLoop)
	s := playback.NewScheduler(model, "board")

	require.True(t, s.PlayChain(chainID))
	s.Advance(400)
	s.Advance(100)

	cs := s.ChainState()
	assert.True(t, cs.Active())
	assert.Equal(t, 0, cs.CurrentStepIndex)
	assert.Equal(t, 1, cs.Iterations)
	el, _ := s.AnimatedElement("box")
	assert.Equal(t, 0.0, el.X)
}

func TestScheduler_ChainPingPong(t *testing.T) {
	model, chainID := chainFixture(t, domain.ModePingPong)
	s := playback.NewScheduler(model, "board")

	require.True(t, s.PlayChain(chainID))
	s.Advance(400)
	s.Advance(100)

	cs := s.ChainState()
	assert.True(t, cs.IsReversing)
	assert.Equal(t, 1, cs.CurrentStepIndex)
	assert.Equal(t, 1, cs.Iterations)

	s.Advance(150) // halfway back toward A
	el, _ := s.AnimatedElement("box")
	assert.InDelta(t, 50, el.X, 1e-3)

	s.Advance(150)
	assert.Equal(t, 0, s.ChainState().CurrentStepIndex)
}

func TestScheduler_ChainStepHoldOverride(t *testing.T) {
	model, chainID := chainFixture(t, domain.ModeOnce)
	chain, _ := model.Chain(chainID)
	require.True(t, model.UpdateChain(chainID, func(c *domain.AnimationChain) {
		c.Steps[0].Metadata = map[string]any{"hold_time": 0}
	}))
	s := playback.NewScheduler(model, "board")

	require.True(t, s.PlayChain(chain.ID))
	s.Advance(300)
	assert.Equal(t, 1, s.ChainState().CurrentStepIndex)
}

func TestScheduler_ChainAndTimelineExclusive(t *testing.T) {
	model, chainID := chainFixture(t, domain.ModeLoop)
	s := playback.NewScheduler(model, "board")

	s.Play()
	require.True(t, s.PlayChain(chainID))
	assert.False(t, s.IsPlaying())
	assert.True(t, s.ChainState().Active())

	s.PauseChain()
	assert.True(t, s.ChainState().IsPaused)
	s.Advance(100)
	assert.Equal(t, 0.0, s.ChainState().ElapsedTime)
	require.True(t, s.PlayChain(chainID))
	assert.False(t, s.ChainState().IsPaused)

	s.Play()
	assert.True(t, s.IsPlaying())
	assert.False(t, s.ChainState().Active())
}

func TestScheduler_SeekDuringChainKeepsChainRunning(t *testing.T) {
	model, chainID := chainFixture(t, domain.ModeLoop)
	driver := new(MockDriver)
	driver.On("Start", mock.Anything).Return()
	driver.On("Stop").Return()
	s := playback.NewScheduler(model, "board", playback.WithDriver(driver))

	require.True(t, s.PlayChain(chainID))
	s.Advance(250)

	s.SeekTo(1e9)
	driver.AssertNumberOfCalls(t, "Stop", 0)
	assert.Equal(t, s.TotalDuration(), s.CurrentTime(), "timeline cursor still moves")
	assert.True(t, s.ChainState().Active())
	assert.False(t, s.ChainState().IsPaused)

	el, _ := s.AnimatedElement("box")
	assert.InDelta(t, 50, el.X, 1e-3, "chain frame is kept")

	s.SeekTo(100)
	el, _ = s.AnimatedElement("box")
	assert.InDelta(t, 50, el.X, 1e-3)

	s.Advance(150)
	assert.Equal(t, 1, s.ChainState().CurrentStepIndex, "chain keeps advancing")
	driver.AssertNumberOfCalls(t, "Stop", 0)
}

func TestTickerDriver(t *testing.T) {
	d := playback.NewTickerDriver(200)
	ticks := make(chan time.Time, 8)

	d.Start(func(now time.Time) {
		select {
		case ticks <- now:
		default:
		}
	})
	assert.True(t, d.Running())

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}

	d.Stop()
	d.Stop()
	assert.False(t, d.Running())
}
