package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/playback"
)

// DefaultMaxDuration caps headless runs of looping timelines and chains.
const DefaultMaxDuration = 60_000.0

// PlayOptions drives a headless playback run.
type PlayOptions struct {
	// ChainID plays a chain instead of the linear timeline.
	ChainID string
	// ElementID and Property select the value sampled on every frame.
	ElementID string
	Property  domain.AnimatableProperty
	FrameRate int
	// MaxDuration bounds the simulated wall clock in ms.
	MaxDuration float64
}

// PlayResult summarizes a headless run.
type PlayResult struct {
	Frames   int       `json:"frames"`
	Elapsed  float64   `json:"elapsed"`
	Samples  []float64 `json:"samples,omitempty"`
	Finished bool      `json:"finished"`
}

// EventPrinter returns hooks that write a line per event to w.
func EventPrinter(w io.Writer) domain.PlaybackHooks {
	var mu sync.Mutex
	line := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		printSystemMessage(w, format, args...)
	}
	return domain.PlaybackHooks{
		OnPlayback: func(_ context.Context, ev *domain.PlaybackEvent) {
			line("%-13s t=%.0fms", ev.Type, ev.CurrentTime)
		},
		OnSegmentEnter: func(_ context.Context, ev *domain.SegmentEvent) {
			line("%-13s %s %q [%.0f, %.0f]", ev.Type, ev.Segment.Type, ev.Segment.Label, ev.Segment.StartTime, ev.Segment.EndTime)
		},
		OnChain: func(_ context.Context, ev *domain.ChainEvent) {
			line("%-13s %s step=%d state=%s", ev.Type, ev.ChainID, ev.StepIndex, ev.StateID)
		},
	}
}

// Play runs a manual-driven player to completion (or MaxDuration), advancing
// by one frame interval per step. The player must not have a real driver.
func Play(ctx context.Context, player *playback.Scheduler, opts PlayOptions) (PlayResult, error) {
	fps := opts.FrameRate
	if fps <= 0 {
		fps = 60
	}
	limit := opts.MaxDuration
	if limit <= 0 {
		limit = DefaultMaxDuration
	}
	step := 1000.0 / float64(fps)

	if opts.ChainID != "" {
		if !player.PlayChain(opts.ChainID) {
			return PlayResult{}, fmt.Errorf("%w: %s", domain.ErrChainNotFound, opts.ChainID)
		}
	} else {
		player.Play()
	}

	var res PlayResult
	sample := func() {
		if opts.ElementID == "" {
			return
		}
		if el, ok := player.AnimatedElement(opts.ElementID); ok {
			res.Samples = append(res.Samples, el.Property(opts.Property))
		}
	}
	sample()

	for active(player) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if res.Elapsed >= limit {
			return res, nil
		}
		player.Advance(step)
		res.Elapsed += step
		res.Frames++
		sample()
	}
	res.Finished = true
	return res, nil
}

// PlayRealTime starts playback on a player backed by a frame driver and
// blocks until it finishes or ctx is cancelled.
func PlayRealTime(ctx context.Context, player *playback.Scheduler, chainID string) error {
	if chainID != "" {
		if !player.PlayChain(chainID) {
			return fmt.Errorf("%w: %s", domain.ErrChainNotFound, chainID)
		}
	} else {
		player.Play()
	}
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			player.StopChain()
			player.Stop()
			return ctx.Err()
		case <-ticker.C:
			if !active(player) {
				return nil
			}
		}
	}
}

func active(player *playback.Scheduler) bool {
	if cs := player.ChainState(); cs.Active() {
		return !cs.IsPaused
	}
	return player.IsPlaying()
}
