// Package metrics exposes playback activity as Prometheus collectors.
package metrics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/pkg/domain"
)

// Collector owns a private registry so several engines (and tests) never
// collide on the global one.
type Collector struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	playbackEvents *prometheus.CounterVec
	segments       *prometheus.CounterVec
	chainEvents    *prometheus.CounterVec
	frameDelta     prometheus.Histogram
	frameElements  prometheus.Gauge
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger logs every event at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New registers the storyboard collectors on a fresh registry.
func New(opts ...Option) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		logger:   logging.NewNop(),
		playbackEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyboard_playback_events_total",
				Help: "Timeline playback events by type (play, pause, stop, seek, loop, finish).",
			},
			[]string{"artboard_id", "type"},
		),
		segments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyboard_segments_entered_total",
				Help: "Timeline segments entered during playback.",
			},
			[]string{"artboard_id", "segment_type"},
		),
		chainEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyboard_chain_events_total",
				Help: "Chain playback events by type (chain_start, chain_step, chain_end).",
			},
			[]string{"artboard_id", "type"},
		),
		frameDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storyboard_frame_delta_ms",
			Help:    "Scaled time advanced per frame in milliseconds.",
			Buckets: []float64{1, 4, 8, 16, 33, 50, 100, 250},
		}),
		frameElements: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storyboard_frame_elements",
			Help: "Elements derived in the most recent frame.",
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.registry.MustRegister(c.playbackEvents, c.segments, c.chainEvents, c.frameDelta, c.frameElements)
	return c
}

// Registry returns the registry holding the storyboard collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Hooks records every event and then forwards it to next.
func (c *Collector) Hooks(next domain.PlaybackHooks) domain.PlaybackHooks {
	return domain.PlaybackHooks{
		OnPlayback: func(ctx context.Context, e *domain.PlaybackEvent) {
			c.logger.Debug("playback", "artboard_id", e.ArtboardID, "type", e.Type, "time", e.CurrentTime, "speed", e.Speed)
			c.playbackEvents.WithLabelValues(e.ArtboardID, string(e.Type)).Inc()
			if next.OnPlayback != nil {
				next.OnPlayback(ctx, e)
			}
		},
		OnSegmentEnter: func(ctx context.Context, e *domain.SegmentEvent) {
			c.logger.Debug("segment_enter", "artboard_id", e.ArtboardID, "label", e.Segment.Label)
			c.segments.WithLabelValues(e.ArtboardID, string(e.Segment.Type)).Inc()
			if next.OnSegmentEnter != nil {
				next.OnSegmentEnter(ctx, e)
			}
		},
		OnChain: func(ctx context.Context, e *domain.ChainEvent) {
			c.logger.Debug("chain", "artboard_id", e.ArtboardID, "type", e.Type, "chain_id", e.ChainID, "step", e.StepIndex)
			c.chainEvents.WithLabelValues(e.ArtboardID, string(e.Type)).Inc()
			if next.OnChain != nil {
				next.OnChain(ctx, e)
			}
		},
		OnFrame: func(ctx context.Context, e *domain.FrameEvent) {
			c.frameDelta.Observe(e.DeltaMs)
			c.frameElements.Set(float64(e.Elements))
			if next.OnFrame != nil {
				next.OnFrame(ctx, e)
			}
		},
	}
}
