package storyboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/storyboard/internal/config"
	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/pkg/adapters/file"
	"github.com/aretw0/storyboard/pkg/adapters/memory"
	"github.com/aretw0/storyboard/pkg/adapters/redis"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/playback"
	"github.com/aretw0/storyboard/pkg/ports"
	"github.com/aretw0/storyboard/pkg/studio"
)

// Version is the storyboard release.
const Version = "0.4.0"

// Config is the engine configuration, usually read from storyboard.yaml.
type Config = config.Config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Engine is the high-level entry point for the Storyboard library.
// It wires the Studio (authoring), one Scheduler per artboard (playback) and
// a DocumentStore (persistence).
type Engine struct {
	studio *studio.Studio
	store  ports.DocumentStore
	hooks  domain.PlaybackHooks
	logger *slog.Logger
	cfg    *Config

	newDriver  func() ports.FrameDriver
	studioOpts []studio.Option
	closeStore bool

	mu      sync.Mutex
	players map[string]*playback.Scheduler
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore injects a DocumentStore, bypassing the configured backend.
func WithStore(store ports.DocumentStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithHooks registers playback observability hooks on every scheduler.
func WithHooks(hooks domain.PlaybackHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithDriverFactory sets how schedulers obtain their frame driver. A factory
// returning nil gives manually ticked schedulers.
func WithDriverFactory(fn func() ports.FrameDriver) Option {
	return func(e *Engine) {
		e.newDriver = fn
	}
}

// WithStudioOptions passes extra options to the underlying Studio.
func WithStudioOptions(opts ...studio.Option) Option {
	return func(e *Engine) {
		e.studioOpts = append(e.studioOpts, opts...)
	}
}

// New initializes a new Storyboard Engine.
// Without WithStore, the store backend named by the configuration is opened.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{players: make(map[string]*playback.Scheduler)}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.cfg == nil {
		eng.cfg = config.Default()
	}
	if err := eng.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.newDriver == nil {
		fps := eng.cfg.Playback.FrameRate
		eng.newDriver = func() ports.FrameDriver { return playback.NewTickerDriver(fps) }
	}

	if eng.store == nil {
		store, err := OpenStore(eng.cfg.Store)
		if err != nil {
			return nil, err
		}
		eng.store = store
		eng.closeStore = true
	}

	sc := eng.cfg.Studio
	studioOpts := []studio.Option{
		studio.WithLogger(eng.logger),
		studio.WithStore(eng.store),
		studio.WithHoldTimeBounds(sc.MinHoldTime, sc.MaxHoldTime),
		studio.WithDefaultHoldTime(sc.DefaultHoldTime),
		studio.WithDefaultTransition(sc.TransitionDuration, sc.TransitionEasing),
	}
	eng.studio = studio.New(append(studioOpts, eng.studioOpts...)...)

	return eng, nil
}

// OpenStore builds the DocumentStore selected by the store configuration.
func OpenStore(cfg config.StoreConfig) (ports.DocumentStore, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendFile:
		return file.New(cfg.Path, file.WithFormat(file.ParseFormat(cfg.Format))), nil
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		return redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Studio returns the authoring model.
func (e *Engine) Studio() *studio.Studio {
	return e.studio
}

// Store returns the document store.
func (e *Engine) Store() ports.DocumentStore {
	return e.store
}

// Config returns the active configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Player returns the scheduler of an artboard, creating it on first use.
func (e *Engine) Player(artboardID string) *playback.Scheduler {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.players[artboardID]; ok {
		return p
	}
	pc := e.cfg.Playback
	opts := []playback.Option{
		playback.WithLogger(e.logger.With("artboard_id", artboardID)),
		playback.WithHooks(e.hooks),
		playback.WithSpeeds(pc.AllowedSpeeds, pc.Speed),
		playback.WithLoop(pc.Loop),
	}
	if d := e.newDriver(); d != nil {
		opts = append(opts, playback.WithDriver(d))
	}
	p := playback.NewScheduler(e.studio, artboardID, opts...)
	e.players[artboardID] = p
	return p
}

// Timeline returns the compiled timeline of an artboard.
func (e *Engine) Timeline(artboardID string) domain.ComputedTimeline {
	return e.studio.Timeline(artboardID)
}

// Sample evaluates an artboard at time t without touching any scheduler.
func (e *Engine) Sample(artboardID string, t float64) playback.Frame {
	return playback.Evaluate(e.studio.Snapshot(artboardID), e.studio.Timeline(artboardID), t)
}

// SampleChain evaluates a chain at the given cursor without touching any scheduler.
func (e *Engine) SampleChain(artboardID, chainID string, cursor domain.ChainPlaybackState) playback.Frame {
	cursor.ActiveChainID = chainID
	return playback.EvaluateChain(e.studio.Snapshot(artboardID), chainID, cursor)
}

// Load reads an artboard from the store into the studio.
func (e *Engine) Load(ctx context.Context, artboardID string, mode domain.ImportMode) (domain.ImportResult, error) {
	return e.studio.Load(ctx, artboardID, mode)
}

// Save writes an artboard to the store.
func (e *Engine) Save(ctx context.Context, artboardID string) error {
	return e.studio.Save(ctx, artboardID)
}

// Close stops every scheduler and releases the store if the engine opened it.
func (e *Engine) Close() error {
	e.mu.Lock()
	players := make([]*playback.Scheduler, 0, len(e.players))
	for _, p := range e.players {
		players = append(players, p)
	}
	e.players = make(map[string]*playback.Scheduler)
	e.mu.Unlock()

	for _, p := range players {
		p.StopChain()
		p.Stop()
	}
	if c, ok := e.store.(io.Closer); ok && e.closeStore {
		return c.Close()
	}
	return nil
}
