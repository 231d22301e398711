package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/storyboard"
	"github.com/aretw0/storyboard/internal/config"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/ports"
)

// Options are the settings shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	// Dir, when set, selects the file backend rooted at Dir.
	Dir string
}

// LoadConfig reads the configuration file, if any, and applies flag overrides.
func LoadConfig(opts Options) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Dir != "" {
		cfg.Store.Backend = config.BackendFile
		cfg.Store.Path = opts.Dir
	}
	return cfg, nil
}

// EngineOption tweaks engine creation for a single command.
type EngineOption func(*[]storyboard.Option)

// WithHooks registers playback hooks.
func WithHooks(h domain.PlaybackHooks) EngineOption {
	return func(o *[]storyboard.Option) {
		*o = append(*o, storyboard.WithHooks(h))
	}
}

// Manual disables the real-time frame driver; playback only moves on Advance.
func Manual() EngineOption {
	return func(o *[]storyboard.Option) {
		*o = append(*o, storyboard.WithDriverFactory(func() ports.FrameDriver { return nil }))
	}
}

// CreateEngine initializes a Storyboard engine with standard CLI conventions.
func CreateEngine(cfg *config.Config, logger *slog.Logger, opts ...EngineOption) (*storyboard.Engine, error) {
	engineOpts := []storyboard.Option{
		storyboard.WithConfig(cfg),
		storyboard.WithLogger(logger),
	}
	for _, opt := range opts {
		opt(&engineOpts)
	}
	engine, err := storyboard.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
