// Package config loads the storyboard YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/storyboard/pkg/domain"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

const (
	DefaultFrameRate = 60
	DefaultPort      = 8080
	DefaultStorePath = ".storyboard/artboards"
	DefaultRedisAddr = "localhost:6379"
)

type Config struct {
	LogLevel string         `yaml:"log_level"`
	Playback PlaybackConfig `yaml:"playback"`
	Studio   StudioConfig   `yaml:"studio"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
}

type PlaybackConfig struct {
	Speed         float64   `yaml:"speed"`
	AllowedSpeeds []float64 `yaml:"allowed_speeds"`
	Loop          bool      `yaml:"loop"`
	FrameRate     int       `yaml:"frame_rate"`
}

type StudioConfig struct {
	MinHoldTime        float64       `yaml:"min_hold_time"`
	MaxHoldTime        float64       `yaml:"max_hold_time"`
	DefaultHoldTime    float64       `yaml:"default_hold_time"`
	TransitionDuration float64       `yaml:"transition_duration"`
	TransitionEasing   domain.Easing `yaml:"transition_easing"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Format  string      `yaml:"format"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Playback: PlaybackConfig{
			Speed:         domain.DefaultPlaybackSpeed,
			AllowedSpeeds: append([]float64(nil), domain.AllowedPlaybackSpeeds...),
			FrameRate:     DefaultFrameRate,
		},
		Studio: StudioConfig{
			MinHoldTime:        domain.MinHoldTime,
			MaxHoldTime:        domain.MaxHoldTime,
			DefaultHoldTime:    domain.DefaultHoldTime,
			TransitionDuration: domain.DefaultTransitionDuration,
			TransitionEasing:   domain.DefaultEasing,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			Path:    DefaultStorePath,
			Format:  "json",
			Redis:   RedisConfig{Addr: DefaultRedisAddr},
		},
		Server: ServerConfig{Port: DefaultPort},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Studio.MaxHoldTime < c.Studio.MinHoldTime {
		return fmt.Errorf("max_hold_time %g below min_hold_time %g", c.Studio.MaxHoldTime, c.Studio.MinHoldTime)
	}
	if c.Playback.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.Playback.FrameRate)
	}
	if len(c.Playback.AllowedSpeeds) == 0 {
		return fmt.Errorf("allowed_speeds must not be empty")
	}
	return nil
}
