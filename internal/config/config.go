package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/gesture"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/particles"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
)

const (
	DefaultFPS   = 60
	DefaultTheme = "neon"
)

// Gesture sources.
const (
	SourceNone    = "none"
	SourcePointer = "pointer"
	SourceReplay  = "replay"
)

type Config struct {
	// Attractors is the active cycle; empty means the full catalog.
	Attractors       []string             `yaml:"attractors"`
	Start            string               `yaml:"start,omitempty"`
	Integrator       string               `yaml:"integrator"`
	Particles        int                  `yaml:"particles"`
	TrailLength      int                  `yaml:"trail_length"`
	Warmup           int                  `yaml:"warmup"`
	Transient        int                  `yaml:"transient"`
	Jitter           float64              `yaml:"jitter"`
	DivergenceLimit  float64              `yaml:"divergence_limit"`
	BaseSize         float64              `yaml:"base_size"`
	StepsPerSecond   float64              `yaml:"steps_per_second"`
	MaxStepsPerFrame int                  `yaml:"max_steps_per_frame"`
	Seed             uint64               `yaml:"seed"`
	FPS              int                  `yaml:"fps"`
	Theme            string               `yaml:"theme"`
	Gesture          GestureConfig        `yaml:"gesture"`
	Transform        sim.TransformOptions `yaml:"transform"`
}

type GestureConfig struct {
	Source     string        `yaml:"source"`
	ReplayPath string        `yaml:"replay_path,omitempty"`
	Interval   time.Duration `yaml:"interval"`
	Cooldown   time.Duration `yaml:"cooldown"`
	Smoothing  float64       `yaml:"smoothing"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator:       "rk4",
		Particles:        particles.DefaultParticles,
		TrailLength:      1,
		Warmup:           particles.DefaultWarmup,
		Transient:        particles.DefaultTransient,
		Jitter:           particles.DefaultJitterFraction,
		DivergenceLimit:  particles.DefaultDivergenceLimit,
		BaseSize:         particles.DefaultBaseSize,
		StepsPerSecond:   sim.DefaultStepsPerSecond,
		MaxStepsPerFrame: sim.DefaultMaxStepsPerFrame,
		Seed:             1,
		FPS:              DefaultFPS,
		Theme:            DefaultTheme,
		Gesture: GestureConfig{
			Source:    SourcePointer,
			Interval:  gesture.DefaultInterval,
			Cooldown:  gesture.DefaultCooldown,
			Smoothing: gesture.DefaultSmoothing,
		},
		Transform: sim.DefaultTransformOptions(),
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto reads the YAML file at path over a copy of base, so keys the
// file omits keep base's values. base is not modified.
func LoadInto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Attractors = append([]string(nil), c.Attractors...)
	return &out
}

func (c *Config) Validate() error {
	if _, err := physics.Select(c.Attractors); err != nil {
		return err
	}
	if _, err := integrators.Lookup(c.Integrator); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return &dynamo.ConfigError{Field: "fps", Reason: fmt.Sprintf("must be positive, got %d", c.FPS)}
	}
	switch c.Gesture.Source {
	case SourceNone, SourcePointer:
	case SourceReplay:
		if c.Gesture.ReplayPath == "" {
			return &dynamo.ConfigError{Field: "gesture.replay_path", Reason: "required for the replay source"}
		}
	default:
		return &dynamo.ConfigError{Field: "gesture.source", Reason: fmt.Sprintf("unknown source %q", c.Gesture.Source)}
	}
	if c.Gesture.Smoothing <= 0 || c.Gesture.Smoothing > 1 {
		return &dynamo.ConfigError{Field: "gesture.smoothing", Reason: "must be in (0, 1]"}
	}
	t := c.Transform
	if t.Smoothing <= 0 || t.Smoothing > 1 || t.BiasSmoothing <= 0 || t.BiasSmoothing > 1 {
		return &dynamo.ConfigError{Field: "transform", Reason: "smoothing factors must be in (0, 1]"}
	}
	if t.Decay < 0 || t.Decay >= 1 {
		return &dynamo.ConfigError{Field: "transform.decay", Reason: "must be in [0, 1)"}
	}
	return c.EngineOptions().Validate()
}

// Catalog resolves the active attractor list.
func (c *Config) Catalog() ([]physics.Attractor, error) {
	return physics.Select(c.Attractors)
}

func (c *Config) GetIntegrator() (dynamo.Integrator, error) {
	return integrators.Lookup(c.Integrator)
}

func (c *Config) FieldOptions() particles.Options {
	return particles.Options{
		Particles:       c.Particles,
		TrailLength:     c.TrailLength,
		Warmup:          c.Warmup,
		Transient:       c.Transient,
		JitterFraction:  c.Jitter,
		DivergenceLimit: c.DivergenceLimit,
		ReseedJitter:    particles.DefaultReseedJitter,
		BaseSize:        c.BaseSize,
	}
}

func (c *Config) EngineOptions() sim.Options {
	return sim.Options{
		Field:            c.FieldOptions(),
		StepsPerSecond:   c.StepsPerSecond,
		MaxStepsPerFrame: c.MaxStepsPerFrame,
		Transform:        c.Transform,
		Seed:             c.Seed,
	}
}

func (c *Config) TrackerOptions() gesture.TrackerOptions {
	return gesture.TrackerOptions{
		Interval:  c.Gesture.Interval,
		Smoothing: c.Gesture.Smoothing,
		Cooldown:  c.Gesture.Cooldown,
	}
}

// FrameDuration is the render-loop period implied by FPS.
func (c *Config) FrameDuration() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}
