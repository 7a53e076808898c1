package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/glide/internal/input"
	"github.com/san-kum/glide/internal/kinematics"
	"github.com/san-kum/glide/internal/sim"
)

const (
	DefaultDt           = 0.01
	DefaultFPS          = 60
	DefaultWorldWidth   = 800
	DefaultWorldHeight  = 600
	DefaultReleaseDelay = input.DefaultReleaseDelay
	DefaultTheme        = "terminal"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Entity EntityConfig    `yaml:"entity"`
	Loop   LoopConfig      `yaml:"loop"`
	Input  InputConfig     `yaml:"input"`
	World  WorldConfig     `yaml:"world"`
	Script []input.Segment `yaml:"script,omitempty"`
}

type EntityConfig struct {
	Force    float64 `yaml:"force"`
	Mass     float64 `yaml:"mass"`
	MaxSpeed float64 `yaml:"max_speed"`
	StartX   float64 `yaml:"start_x"`
	StartY   float64 `yaml:"start_y"`
}

type LoopConfig struct {
	Dt       float64 `yaml:"dt"`
	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration,omitempty"`
}

type InputConfig struct {
	PollTimeout  time.Duration `yaml:"poll_timeout"`
	ReleaseDelay time.Duration `yaml:"release_delay"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Theme names a terminal color scheme.
	Theme string `yaml:"theme,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Entity: EntityConfig{
			Force:    kinematics.DefaultForce,
			Mass:     kinematics.DefaultMass,
			MaxSpeed: kinematics.DefaultMaxSpeed,
		},
		Loop: LoopConfig{
			Dt:  DefaultDt,
			FPS: DefaultFPS,
		},
		Input: InputConfig{
			ReleaseDelay: DefaultReleaseDelay,
		},
		World: WorldConfig{
			Width:  DefaultWorldWidth,
			Height: DefaultWorldHeight,
			Theme:  DefaultTheme,
		},
	}
}

// Load overlays the YAML file at path on top of base. A nil base starts
// from DefaultConfig.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if base != nil {
		cfg = base.Clone()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Clone() *Config {
	cp := *c
	cp.Script = append([]input.Segment(nil), c.Script...)
	return &cp
}

func (c *Config) Validate() error {
	if err := c.EntityParams().Validate(); err != nil {
		return fmt.Errorf("%w: entity: %w", ErrInvalid, err)
	}
	loop := c.LoopConfig()
	if err := loop.Validate(); err != nil {
		return fmt.Errorf("%w: loop: %w", ErrInvalid, err)
	}
	if limit := c.PollLimit(); c.Input.PollTimeout < 0 || c.Input.PollTimeout > limit {
		return fmt.Errorf("%w: input.poll_timeout must be within [0, %v], got %v",
			ErrInvalid, limit, c.Input.PollTimeout)
	}
	if c.Input.ReleaseDelay < 0 {
		return fmt.Errorf("%w: input.release_delay must not be negative, got %v", ErrInvalid, c.Input.ReleaseDelay)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world must have a positive size, got %gx%g", ErrInvalid, c.World.Width, c.World.Height)
	}
	return nil
}

// PollLimit bounds input.poll_timeout by both the frame interval and one
// physics step, so a blocking poll never costs more wall time than the
// simulated time it serves.
func (c *Config) PollLimit() time.Duration {
	step := time.Duration(c.Loop.Dt * float64(time.Second))
	return min(c.LoopConfig().FrameInterval(), step)
}

func (c *Config) EntityParams() kinematics.Params {
	return kinematics.Params{
		Force:    c.Entity.Force,
		Mass:     c.Entity.Mass,
		MaxSpeed: c.Entity.MaxSpeed,
	}
}

func (c *Config) Start() mgl64.Vec2 {
	return mgl64.Vec2{c.Entity.StartX, c.Entity.StartY}
}

func (c *Config) LoopConfig() sim.Config {
	return sim.Config{
		Dt:       c.Loop.Dt,
		FPS:      c.Loop.FPS,
		Duration: c.Loop.Duration,
	}
}
