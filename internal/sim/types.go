package sim

import (
	"fmt"
	"math"
	"time"
)

type PhysicsStepper interface {
	Step(t, dt float64) error
}

type FrameRenderer interface {
	Render(fps int) error
}

// FrameStarter is implemented by steppers that want to know where one
// frame's batch of steps begins.
type FrameStarter interface {
	BeginFrame()
}

type StepFunc func(t, dt float64) error

func (f StepFunc) Step(t, dt float64) error { return f(t, dt) }

type RenderFunc func(fps int) error

func (f RenderFunc) Render(fps int) error { return f(fps) }

type Config struct {
	Dt  float64 `yaml:"dt"`
	FPS int     `yaml:"fps"`
	// Duration bounds the run in simulated seconds; zero runs until a
	// callback quits.
	Duration  float64 `yaml:"duration,omitempty"`
	MaxFrames uint64  `yaml:"max_frames,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Dt:  0.01,
		FPS: 60,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %f", ErrInvalidConfig, c.Duration)
	}
	return nil
}

func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// StepLimit converts Duration into a whole number of physics steps.
func (c Config) StepLimit() uint64 {
	if c.Duration <= 0 {
		return 0
	}
	return uint64(math.Round(c.Duration / c.Dt))
}

type Stats struct {
	Frames uint64
	Steps  uint64
	// MaxCatchUp is the largest number of steps drained in a single frame.
	MaxCatchUp int
}
