// Package trace records the entity after every physics step and exports the
// run as CSV, JSON or terminal plots.
package trace

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/glide/internal/kinematics"
)

var (
	ErrEmpty         = errors.New("trace: no samples recorded")
	ErrUnknownSeries = errors.New("trace: unknown series")
)

type Sample struct {
	T        float64              `json:"t"`
	Position mgl64.Vec2           `json:"position"`
	Velocity mgl64.Vec2           `json:"velocity"`
	Facing   kinematics.Direction `json:"facing"`
}

// Recorder implements game.Observer.
type Recorder struct {
	samples []Sample
}

// NewRecorder starts a trace with the entity state at t=0.
func NewRecorder(initial kinematics.State) *Recorder {
	r := &Recorder{samples: make([]Sample, 0, 256)}
	r.OnStep(0, initial)
	return r
}

func (r *Recorder) OnStep(t float64, s kinematics.State) {
	r.samples = append(r.samples, Sample{
		T:        t,
		Position: s.Position,
		Velocity: s.Velocity,
		Facing:   s.Facing,
	})
}

func (r *Recorder) Samples() []Sample { return r.samples }

// Steps is the number of recorded physics steps, excluding the initial state.
func (r *Recorder) Steps() int { return len(r.samples) - 1 }

// SeriesNames lists what Series accepts.
func SeriesNames() []string {
	return []string{"x", "y", "vx", "vy", "speed"}
}

func (r *Recorder) Series(name string) ([]float64, error) {
	var pick func(Sample) float64
	switch name {
	case "x":
		pick = func(s Sample) float64 { return s.Position.X() }
	case "y":
		pick = func(s Sample) float64 { return s.Position.Y() }
	case "vx":
		pick = func(s Sample) float64 { return s.Velocity.X() }
	case "vy":
		pick = func(s Sample) float64 { return s.Velocity.Y() }
	case "speed":
		pick = func(s Sample) float64 { return s.Velocity.Len() }
	default:
		return nil, ErrUnknownSeries
	}

	out := make([]float64, len(r.samples))
	for i, s := range r.samples {
		out[i] = pick(s)
	}
	return out, nil
}

type Summary struct {
	Steps        int              `json:"steps"`
	Elapsed      float64          `json:"elapsed"`
	Distance     float64          `json:"distance"`
	Displacement mgl64.Vec2       `json:"displacement"`
	PeakSpeed    float64          `json:"peak_speed"`
	Final        kinematics.State `json:"final"`
}

func (r *Recorder) Summary() (Summary, error) {
	if len(r.samples) == 0 {
		return Summary{}, ErrEmpty
	}

	first := r.samples[0]
	last := r.samples[len(r.samples)-1]
	sum := Summary{
		Steps:        r.Steps(),
		Elapsed:      last.T - first.T,
		Displacement: last.Position.Sub(first.Position),
		Final: kinematics.State{
			Position: last.Position,
			Velocity: last.Velocity,
			Facing:   last.Facing,
		},
	}
	for i, s := range r.samples {
		sum.PeakSpeed = math.Max(sum.PeakSpeed, s.Velocity.Len())
		if i > 0 {
			sum.Distance += s.Position.Sub(r.samples[i-1].Position).Len()
		}
	}
	return sum, nil
}
