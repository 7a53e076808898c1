// Package metrics reduces a run to scalar figures, one observer per figure.
package metrics

import (
	"github.com/san-kum/glide/internal/kinematics"
)

// Metric observes every post-step state and reports a single value.
type Metric interface {
	Name() string
	OnStep(t float64, s kinematics.State)
	Value() float64
	Reset()
}

// Set fans one step out to several metrics. It implements game.Observer.
type Set []Metric

func (s Set) OnStep(t float64, st kinematics.State) {
	for _, m := range s {
		m.OnStep(t, st)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Standard returns the metrics reported for every headless run.
func Standard(p kinematics.Params, worldW, worldH float64) Set {
	return Set{
		NewEnergy(p.Mass),
		NewSaturation(p.MaxSpeed),
		NewOffscreen(worldW, worldH, 10),
	}
}
