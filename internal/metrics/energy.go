package metrics

import "github.com/san-kum/glide/internal/kinematics"

// Energy is the mean kinetic energy over all steps, in mass·(px/ms)².
type Energy struct {
	name        string
	mass        float64
	samples     int
	totalEnergy float64
}

func NewEnergy(mass float64) *Energy {
	return &Energy{
		name: "kinetic_energy",
		mass: mass,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) OnStep(t float64, s kinematics.State) {
	v := s.Velocity
	e.totalEnergy += 0.5 * e.mass * v.Dot(v)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}
