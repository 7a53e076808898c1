package kinematics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultForce    = 10.0
	DefaultMass     = 0.5
	DefaultMaxSpeed = 1.5

	// Scale converts velocity (pixels per millisecond) times dt (seconds)
	// into pixels.
	Scale = 1000.0
)

type Params struct {
	Force    float64 `yaml:"force" json:"force"`
	Mass     float64 `yaml:"mass" json:"mass"`
	MaxSpeed float64 `yaml:"max_speed" json:"max_speed"`
}

func DefaultParams() Params {
	return Params{
		Force:    DefaultForce,
		Mass:     DefaultMass,
		MaxSpeed: DefaultMaxSpeed,
	}
}

// Validate rejects constants that would make acceleration or clamping
// meaningless.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
		ok   bool
	}{
		{"force", p.Force, p.Force >= 0},
		{"mass", p.Mass, p.Mass > 0},
		{"max_speed", p.MaxSpeed, p.MaxSpeed > 0},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || !c.ok {
			return &ParamError{Name: c.name, Value: c.v}
		}
	}
	return nil
}

// State is a read-only copy of the entity taken after a step.
type State struct {
	Position mgl64.Vec2 `json:"position"`
	Velocity mgl64.Vec2 `json:"velocity"`
	Facing   Direction  `json:"facing"`
}

type Entity struct {
	params   Params
	accel    float64
	position mgl64.Vec2
	velocity mgl64.Vec2
	facing   Direction
}

// New builds an entity facing North at rest.
func New(pos mgl64.Vec2, p Params) (*Entity, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Entity{
		params:   p,
		accel:    p.Force / p.Mass,
		position: pos,
		facing:   North,
	}, nil
}

// Advance turns to dir (dropping momentum if it differs from the held
// direction), accelerates along its axis for dt seconds and moves the entity.
func (e *Entity) Advance(dir Direction, dt float64) {
	if !dir.Valid() {
		return
	}
	if dir != e.facing {
		e.facing = dir
		e.velocity = mgl64.Vec2{}
	}

	axis, sign := dir.Axis()
	e.velocity[axis] += sign * e.accel * dt
	for i := range e.velocity {
		e.velocity[i] = clamp(e.velocity[i], e.params.MaxSpeed)
	}

	e.position = e.position.Add(e.velocity.Mul(dt * Scale))
}

// Stop drops all momentum. Position and facing are kept.
func (e *Entity) Stop() {
	e.velocity = mgl64.Vec2{}
}

func (e *Entity) Position() mgl64.Vec2  { return e.position }
func (e *Entity) Velocity() mgl64.Vec2  { return e.velocity }
func (e *Entity) Facing() Direction     { return e.facing }
func (e *Entity) Params() Params        { return e.params }
func (e *Entity) Acceleration() float64 { return e.accel }

func (e *Entity) Snapshot() State {
	return State{Position: e.position, Velocity: e.velocity, Facing: e.facing}
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
