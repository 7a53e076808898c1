package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/glide/internal/kinematics"
)

func state(x, y, vx, vy float64) kinematics.State {
	return kinematics.State{Position: mgl64.Vec2{x, y}, Velocity: mgl64.Vec2{vx, vy}}
}

func TestEnergy(t *testing.T) {
	m := NewEnergy(0.5)

	m.OnStep(0.01, state(0, 0, 1.5, 0))
	m.OnStep(0.02, state(0, 0, 0, 0))

	// (0.5*0.5*2.25 + 0) / 2
	expected := 0.28125
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy(1.0)
	m.OnStep(0, state(0, 0, 1, 1))
	m.Reset()

	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestSaturation(t *testing.T) {
	m := NewSaturation(1.5)

	m.OnStep(0, state(0, 0, 0.2, 0))
	m.OnStep(0, state(0, 0, 1.5, 0))
	m.OnStep(0, state(0, 0, 0, -1.5))
	m.OnStep(0, state(0, 0, 1.4, 1.4))

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestOffscreen(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		out  bool
	}{
		{"origin", 0, 0, false},
		{"bottom right corner", 790, 590, false},
		{"past right edge", 791, 0, true},
		{"above", 10, -0.5, true},
		{"left", -20, 300, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewOffscreen(800, 600, 10)
			m.OnStep(0, state(tt.x, tt.y, 0, 0))
			if got := m.Value() == 1; got != tt.out {
				t.Errorf("offscreen=%v, want %v", got, tt.out)
			}
		})
	}
}

func TestSetValues(t *testing.T) {
	set := Standard(kinematics.DefaultParams(), 800, 600)
	set.OnStep(0.01, state(-5, 0, 1.5, 0))

	vals := set.Values()
	if len(vals) != 3 {
		t.Fatalf("expected 3 metrics, got %v", vals)
	}
	if vals["saturation"] != 1 || vals["offscreen"] != 1 {
		t.Errorf("unexpected values %v", vals)
	}
	if vals["kinetic_energy"] <= 0 {
		t.Errorf("expected positive energy, got %f", vals["kinetic_energy"])
	}
}
