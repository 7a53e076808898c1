package metrics

import "github.com/san-kum/glide/internal/kinematics"

// Offscreen is the fraction of steps where a size×size marker at the entity
// position is not fully inside the world.
type Offscreen struct {
	name       string
	w, h, size float64
	violations int
	samples    int
}

func NewOffscreen(w, h, size float64) *Offscreen {
	return &Offscreen{
		name: "offscreen",
		w:    w,
		h:    h,
		size: size,
	}
}

func (o *Offscreen) Name() string {
	return o.name
}

func (o *Offscreen) OnStep(t float64, s kinematics.State) {
	o.samples++
	x, y := s.Position.X(), s.Position.Y()
	if x < 0 || y < 0 || x+o.size > o.w || y+o.size > o.h {
		o.violations++
	}
}

func (o *Offscreen) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.violations) / float64(o.samples)
}

func (o *Offscreen) Reset() {
	o.violations = 0
	o.samples = 0
}
