package metrics

import (
	"math"

	"github.com/san-kum/glide/internal/kinematics"
)

// Saturation is the fraction of steps with some axis at the speed limit.
type Saturation struct {
	name    string
	limit   float64
	hits    int
	samples int
}

func NewSaturation(limit float64) *Saturation {
	return &Saturation{
		name:  "saturation",
		limit: limit,
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) OnStep(t float64, st kinematics.State) {
	s.samples++
	for _, v := range st.Velocity {
		if math.Abs(v) >= s.limit {
			s.hits++
			return
		}
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.hits) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.hits = 0
	s.samples = 0
}
