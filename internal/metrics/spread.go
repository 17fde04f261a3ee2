package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/particles"
)

// Spread tracks the mean distance of particle heads from the display origin,
// averaged over all observed frames.
type Spread struct {
	name    string
	total   float64
	last    float64
	samples int
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(f *particles.Field) {
	s.last = HeadSpread(f)
	s.total += s.last
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

// Last is the spread of the most recent frame.
func (s *Spread) Last() float64 { return s.last }

func (s *Spread) Reset() {
	s.total = 0
	s.last = 0
	s.samples = 0
}

// HeadSpread is the mean norm of the normalized head positions of f.
func HeadSpread(f *particles.Field) float64 {
	n := f.Particles()
	if n == 0 {
		return 0
	}
	trail := f.TrailLength()
	sum := 0.0
	for p := 0; p < n; p++ {
		v := p * trail * 3
		sum += r3.Norm(r3.Vec{
			X: float64(f.Positions[v]),
			Y: float64(f.Positions[v+1]),
			Z: float64(f.Positions[v+2]),
		})
	}
	return sum / float64(n)
}
