package metrics

import (
	"math"

	"github.com/san-kum/attractors/internal/particles"
)

// Containment is the fraction of observed frames in which every head stayed
// inside the display cube [-threshold, threshold]^3.
type Containment struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewContainment(threshold float64) *Containment {
	return &Containment{
		name:      "containment",
		threshold: threshold,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f *particles.Field) {
	c.samples++
	trail := f.TrailLength()
	for p := 0; p < f.Particles(); p++ {
		v := p * trail * 3
		if math.Abs(float64(f.Positions[v])) > c.threshold ||
			math.Abs(float64(f.Positions[v+1])) > c.threshold ||
			math.Abs(float64(f.Positions[v+2])) > c.threshold {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
