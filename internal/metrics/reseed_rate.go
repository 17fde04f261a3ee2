package metrics

import (
	"github.com/san-kum/attractors/internal/particles"
)

// ReseedRate is the number of divergence reseeds per particle step of the
// field currently being observed. A rebuild restarts the count.
type ReseedRate struct {
	name    string
	field   *particles.Field
	start   particles.Stats
	current particles.Stats
}

func NewReseedRate() *ReseedRate {
	return &ReseedRate{name: "reseed_rate"}
}

func (r *ReseedRate) Name() string {
	return r.name
}

func (r *ReseedRate) Observe(f *particles.Field) {
	if f != r.field {
		r.field = f
		r.start = particles.Stats{}
	}
	r.current = f.Stats()
}

func (r *ReseedRate) Value() float64 {
	steps := (r.current.Steps - r.start.Steps) * int64(r.particles())
	if steps <= 0 {
		return 0
	}
	return float64(r.current.Reseeds-r.start.Reseeds) / float64(steps)
}

func (r *ReseedRate) particles() int {
	if r.field == nil {
		return 0
	}
	return r.field.Particles()
}

func (r *ReseedRate) Reset() {
	r.field = nil
	r.start = particles.Stats{}
	r.current = particles.Stats{}
}
