package particles

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// ReferenceSample integrates warmup steps from the attractor's initial state
// and returns the points after the first transient steps. A diverged state is
// reseeded within jitter of the initial state.
func ReferenceSample(att physics.Attractor, integ dynamo.Integrator, warmup, transient int, limit, jitter float64, rng *rand.Rand) []r3.Vec {
	if transient < 0 {
		transient = 0
	}
	if warmup <= transient {
		return nil
	}

	sample := make([]r3.Vec, 0, warmup-transient)
	x := att.Initial
	for i := 0; i < warmup; i++ {
		x = integ.Step(att, x, att.Step)
		if dynamo.Diverged(x, limit) {
			x = Reseed(att.Initial, jitter, rng)
		}
		if i >= transient {
			sample = append(sample, x)
		}
	}
	return sample
}

// Bounds returns the midpoint of the sample's axis-aligned bounding box and
// its largest extent. A degenerate or empty sample has scale 1.
func Bounds(sample []r3.Vec) (center r3.Vec, scale float64) {
	if len(sample) == 0 {
		return r3.Vec{}, 1
	}

	xs := make([]float64, len(sample))
	ys := make([]float64, len(sample))
	zs := make([]float64, len(sample))
	for i, p := range sample {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}

	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)
	minZ, maxZ := floats.Min(zs), floats.Max(zs)

	center = r3.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2, Z: (minZ + maxZ) / 2}
	scale = floats.Max([]float64{maxX - minX, maxY - minY, maxZ - minZ})
	if scale == 0 {
		scale = 1
	}
	return center, scale
}

// Reseed returns initial perturbed by a uniform jitter of at most
// magnitude on each axis.
func Reseed(initial r3.Vec, magnitude float64, rng *rand.Rand) r3.Vec {
	return r3.Add(initial, jitter(magnitude, rng))
}

func jitter(magnitude float64, rng *rand.Rand) r3.Vec {
	return r3.Vec{
		X: (rng.Float64()*2 - 1) * magnitude,
		Y: (rng.Float64()*2 - 1) * magnitude,
		Z: (rng.Float64()*2 - 1) * magnitude,
	}
}
