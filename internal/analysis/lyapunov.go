package analysis

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent of sys by
// following a reference trajectory and a neighbour d0 away, renormalising the
// neighbour back to d0 after every step. A positive value indicates chaos.
//
// The first transient steps only settle the reference onto the attractor.
func LyapunovExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 r3.Vec,
	dt float64,
	steps, transient int,
	d0 float64,
) float64 {
	if steps <= 0 || dt <= 0 || d0 <= 0 {
		return 0
	}

	x := x0
	for i := 0; i < transient; i++ {
		x = integ.Step(sys, x, dt)
	}
	if !dynamo.Finite(x) {
		return math.NaN()
	}

	xp := r3.Add(x, r3.Vec{X: d0})
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, dt)
		xp = integ.Step(sys, xp, dt)

		diff := r3.Sub(xp, x)
		sep := r3.Norm(diff)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			// Trajectories merged or blew up; restart the neighbour.
			xp = r3.Add(x, r3.Vec{X: d0})
			continue
		}

		sumLog += math.Log(sep / d0)
		count++
		xp = r3.Add(x, r3.Scale(d0/sep, diff))
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
