package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// System is an autonomous three dimensional ODE.
type System interface {
	Derive(x r3.Vec) r3.Vec
}

// Integrator advances a System by one fixed step.
type Integrator interface {
	Name() string
	Step(sys System, x r3.Vec, dt float64) r3.Vec
}

// Finite reports whether every coordinate of v is a real number.
func Finite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Diverged reports whether v is non-finite or has a coordinate whose
// magnitude exceeds limit.
func Diverged(v r3.Vec, limit float64) bool {
	if !Finite(v) {
		return true
	}
	return math.Abs(v.X) > limit || math.Abs(v.Y) > limit || math.Abs(v.Z) > limit
}
