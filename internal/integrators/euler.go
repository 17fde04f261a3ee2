package integrators

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
)

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(dyn dynamo.System, x r3.Vec, dt float64) r3.Vec {
	return r3.Add(x, r3.Scale(dt, dyn.Derive(x)))
}
