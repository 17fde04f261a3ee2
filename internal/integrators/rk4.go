package integrators

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
)

// RK4 is the classical fourth order Runge-Kutta stepper.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(dyn dynamo.System, x r3.Vec, dt float64) r3.Vec {
	h := dt * 0.5

	k1 := dyn.Derive(x)
	k2 := dyn.Derive(r3.Add(x, r3.Scale(h, k1)))
	k3 := dyn.Derive(r3.Add(x, r3.Scale(h, k2)))
	k4 := dyn.Derive(r3.Add(x, r3.Scale(dt, k3)))

	dt6 := dt / 6.0
	return r3.Vec{
		X: x.X + dt6*(k1.X+2*k2.X+2*k3.X+k4.X),
		Y: x.Y + dt6*(k1.Y+2*k2.Y+2*k3.Y+k4.Y),
		Z: x.Z + dt6*(k1.Z+2*k2.Z+2*k3.Z+k4.Z),
	}
}
