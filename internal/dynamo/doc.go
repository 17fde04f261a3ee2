// Package dynamo provides the core primitives shared by the attractor engine.
//
// The package defines the small set of interfaces the rest of the module is
// written against:
//
//   - [System]: a 3D autonomous ODE, dX/dt = f(X)
//   - [Integrator]: a fixed-step numerical integrator
//   - [Finite] and [Diverged]: the checks behind the reseed policy
//
// # Example
//
//	att := physics.Catalog()[0]
//	integ := integrators.NewRK4()
//	x := att.Initial
//	for i := 0; i < 1000; i++ {
//	    x = integ.Step(att, x, att.Step)
//	}
//
// # Thread Safety
//
// Nothing here holds state. The particle field built on top of it is owned by
// a single render loop and is NOT safe for concurrent use.
package dynamo
