package integrators

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// rotation is dx/dt = -y, dy/dt = x, dz/dt = -z.
type rotation struct{}

func (rotation) Derive(x r3.Vec) r3.Vec { return r3.Vec{X: -x.Y, Y: x.X, Z: -x.Z} }

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := r3.Vec{X: 1, Z: 1}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(rotation{}, x, dt)
	}

	tEnd := float64(steps) * dt
	if math.Abs(x.X-math.Cos(tEnd)) > 1e-8 {
		t.Errorf("x error too large: got %.10f, expected %.10f", x.X, math.Cos(tEnd))
	}
	if math.Abs(x.Y-math.Sin(tEnd)) > 1e-8 {
		t.Errorf("y error too large: got %.10f, expected %.10f", x.Y, math.Sin(tEnd))
	}
	if math.Abs(x.Z-math.Exp(-tEnd)) > 1e-8 {
		t.Errorf("z error too large: got %.10f, expected %.10f", x.Z, math.Exp(-tEnd))
	}
}

func TestRK4MatchesFormula(t *testing.T) {
	att, _ := physics.Lookup("lorenz")
	x := r3.Vec{X: 1, Y: 2, Z: 3}
	dt := 0.01

	k1 := att.Derive(x)
	k2 := att.Derive(r3.Add(x, r3.Scale(dt/2, k1)))
	k3 := att.Derive(r3.Add(x, r3.Scale(dt/2, k2)))
	k4 := att.Derive(r3.Add(x, r3.Scale(dt, k3)))
	sum := r3.Add(r3.Add(k1, r3.Scale(2, k2)), r3.Add(r3.Scale(2, k3), k4))
	want := r3.Add(x, r3.Scale(dt/6, sum))

	got := NewRK4().Step(att, x, dt)
	if r3.Norm(r3.Sub(got, want)) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRK4Deterministic(t *testing.T) {
	integ := NewRK4()
	x := r3.Vec{X: 0.5, Y: -0.25, Z: 1.5}

	for _, att := range physics.Catalog() {
		a := integ.Step(att, x, att.Step)
		b := integ.Step(att, x, att.Step)
		if a != b {
			t.Errorf("%s: step not bit-identical: %v vs %v", att.Name, a, b)
		}
	}
}

func TestLorenzStaysBounded(t *testing.T) {
	att, _ := physics.Lookup("lorenz")
	integ := NewRK4()

	x := r3.Vec{X: 0.1}
	for i := 0; i < 1000; i++ {
		x = integ.Step(att, x, 0.01)
	}

	if dynamo.Diverged(x, 100) {
		t.Errorf("lorenz left the bounded region: %v", x)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	x := NewEuler().Step(rotation{}, r3.Vec{X: 1, Z: 1}, 0.1)
	want := r3.Vec{X: 1, Y: 0.1, Z: 0.9}
	if r3.Norm(r3.Sub(x, want)) > 1e-12 {
		t.Errorf("expected %v, got %v", want, x)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		integ, err := Lookup(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("expected name %s, got %s", name, integ.Name())
		}
	}

	if _, err := Lookup("rk45"); !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}
