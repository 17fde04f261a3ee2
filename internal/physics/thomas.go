package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Thomas is the cyclically symmetric attractor; B is the damping.
type Thomas struct{ B float64 }

func NewThomas() Thomas { return Thomas{B: 0.208186} }

func (Thomas) Kind() Kind { return KindThomas }

func (t Thomas) derive(s r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Sin(s.Y) - t.B*s.X,
		Y: math.Sin(s.Z) - t.B*s.Y,
		Z: math.Sin(s.X) - t.B*s.Z,
	}
}

func (t Thomas) GetParams() map[string]float64 {
	return map[string]float64{"b": t.B}
}

func (t Thomas) with(name string, v float64) (Params, bool) {
	if name != "b" {
		return t, false
	}
	t.B = v
	return t, true
}
