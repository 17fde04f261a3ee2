package physics

import "gonum.org/v1/gonum/spatial/r3"

type Rossler struct{ A, B, C float64 }

func NewRossler() Rossler { return Rossler{A: 0.2, B: 0.2, C: 5.7} }

func (Rossler) Kind() Kind { return KindRossler }

func (r Rossler) derive(s r3.Vec) r3.Vec {
	return r3.Vec{X: -s.Y - s.Z, Y: s.X + r.A*s.Y, Z: r.B + s.Z*(s.X-r.C)}
}

func (r Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.A, "b": r.B, "c": r.C}
}

func (r Rossler) with(name string, v float64) (Params, bool) {
	switch name {
	case "a":
		r.A = v
	case "b":
		r.B = v
	case "c":
		r.C = v
	default:
		return r, false
	}
	return r, true
}
