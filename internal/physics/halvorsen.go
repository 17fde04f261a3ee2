package physics

import "gonum.org/v1/gonum/spatial/r3"

type Halvorsen struct{ A float64 }

func NewHalvorsen() Halvorsen { return Halvorsen{A: 1.89} }

func (Halvorsen) Kind() Kind { return KindHalvorsen }

func (h Halvorsen) derive(s r3.Vec) r3.Vec {
	return r3.Vec{
		X: -h.A*s.X - 4*s.Y - 4*s.Z - s.Y*s.Y,
		Y: -h.A*s.Y - 4*s.Z - 4*s.X - s.Z*s.Z,
		Z: -h.A*s.Z - 4*s.X - 4*s.Y - s.X*s.X,
	}
}

func (h Halvorsen) GetParams() map[string]float64 {
	return map[string]float64{"a": h.A}
}

func (h Halvorsen) with(name string, v float64) (Params, bool) {
	if name != "a" {
		return h, false
	}
	h.A = v
	return h, true
}
