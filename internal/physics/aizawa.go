package physics

import "gonum.org/v1/gonum/spatial/r3"

type Aizawa struct{ A, B, C, D, E, F float64 }

func NewAizawa() Aizawa {
	return Aizawa{A: 0.95, B: 0.7, C: 0.6, D: 3.5, E: 0.25, F: 0.1}
}

func (Aizawa) Kind() Kind { return KindAizawa }

func (p Aizawa) derive(s r3.Vec) r3.Vec {
	zb := s.Z - p.B
	return r3.Vec{
		X: zb*s.X - p.D*s.Y,
		Y: p.D*s.X + zb*s.Y,
		Z: p.C + p.A*s.Z - s.Z*s.Z*s.Z/3 - (s.X*s.X+s.Y*s.Y)*(1+p.E*s.Z) + p.F*s.Z*s.X*s.X*s.X,
	}
}

func (p Aizawa) GetParams() map[string]float64 {
	return map[string]float64{"a": p.A, "b": p.B, "c": p.C, "d": p.D, "e": p.E, "f": p.F}
}

func (p Aizawa) with(name string, v float64) (Params, bool) {
	switch name {
	case "a":
		p.A = v
	case "b":
		p.B = v
	case "c":
		p.C = v
	case "d":
		p.D = v
	case "e":
		p.E = v
	case "f":
		p.F = v
	default:
		return p, false
	}
	return p, true
}
