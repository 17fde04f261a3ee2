package physics

import "gonum.org/v1/gonum/spatial/r3"

type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() Lorenz { return Lorenz{Sigma: 10.0, Rho: 28.0, Beta: 8.0 / 3.0} }

func (Lorenz) Kind() Kind { return KindLorenz }

func (l Lorenz) derive(s r3.Vec) r3.Vec {
	return r3.Vec{
		X: l.Sigma * (s.Y - s.X),
		Y: s.X*(l.Rho-s.Z) - s.Y,
		Z: s.X*s.Y - l.Beta*s.Z,
	}
}

func (l Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l Lorenz) with(name string, v float64) (Params, bool) {
	switch name {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		l.Beta = v
	default:
		return l, false
	}
	return l, true
}
