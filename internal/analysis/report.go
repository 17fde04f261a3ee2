package analysis

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

type Options struct {
	Steps        int
	Transient    int
	Perturbation float64
	Axis         Axis
}

func DefaultOptions() Options {
	return Options{
		Steps:        20000,
		Transient:    2000,
		Perturbation: 1e-8,
		Axis:         AxisX,
	}
}

// Report summarises one attractor.
type Report struct {
	Attractor string
	Steps     int
	Lyapunov  float64
	// DominantFreq is in cycles per unit of model time.
	DominantFreq float64
	Min, Max     r3.Vec
	Series       []float64
}

func (r Report) Chaotic() bool { return r.Lyapunov > 0 }

// Period is 1/DominantFreq, or 0 when no oscillation was found.
func (r Report) Period() float64 {
	if r.DominantFreq == 0 {
		return 0
	}
	return 1 / r.DominantFreq
}

// Analyze integrates att from its initial condition and reports its largest
// Lyapunov exponent, dominant frequency on opts.Axis and bounding box.
func Analyze(att physics.Attractor, integ dynamo.Integrator, opts Options) Report {
	traj := Trajectory(att, integ, att.Initial, att.Step, opts.Steps, opts.Transient)
	series := Series(traj, opts.Axis)

	r := Report{
		Attractor: att.Name,
		Steps:     len(traj),
		Lyapunov:  LyapunovExponent(att, integ, att.Initial, att.Step, opts.Steps, opts.Transient, opts.Perturbation),
		Series:    series,
	}
	r.DominantFreq, _ = DominantFrequency(series, 1/att.Step)

	if len(traj) > 0 {
		r.Min, r.Max = traj[0], traj[0]
		for _, v := range traj[1:] {
			r.Min = r3.Vec{X: min(r.Min.X, v.X), Y: min(r.Min.Y, v.Y), Z: min(r.Min.Z, v.Z)}
			r.Max = r3.Vec{X: max(r.Max.X, v.X), Y: max(r.Max.Y, v.Y), Z: max(r.Max.Z, v.Z)}
		}
	}
	return r
}
