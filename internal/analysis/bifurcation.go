package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// BifurcationPoint represents the distinct local maxima of one coordinate for
// a given parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// ParseRange parses "lo:hi" with lo < hi.
func ParseRange(s string) (lo, hi float64, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, &dynamo.ConfigError{Field: "range", Reason: fmt.Sprintf("%q is not lo:hi", s)}
	}
	if lo, err = strconv.ParseFloat(strings.TrimSpace(a), 64); err != nil {
		return 0, 0, &dynamo.ConfigError{Field: "range", Reason: err.Error()}
	}
	if hi, err = strconv.ParseFloat(strings.TrimSpace(b), 64); err != nil {
		return 0, 0, &dynamo.ConfigError{Field: "range", Reason: err.Error()}
	}
	if !(lo < hi) {
		return 0, 0, &dynamo.ConfigError{Field: "range", Reason: fmt.Sprintf("%v is not below %v", lo, hi)}
	}
	return lo, hi, nil
}

// ParamSweep returns a builder that varies one named parameter of att. The
// name is checked once up front so the builder itself cannot fail.
func ParamSweep(att physics.Attractor, param string) (func(float64) physics.Attractor, error) {
	if _, err := att.WithParam(param, 0); err != nil {
		return nil, err
	}
	return func(v float64) physics.Attractor {
		out, _ := att.WithParam(param, v)
		return out
	}, nil
}

// BifurcationDiagram sweeps a parameter and records local maxima of axis.
// build returns the attractor for a parameter value; see ParamSweep. Each sweep point starts from the built attractor's Initial state, runs
// transient steps to settle and then record steps.
func BifurcationDiagram(
	build func(param float64) physics.Attractor,
	integ dynamo.Integrator,
	paramMin, paramMax float64,
	paramSteps int,
	axis Axis,
	transient, record int,
) []BifurcationPoint {
	if paramSteps <= 1 {
		paramSteps = 2 // Prevent division by zero
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)
	results := make([]BifurcationPoint, 0, paramSteps)

	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		att := build(param)
		traj := Trajectory(att, integ, att.Initial, att.Step, record, transient)
		series := Series(traj, axis)

		values := make([]float64, 0, 16)
		seen := make(map[int]bool)
		for j := 1; j+1 < len(series); j++ {
			if series[j] <= series[j-1] || series[j] < series[j+1] {
				continue
			}
			// Quantize to find distinct values
			key := int(series[j] * 1000)
			if !seen[key] {
				seen[key] = true
				values = append(values, series[j])
			}
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	var points []Point2
	for i, p := range data {
		for _, v := range p.Values {
			points = append(points, Point2{X: float64(i), Y: v})
		}
	}
	if len(points) == 0 {
		return ""
	}
	return plotPoints(points, width, height)
}
