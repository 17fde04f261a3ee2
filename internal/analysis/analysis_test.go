package analysis

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
)

func lookup(t *testing.T, name string) physics.Attractor {
	t.Helper()
	att, err := physics.Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return att
}

// rotation is dx/dt = -y, dy/dt = x: neutrally stable with period 2π.
type rotation struct{}

func (rotation) Derive(v r3.Vec) r3.Vec { return r3.Vec{X: -v.Y, Y: v.X} }

// decay is dx/dt = -x on every axis.
type decay struct{}

func (decay) Derive(v r3.Vec) r3.Vec { return r3.Scale(-1, v) }

func TestLyapunovLorenzPositive(t *testing.T) {
	att := lookup(t, "lorenz")
	lambda := LyapunovExponent(att, integrators.NewRK4(), att.Initial, 0.01, 20000, 1000, 1e-8)
	// Accepted value is about 0.906.
	if lambda < 0.5 || lambda > 1.3 {
		t.Errorf("Lorenz exponent %f, want about 0.9", lambda)
	}
}

func TestLyapunovStableSystems(t *testing.T) {
	tests := []struct {
		name string
		sys  interface{ Derive(r3.Vec) r3.Vec }
		want float64
	}{
		{"rotation", rotation{}, 0},
		{"decay", decay{}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lambda := LyapunovExponent(tt.sys, integrators.NewRK4(), r3.Vec{X: 1}, 0.01, 5000, 0, 1e-6)
			if math.Abs(lambda-tt.want) > 0.05 {
				t.Errorf("exponent %f, want %f", lambda, tt.want)
			}
		})
	}
}

func TestLyapunovDegenerateInputs(t *testing.T) {
	if got := LyapunovExponent(decay{}, integrators.NewRK4(), r3.Vec{}, 0.01, 0, 0, 1e-6); got != 0 {
		t.Errorf("zero steps: got %f", got)
	}
	if got := LyapunovExponent(decay{}, integrators.NewRK4(), r3.Vec{}, 0.01, 10, 0, 0); got != 0 {
		t.Errorf("zero perturbation: got %f", got)
	}
}

func TestDominantFrequency(t *testing.T) {
	const rate = 64.0
	data := make([]float64, 256)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*4*float64(i)/rate)
	}

	freq, power := DominantFrequency(data, rate)
	if math.Abs(freq-4) > 1e-9 {
		t.Errorf("expected 4 Hz, got %f", freq)
	}
	if power <= 0 {
		t.Error("expected positive power")
	}

	if f, _ := DominantFrequency([]float64{1}, rate); f != 0 {
		t.Errorf("expected 0 for a single sample, got %f", f)
	}
}

func TestRotationPeriod(t *testing.T) {
	traj := Trajectory(rotation{}, integrators.NewRK4(), r3.Vec{X: 1}, 0.01, 4096, 0)
	freq, _ := DominantFrequency(Series(traj, AxisX), 100)
	period := 1 / freq
	if math.Abs(period-2*math.Pi) > 1 {
		t.Errorf("period %f, want about 2π", period)
	}
}

func TestAnalyzeLorenz(t *testing.T) {
	opts := DefaultOptions()
	opts.Steps = 8000
	r := Analyze(lookup(t, "lorenz"), integrators.NewRK4(), opts)

	if r.Attractor != "Lorenz" || r.Steps != 8000 || len(r.Series) != 8000 {
		t.Fatalf("unexpected report header %+v", r)
	}
	if !r.Chaotic() {
		t.Errorf("expected Lorenz to be chaotic, exponent %f", r.Lyapunov)
	}
	if r.Max.Z < 30 || r.Min.Z < 0 {
		t.Errorf("unexpected z range [%f, %f]", r.Min.Z, r.Max.Z)
	}
	if r.DominantFreq <= 0 || r.Period() <= 0 {
		t.Errorf("expected an oscillation, got %f", r.DominantFreq)
	}
}

func TestPoincareSection(t *testing.T) {
	traj := Trajectory(rotation{}, integrators.NewRK4(), r3.Vec{X: 1}, 0.01, 2000, 0)
	section := GeneratePoincareSection(traj, AxisY, 0, AxisX, AxisY)

	// Two full turns cross y=0 upwards at x≈1 roughly three times.
	if len(section.Points) < 2 {
		t.Fatalf("expected crossings, got %d", len(section.Points))
	}
	for _, p := range section.Points {
		if math.Abs(p.X-1) > 1e-3 || math.Abs(p.Y) > 1e-9 {
			t.Errorf("crossing at %+v, want (1, 0)", p)
		}
	}
}

func TestPhasePortraitASCII(t *testing.T) {
	traj := Trajectory(lookup(t, "lorenz"), integrators.NewRK4(), r3.Vec{X: 0.1}, 0.01, 500, 0)
	portrait := GeneratePhasePortrait(traj, AxisX, AxisZ)
	if len(portrait.Points) != 500 {
		t.Fatalf("expected 500 points, got %d", len(portrait.Points))
	}
	art := PhasePortraitToASCII(portrait, 40, 10)
	if n := len([]rune(art)); n != 41*10 {
		t.Errorf("expected 10 rows of 40, got %d runes", n)
	}
	if PhasePortraitToASCII(nil, 40, 10) != "" {
		t.Error("expected empty plot for nil portrait")
	}
}

func TestBifurcationLorenzRho(t *testing.T) {
	build, err := ParamSweep(lookup(t, "lorenz"), "rho")
	if err != nil {
		t.Fatalf("ParamSweep failed: %v", err)
	}

	data := BifurcationDiagram(build, integrators.NewRK4(), 10, 28, 3, AxisZ, 4000, 4000)
	if len(data) != 3 {
		t.Fatalf("expected 3 sweep points, got %d", len(data))
	}
	if data[0].Param != 10 || data[2].Param != 28 {
		t.Errorf("unexpected sweep %v..%v", data[0].Param, data[2].Param)
	}
	// rho=10 settles onto a fixed point: no oscillation maxima.
	if len(data[0].Values) > 2 {
		t.Errorf("expected a settled orbit at rho=10, got %d", len(data[0].Values))
	}
	if len(data[2].Values) < 5 {
		t.Errorf("expected many distinct maxima at rho=28, got %d", len(data[2].Values))
	}
	if BifurcationToASCII(data, 30, 8) == "" {
		t.Error("expected a plot")
	}
}

func TestParamSweep(t *testing.T) {
	base := lookup(t, "rossler")
	build, err := ParamSweep(base, "c")
	if err != nil {
		t.Fatalf("ParamSweep failed: %v", err)
	}
	if got := build(4).Params.GetParams()["c"]; got != 4 {
		t.Errorf("c = %v, want 4", got)
	}
	if build(4).Name != base.Name {
		t.Errorf("builder changed the attractor name")
	}

	if _, err := ParamSweep(base, "rho"); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("want ErrInvalidConfig for unknown param, got %v", err)
	}
}

func TestParseRange(t *testing.T) {
	lo, hi, err := ParseRange("0.5: 28")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	if lo != 0.5 || hi != 28 {
		t.Errorf("got %v:%v, want 0.5:28", lo, hi)
	}

	for _, bad := range []string{"", "10", "a:2", "1:b", "5:5", "6:2"} {
		if _, _, err := ParseRange(bad); !errors.Is(err, dynamo.ErrInvalidConfig) {
			t.Errorf("ParseRange(%q): want ErrInvalidConfig, got %v", bad, err)
		}
	}
}
