package particles

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

const (
	DefaultParticles       = 4000
	DefaultWarmup          = 6000
	DefaultTransient       = 1000
	DefaultJitterFraction  = 0.015
	DefaultDivergenceLimit = 1000.0
	DefaultReseedJitter    = 0.1
	DefaultBaseSize        = 1.0
)

// Options controls field construction.
type Options struct {
	Particles       int
	TrailLength     int
	Warmup          int
	Transient       int
	JitterFraction  float64
	DivergenceLimit float64
	ReseedJitter    float64
	BaseSize        float64
}

func DefaultOptions() Options {
	return Options{
		Particles:       DefaultParticles,
		TrailLength:     1,
		Warmup:          DefaultWarmup,
		Transient:       DefaultTransient,
		JitterFraction:  DefaultJitterFraction,
		DivergenceLimit: DefaultDivergenceLimit,
		ReseedJitter:    DefaultReseedJitter,
		BaseSize:        DefaultBaseSize,
	}
}

// Validate reports the first invalid option as a *dynamo.ConfigError.
func (o Options) Validate() error {
	switch {
	case o.Particles <= 0:
		return &dynamo.ConfigError{Field: "particles", Reason: fmt.Sprintf("must be positive, got %d", o.Particles)}
	case o.TrailLength < 1:
		return &dynamo.ConfigError{Field: "trail_length", Reason: fmt.Sprintf("must be at least 1, got %d", o.TrailLength)}
	case o.Transient < 0 || o.Warmup <= o.Transient:
		return &dynamo.ConfigError{Field: "warmup", Reason: fmt.Sprintf("warmup %d must exceed transient %d", o.Warmup, o.Transient)}
	case o.DivergenceLimit <= 0:
		return &dynamo.ConfigError{Field: "divergence_limit", Reason: "must be positive"}
	}
	return nil
}

// Stats counts work done since the field was created.
type Stats struct {
	Steps   int64
	Reseeds int64
}

// Field is the live simulation state for one attractor.
type Field struct {
	att   physics.Attractor
	integ dynamo.Integrator
	rng   *rand.Rand
	opts  Options

	heads []r3.Vec

	Positions []float32
	Colors    []float32
	Alpha     []float32
	Size      []float32

	center r3.Vec
	scale  float64
	stats  Stats
}

// New runs the normalization pass for att and seeds a fresh population.
func New(att physics.Attractor, integ dynamo.Integrator, opts Options, rng *rand.Rand) (*Field, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.ReseedJitter <= 0 {
		opts.ReseedJitter = DefaultReseedJitter
	}
	if opts.BaseSize <= 0 {
		opts.BaseSize = DefaultBaseSize
	}

	sample := ReferenceSample(att, integ, opts.Warmup, opts.Transient, opts.DivergenceLimit, opts.ReseedJitter, rng)
	center, scale := Bounds(sample)

	n, trail := opts.Particles, opts.TrailLength
	verts := n * trail
	f := &Field{
		att:       att,
		integ:     integ,
		rng:       rng,
		opts:      opts,
		heads:     make([]r3.Vec, n),
		Positions: make([]float32, verts*3),
		Colors:    make([]float32, verts*3),
		Alpha:     make([]float32, verts),
		Size:      make([]float32, verts),
		center:    center,
		scale:     scale,
	}

	palette := ParsePalette(att.Palette)
	spread := opts.JitterFraction * scale
	for p := 0; p < n; p++ {
		head := sample[rng.Intn(len(sample))]
		f.heads[p] = r3.Add(head, jitter(spread, rng))

		col := pickColor(palette, rng)
		base := p * trail
		for t := 0; t < trail; t++ {
			v := base + t
			fall := Falloff(t, trail)
			f.Alpha[v] = float32(fall)
			f.Size[v] = float32(opts.BaseSize * (0.25 + 0.75*fall))
			f.Colors[v*3] = float32(col.R)
			f.Colors[v*3+1] = float32(col.G)
			f.Colors[v*3+2] = float32(col.B)
			f.writeVertex(v, f.heads[p])
		}
	}

	return f, nil
}

// Advance integrates every particle n steps.
func (f *Field) Advance(n int) {
	trail := f.opts.TrailLength
	for s := 0; s < n; s++ {
		for p := range f.heads {
			base := p * trail
			if trail > 1 {
				off := base * 3
				copy(f.Positions[off+3:off+trail*3], f.Positions[off:off+(trail-1)*3])
			}

			next := f.integ.Step(f.att, f.heads[p], f.att.Step)
			if dynamo.Diverged(next, f.opts.DivergenceLimit) {
				next = Reseed(f.att.Initial, f.opts.ReseedJitter, f.rng)
				f.stats.Reseeds++
			}
			f.heads[p] = next
			f.writeVertex(base, next)
		}
		f.stats.Steps++
	}
}

func (f *Field) writeVertex(v int, raw r3.Vec) {
	n := f.Normalize(raw)
	f.Positions[v*3] = float32(n.X)
	f.Positions[v*3+1] = float32(n.Y)
	f.Positions[v*3+2] = float32(n.Z)
}

// Normalize maps a raw attractor point into display space.
func (f *Field) Normalize(raw r3.Vec) r3.Vec {
	return r3.Scale(1/f.scale, r3.Sub(raw, f.center))
}

// Heads returns a copy of the raw head positions.
func (f *Field) Heads() []r3.Vec {
	out := make([]r3.Vec, len(f.heads))
	copy(out, f.heads)
	return out
}

func (f *Field) Attractor() physics.Attractor { return f.att }
func (f *Field) Center() r3.Vec               { return f.center }
func (f *Field) Scale() float64               { return f.scale }
func (f *Field) Stats() Stats                 { return f.stats }
func (f *Field) Particles() int               { return len(f.heads) }
func (f *Field) TrailLength() int             { return f.opts.TrailLength }
func (f *Field) Vertices() int                { return len(f.Alpha) }
