package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/gesture"
	"github.com/san-kum/attractors/internal/particles"
	"github.com/san-kum/attractors/internal/physics"
)

const (
	DefaultStepsPerSecond   = 240.0
	DefaultMaxStepsPerFrame = 12
)

type Options struct {
	Field            particles.Options
	StepsPerSecond   float64
	MaxStepsPerFrame int
	Transform        TransformOptions
	Seed             uint64
}

func DefaultOptions() Options {
	return Options{
		Field:            particles.DefaultOptions(),
		StepsPerSecond:   DefaultStepsPerSecond,
		MaxStepsPerFrame: DefaultMaxStepsPerFrame,
		Transform:        DefaultTransformOptions(),
		Seed:             1,
	}
}

// Engine owns the particle field and everything the render loop mutates
// between frames. It is not safe for concurrent use; cycle events from other
// goroutines arrive through the channel given to SetCycleSource.
type Engine struct {
	catalog   []physics.Attractor
	integ     dynamo.Integrator
	opts      Options
	rng       *rand.Rand
	sel       *Selector
	field     *particles.Field
	transform *Transform
	acc       float64
	rebuilds  int
	reseeds   int64
	cycles    <-chan struct{}
	metrics   []Metric
	observers []Observer
	log       *log.Logger
}

func New(catalog []physics.Attractor, integ dynamo.Integrator, opts Options, logger *log.Logger) (*Engine, error) {
	if len(catalog) == 0 {
		return nil, &dynamo.ConfigError{Field: "attractors", Reason: "at least one attractor is required"}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	e := &Engine{
		catalog:   catalog,
		integ:     integ,
		opts:      opts,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		sel:       NewSelector(len(catalog)),
		transform: NewTransform(opts.Transform),
		log:       logger.WithPrefix("engine"),
	}
	if err := e.rebuild(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the step budget and field options.
func (o Options) Validate() error {
	if o.StepsPerSecond <= 0 {
		return &dynamo.ConfigError{Field: "steps_per_second", Reason: fmt.Sprintf("must be positive, got %f", o.StepsPerSecond)}
	}
	if o.MaxStepsPerFrame <= 0 {
		return &dynamo.ConfigError{Field: "max_steps_per_frame", Reason: fmt.Sprintf("must be positive, got %d", o.MaxStepsPerFrame)}
	}
	return o.Field.Validate()
}

// rebuild replaces the field for the current selection.
func (e *Engine) rebuild() error {
	att := e.catalog[e.sel.Index()]
	start := time.Now()
	f, err := particles.New(att, e.integ, e.opts.Field, e.rng)
	if err != nil {
		return fmt.Errorf("build %s field: %w", att.Name, err)
	}
	e.field = f
	e.acc = 0
	e.rebuilds++
	e.log.Info("field ready", "attractor", att.Name, "particles", f.Particles(),
		"trail", f.TrailLength(), "scale", f.Scale(), "took", time.Since(start).Round(time.Millisecond))
	return nil
}

// SetCycleSource wires fist events from a gesture tracker.
func (e *Engine) SetCycleSource(ch <-chan struct{}) { e.cycles = ch }

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Cycle moves to the next attractor and rebuilds the field.
func (e *Engine) Cycle() error {
	prev := e.sel.Index()
	e.sel.Next()
	return e.rebuildOrRestore(prev)
}

// Select jumps to attractor i and rebuilds the field, even when i is the
// current index.
func (e *Engine) Select(i int) error {
	prev := e.sel.Index()
	if err := e.sel.Set(i); err != nil {
		return err
	}
	return e.rebuildOrRestore(prev)
}

// rebuildOrRestore rebuilds the field for the current index, or returns the
// selector to prev so the index keeps naming the live field.
func (e *Engine) rebuildOrRestore(prev int) error {
	if err := e.rebuild(); err != nil {
		_ = e.sel.Set(prev)
		return err
	}
	return nil
}

// SelectName selects the active attractor with the given name.
func (e *Engine) SelectName(name string) error {
	want, err := physics.Lookup(name)
	if err != nil {
		return err
	}
	for i, a := range e.catalog {
		if a.Kind() == want.Kind() {
			return e.Select(i)
		}
	}
	return fmt.Errorf("%w: %s is not in the active list", dynamo.ErrUnknownAttractor, want.Name)
}

func (e *Engine) Index() int                    { return e.sel.Index() }
func (e *Engine) Len() int                      { return e.sel.Len() }
func (e *Engine) Field() *particles.Field       { return e.field }
func (e *Engine) Attractor() physics.Attractor  { return e.catalog[e.sel.Index()] }
func (e *Engine) Catalog() []physics.Attractor  { return e.catalog }
func (e *Engine) Transform() TransformState     { return e.transform.State() }
func (e *Engine) Integrator() dynamo.Integrator { return e.integ }
func (e *Engine) Rebuilds() int                 { return e.rebuilds }

// StepBudget converts elapsed wall time into an integration step count,
// carrying the fractional remainder to the next frame. A frame that would
// exceed MaxStepsPerFrame is clamped and the backlog dropped.
func (e *Engine) StepBudget(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	e.acc += elapsed.Seconds() * e.opts.StepsPerSecond
	n := int(e.acc)
	e.acc -= float64(n)
	if n > e.opts.MaxStepsPerFrame {
		n = e.opts.MaxStepsPerFrame
		e.acc = 0
	}
	return n
}

func (e *Engine) drainCycles() {
	if e.cycles == nil {
		return
	}
	for {
		select {
		case <-e.cycles:
			if err := e.Cycle(); err != nil {
				e.log.Error("cycle failed", "err", err)
			}
		default:
			return
		}
	}
}

// Tick runs one render-loop frame.
func (e *Engine) Tick(elapsed time.Duration, m gesture.HandMetrics) Frame {
	e.drainCycles()
	e.transform.Update(m, elapsed.Seconds())

	n := e.StepBudget(elapsed)
	before := e.field.Stats().Reseeds
	e.field.Advance(n)
	if burst := e.field.Stats().Reseeds - before; burst > 0 {
		e.reseeds += burst
		e.log.Debug("reseeded diverged particles", "count", burst)
	}

	for _, mt := range e.metrics {
		mt.Observe(e.field)
	}

	fr := e.frame(n)
	for _, o := range e.observers {
		o.OnFrame(fr)
	}
	return fr
}

func (e *Engine) frame(steps int) Frame {
	f := e.field
	return Frame{
		Attractor: f.Attractor().Name,
		Index:     e.sel.Index(),
		Steps:     steps,
		Vertices:  f.Vertices(),
		Trail:     f.TrailLength(),
		Positions: f.Positions,
		Colors:    f.Colors,
		Alpha:     f.Alpha,
		Size:      f.Size,
		Transform: e.transform.State(),
		Stats:     f.Stats(),
	}
}

// Run drives the engine headless for a fixed number of frames of frameDur
// each, reading hand metrics from metrics (which may be nil).
func (e *Engine) Run(ctx context.Context, frames int, frameDur time.Duration, metrics func() gesture.HandMetrics) (*Result, error) {
	if frames <= 0 {
		return nil, &dynamo.ConfigError{Field: "frames", Reason: fmt.Sprintf("must be positive, got %d", frames)}
	}
	if frameDur <= 0 {
		return nil, &dynamo.ConfigError{Field: "frame_duration", Reason: "must be positive"}
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	result := &Result{
		Series:  make(map[string][]float64),
		Metrics: make(map[string]float64),
	}
	startRebuilds, startReseeds := e.rebuilds, e.reseeds

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var hm gesture.HandMetrics
		if metrics != nil {
			hm = metrics()
		}
		fr := e.Tick(frameDur, hm)

		result.Frames++
		result.Steps += int64(fr.Steps)
		for _, m := range e.metrics {
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
	}

	result.Reseeds = e.reseeds - startReseeds
	result.Rebuilds = e.rebuilds - startRebuilds
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
