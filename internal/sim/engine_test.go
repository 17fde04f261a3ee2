package sim

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/gesture"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/particles"
	"github.com/san-kum/attractors/internal/physics"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Field.Particles = 20
	opts.Field.TrailLength = 4
	opts.Field.Warmup = 1500
	opts.Field.Transient = 300
	opts.Seed = 7
	// Power-of-two rates keep frame durations exact in float64.
	opts.StepsPerSecond = 32
	return opts
}

const tick = time.Second / 8

func newTestEngine(opts Options) *Engine {
	e, err := New(physics.Catalog(), integrators.NewRK4(), opts, log.New(io.Discard))
	Expect(err).NotTo(HaveOccurred())
	return e
}

type countingMetric struct {
	observed int
}

func (c *countingMetric) Name() string               { return "count" }
func (c *countingMetric) Observe(f *particles.Field) { c.observed++ }
func (c *countingMetric) Value() float64             { return float64(c.observed) }
func (c *countingMetric) Reset()                     { c.observed = 0 }

type frameRecorder struct {
	frames []Frame
}

func (r *frameRecorder) OnFrame(fr Frame) { r.frames = append(r.frames, fr) }

var _ = Describe("Engine", func() {
	var e *Engine

	BeforeEach(func() {
		e = newTestEngine(testOptions())
	})

	Describe("construction", func() {
		It("builds a field for the first attractor", func() {
			Expect(e.Index()).To(Equal(0))
			Expect(e.Attractor().Name).To(Equal("Lorenz"))
			Expect(e.Field().Particles()).To(Equal(20))
			Expect(e.Rebuilds()).To(Equal(1))
		})

		It("rejects an empty catalog", func() {
			_, err := New(nil, integrators.NewRK4(), testOptions(), log.New(io.Discard))
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})

		DescribeTable("rejects invalid step budgets",
			func(mutate func(*Options)) {
				opts := testOptions()
				mutate(&opts)
				_, err := New(physics.Catalog(), integrators.NewRK4(), opts, log.New(io.Discard))
				Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
			},
			Entry("zero steps per second", func(o *Options) { o.StepsPerSecond = 0 }),
			Entry("negative max steps", func(o *Options) { o.MaxStepsPerFrame = -1 }),
			Entry("no particles", func(o *Options) { o.Field.Particles = 0 }),
		)
	})

	Describe("selection", func() {
		It("returns to the first attractor after cycling through all of them", func() {
			for i := 0; i < e.Len(); i++ {
				Expect(e.Cycle()).To(Succeed())
			}
			Expect(e.Index()).To(Equal(0))
			Expect(e.Rebuilds()).To(Equal(1 + e.Len()))
		})

		It("labels each field with the selected attractor", func() {
			Expect(e.Cycle()).To(Succeed())
			Expect(e.Field().Attractor().Name).To(Equal(e.Catalog()[1].Name))
		})

		It("rebuilds even when selecting the current index", func() {
			old := e.Field()
			Expect(e.Select(0)).To(Succeed())
			Expect(e.Field()).NotTo(BeIdenticalTo(old))
			Expect(e.Rebuilds()).To(Equal(2))
		})

		It("keeps the current field on an out-of-range selection", func() {
			old := e.Field()
			Expect(e.Select(99)).To(MatchError(dynamo.ErrSelectionRange))
			Expect(e.Field()).To(BeIdenticalTo(old))
			Expect(e.Index()).To(Equal(0))
		})

		It("keeps the index on the live field when a rebuild fails", func() {
			old := e.Field()
			e.opts.Field.Particles = 0

			Expect(e.Cycle()).To(MatchError(dynamo.ErrInvalidConfig))
			Expect(e.Index()).To(Equal(0))
			Expect(e.Attractor().Name).To(Equal(e.Field().Attractor().Name))

			Expect(e.Select(2)).To(MatchError(dynamo.ErrInvalidConfig))
			Expect(e.Index()).To(Equal(0))
			Expect(e.Field()).To(BeIdenticalTo(old))
			Expect(e.Rebuilds()).To(Equal(1))
		})

		It("selects by name", func() {
			Expect(e.SelectName("thomas")).To(Succeed())
			Expect(e.Attractor().Name).To(Equal("Thomas"))
		})

		It("refuses names outside the active list", func() {
			opts := testOptions()
			classic, err := New(physics.Classic(), integrators.NewRK4(), opts, log.New(io.Discard))
			Expect(err).NotTo(HaveOccurred())
			Expect(classic.SelectName("rossler")).To(MatchError(dynamo.ErrUnknownAttractor))
			Expect(classic.SelectName("nope")).To(MatchError(dynamo.ErrUnknownAttractor))
		})
	})

	Describe("step budget", func() {
		It("carries fractional steps between frames", func() {
			half := time.Second / 64
			total := 0
			for i := 0; i < 10; i++ {
				total += e.StepBudget(half)
			}
			Expect(total).To(Equal(5))
		})

		It("clamps long frames and drops the backlog", func() {
			Expect(e.StepBudget(time.Second)).To(Equal(DefaultMaxStepsPerFrame))
			Expect(e.StepBudget(time.Second / 32)).To(Equal(1))
		})

		It("does nothing for non-positive elapsed time", func() {
			Expect(e.StepBudget(0)).To(Equal(0))
			Expect(e.StepBudget(-time.Second)).To(Equal(0))
		})
	})

	Describe("ticking", func() {
		It("advances the field and reports the frame", func() {
			fr := e.Tick(tick, gesture.HandMetrics{})
			Expect(fr.Steps).To(Equal(4))
			Expect(fr.Attractor).To(Equal("Lorenz"))
			Expect(fr.Vertices).To(Equal(20 * 4))
			Expect(fr.Positions).To(HaveLen(3 * 20 * 4))
			Expect(fr.Alpha).To(HaveLen(20 * 4))
			Expect(fr.Stats.Steps).To(Equal(int64(4)))
		})

		It("drains every pending cycle event before stepping", func() {
			ch := make(chan struct{}, 2)
			ch <- struct{}{}
			ch <- struct{}{}
			e.SetCycleSource(ch)

			fr := e.Tick(tick, gesture.HandMetrics{})
			Expect(fr.Index).To(Equal(2))
			Expect(fr.Attractor).To(Equal(e.Catalog()[2].Name))
			Expect(ch).To(BeEmpty())
		})

		It("feeds hand metrics into the transform", func() {
			hand := gesture.HandMetrics{Present: true, CenterX: 0.5, CenterY: 0.5, Scale: 1}
			fr := e.Tick(tick, hand)
			Expect(fr.Transform.Scale).To(BeNumerically(">", 1))
		})

		It("notifies metrics and observers", func() {
			m := &countingMetric{}
			r := &frameRecorder{}
			e.AddMetric(m)
			e.AddObserver(r)
			e.Tick(tick, gesture.HandMetrics{})
			e.Tick(tick, gesture.HandMetrics{})
			Expect(m.observed).To(Equal(2))
			Expect(r.frames).To(HaveLen(2))
		})
	})

	Describe("headless run", func() {
		It("counts frames, steps and metric series", func() {
			m := &countingMetric{}
			e.AddMetric(m)
			res, err := e.Run(context.Background(), 30, tick, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Frames).To(Equal(30))
			Expect(res.Steps).To(Equal(int64(120)))
			Expect(res.Rebuilds).To(Equal(0))
			Expect(res.Series["count"]).To(HaveLen(30))
			Expect(res.Metrics["count"]).To(Equal(30.0))
		})

		It("counts rebuilds triggered by cycle events", func() {
			ch := make(chan struct{}, 1)
			e.SetCycleSource(ch)
			ch <- struct{}{}
			res, err := e.Run(context.Background(), 3, tick, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Rebuilds).To(Equal(1))
			Expect(e.Index()).To(Equal(1))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			res, err := e.Run(ctx, 10, tick, nil)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Frames).To(Equal(0))
		})

		It("rejects a non-positive frame count", func() {
			_, err := e.Run(context.Background(), 0, tick, nil)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})
	})
})
