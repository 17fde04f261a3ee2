package sim

import (
	"github.com/san-kum/attractors/internal/particles"
)

// Metric observes the field after every tick.
type Metric interface {
	Name() string
	Observe(f *particles.Field)
	Value() float64
	Reset()
}

// Observer is notified after every tick with the frame just produced.
type Observer interface {
	OnFrame(fr Frame)
}

// Frame is what a render loop draws. The buffer slices alias the live field
// and are only valid until the next tick or selection change.
type Frame struct {
	Attractor string
	Index     int
	Steps     int
	Vertices  int
	Trail     int

	Positions []float32
	Colors    []float32
	Alpha     []float32
	Size      []float32

	Transform TransformState
	Stats     particles.Stats
}

// Result summarises a headless run.
type Result struct {
	Frames   int
	Steps    int64
	Reseeds  int64
	Rebuilds int
	Series   map[string][]float64
	Metrics  map[string]float64
}
