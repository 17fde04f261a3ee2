package gesture

import "sync/atomic"

// HandMetrics is the per-frame hand signal. The zero value means no hand.
type HandMetrics struct {
	Present bool
	CenterX float64
	CenterY float64
	Scale   float64
}

// Cell is a single-writer, single-reader slot for the latest metrics.
type Cell struct {
	p atomic.Pointer[HandMetrics]
}

// Load returns the latest stored metrics, or the zero value.
func (c *Cell) Load() HandMetrics {
	if m := c.p.Load(); m != nil {
		return *m
	}
	return HandMetrics{}
}

func (c *Cell) Store(m HandMetrics) {
	c.p.Store(&m)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
