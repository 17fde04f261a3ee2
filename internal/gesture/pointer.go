package gesture

// Pointer lets a mouse drive the metrics cell directly. It is used when no
// detector is configured so the render transform still has an input.
type Pointer struct {
	cell  *Cell
	scale float64
	x, y  float64
	in    bool
}

func NewPointer(cell *Cell) *Pointer {
	return &Pointer{cell: cell, scale: 0.5}
}

// Move places the pointer at normalized (x, y) and marks a hand present.
func (p *Pointer) Move(x, y float64) {
	p.x, p.y, p.in = clamp01(x), clamp01(y), true
	p.publish()
}

// Zoom nudges the simulated hand size.
func (p *Pointer) Zoom(delta float64) {
	p.scale = clamp01(p.scale + delta)
	if p.in {
		p.publish()
	}
}

// Leave reports that no hand is present.
func (p *Pointer) Leave() {
	p.in = false
	p.cell.Store(HandMetrics{})
}

func (p *Pointer) publish() {
	p.cell.Store(HandMetrics{Present: true, CenterX: p.x, CenterY: p.y, Scale: p.scale})
}
