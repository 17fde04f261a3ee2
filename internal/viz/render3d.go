package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/sim"
)

const (
	minZoom = 0.2
	maxZoom = 8.0
)

// Camera projects normalized field coordinates onto the canvas. Its own
// rotation offsets stack on top of the engine transform, and zoom eases
// towards its target on a critically damped spring.
type Camera struct {
	Distance   float64
	RotX, RotY float64

	zoom, zoomVel, zoomTarget float64
	spring                    harmonica.Spring
	transform                 sim.TransformState
}

func NewCamera(fps int) *Camera {
	if fps <= 0 {
		fps = 60
	}
	return &Camera{
		Distance:   3,
		zoom:       1,
		zoomTarget: 1,
		spring:     harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		transform:  sim.TransformState{Scale: 1},
	}
}

func (c *Camera) RotateX(a float64)   { c.RotX += a }
func (c *Camera) RotateY(a float64)   { c.RotY += a }
func (c *Camera) ZoomIn()             { c.zoomTarget = math.Min(maxZoom, c.zoomTarget*1.2) }
func (c *Camera) ZoomOut()            { c.zoomTarget = math.Max(minZoom, c.zoomTarget/1.2) }
func (c *Camera) Zoom() float64       { return c.zoom }
func (c *Camera) ZoomTarget() float64 { return c.zoomTarget }

// Reset drops user rotation and zoom.
func (c *Camera) Reset() {
	c.RotX, c.RotY = 0, 0
	c.zoomTarget = 1
}

// Update advances the zoom spring one frame and adopts the engine transform.
func (c *Camera) Update(ts sim.TransformState) {
	c.zoom, c.zoomVel = c.spring.Update(c.zoom, c.zoomVel, c.zoomTarget)
	c.transform = ts
}

// RotatePoint applies the transform rotation followed by the user offsets.
func (c *Camera) RotatePoint(p r3.Vec) r3.Vec {
	rx, ry := c.transform.RotX+c.RotX, c.transform.RotY+c.RotY
	cx, sx := math.Cos(rx), math.Sin(rx)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(ry), math.Sin(ry)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project converts a field point to screen coordinates on an sw x sh pixel
// surface. Returns x, y, depth, and visibility.
func (c *Camera) Project(p r3.Vec, sw, sh int) (int, int, float64, bool) {
	scale := c.zoom
	if c.transform.Scale > 0 {
		scale *= c.transform.Scale
	}
	rot := r3.Scale(scale, c.RotatePoint(p))
	dist := c.Distance
	if rot.Z >= dist-0.05 {
		return 0, 0, 0, false
	}
	persp := dist / (dist - rot.Z)
	pScale := float64(min(sw, sh)) * 0.8
	x := int(rot.X*persp*pScale) + sw/2
	y := int(-rot.Y*persp*pScale) + sh/2
	return x, y, rot.Z, x >= 0 && x < sw && y >= 0 && y < sh
}

// DrawFrame plots every vertex of fr. When tint is non-nil it replaces the
// particle colours.
func DrawFrame(cv *Canvas, cam *Camera, fr sim.Frame, tint *colorful.Color) int {
	sw, sh := cv.PixelSize()
	drawn := 0
	for v := 0; v < fr.Vertices; v++ {
		p := r3.Vec{
			X: float64(fr.Positions[v*3]),
			Y: float64(fr.Positions[v*3+1]),
			Z: float64(fr.Positions[v*3+2]),
		}
		x, y, _, ok := cam.Project(p, sw, sh)
		if !ok {
			continue
		}
		col := colorful.Color{R: float64(fr.Colors[v*3]), G: float64(fr.Colors[v*3+1]), B: float64(fr.Colors[v*3+2])}
		if tint != nil {
			col = *tint
		}
		cv.SetColor(x, y, col, fr.Alpha[v])
		drawn++
	}
	return drawn
}

type Edge struct {
	Start, End r3.Vec
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe           { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e r3.Vec) { w.Edges = append(w.Edges, Edge{s, e}) }

// Render3D draws the wireframe to the canvas.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.PixelSize()
	for _, e := range w.Edges {
		x1, y1, _, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, _, v2 := cam.Project(e.End, sw, sh)
		if v1 || v2 {
			c.DrawLine(x1, y1, x2, y2)
		}
	}
}

// CreateCubeWireframe outlines the display cube of the given edge length.
func CreateCubeWireframe(size float64) *Wireframe {
	w, s := NewWireframe(), size/2
	v := []r3.Vec{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s},
		{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}
