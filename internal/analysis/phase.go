package analysis

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Axis picks one coordinate of a state.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) Of(v r3.Vec) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a%3]
}

// ParseAxis accepts "x", "y" or "z".
func ParseAxis(s string) (Axis, bool) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, true
	case "y":
		return AxisY, true
	case "z":
		return AxisZ, true
	}
	return AxisX, false
}

// Point2 is one projected sample.
type Point2 struct{ X, Y float64 }

// Trajectory integrates steps states from x0, dropping the first transient.
// Integration stops early if the state stops being finite.
func Trajectory(sys dynamo.System, integ dynamo.Integrator, x0 r3.Vec, dt float64, steps, transient int) []r3.Vec {
	x := x0
	for i := 0; i < transient; i++ {
		x = integ.Step(sys, x, dt)
	}
	out := make([]r3.Vec, 0, steps)
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, dt)
		if !dynamo.Finite(x) {
			break
		}
		out = append(out, x)
	}
	return out
}

// Series extracts one coordinate of a trajectory.
func Series(traj []r3.Vec, axis Axis) []float64 {
	out := make([]float64, len(traj))
	for i, v := range traj {
		out[i] = axis.Of(v)
	}
	return out
}

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XAxis, YAxis Axis
	Points       []Point2
}

// GeneratePhasePortrait projects a trajectory onto two axes.
func GeneratePhasePortrait(traj []r3.Vec, xAxis, yAxis Axis) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		XAxis:  xAxis,
		YAxis:  yAxis,
		Points: make([]Point2, 0, len(traj)),
	}
	for _, v := range traj {
		portrait.Points = append(portrait.Points, Point2{X: xAxis.Of(v), Y: yAxis.Of(v)})
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	return plotPoints(portrait.Points, width, height)
}

// PoincareSection records points when a trajectory crosses a plane
type PoincareSection struct {
	Points []Point2
}

// GeneratePoincareSection records the (recordX, recordY) projection each time
// the cross coordinate passes threshold going upwards, linearly interpolated
// between the two straddling samples.
func GeneratePoincareSection(traj []r3.Vec, cross Axis, threshold float64, recordX, recordY Axis) *PoincareSection {
	section := &PoincareSection{}
	for i := 1; i < len(traj); i++ {
		prev, curr := cross.Of(traj[i-1]), cross.Of(traj[i])
		if prev >= threshold || curr < threshold {
			continue
		}
		frac := (threshold - prev) / (curr - prev)
		p := r3.Add(traj[i-1], r3.Scale(frac, r3.Sub(traj[i], traj[i-1])))
		section.Points = append(section.Points, Point2{X: recordX.Of(p), Y: recordY.Of(p)})
	}
	return section
}

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}
	return plotPoints(section.Points, width, height)
}

func plotPoints(points []Point2, width, height int) string {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
