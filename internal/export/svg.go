package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/storage"
	"github.com/san-kum/attractors/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

type dot struct {
	x, y, r, depth float64
	fill           string
	opacity        float32
}

// SnapshotToSVG projects every vertex of snap through cam and draws it as a
// circle in its own colour, sized by its size and faded by its alpha. Points
// are painted back to front.
func SnapshotToSVG(snap *storage.Snapshot, cam *viz.Camera, width, height int, radius float64) string {
	if snap == nil || cam == nil {
		return ""
	}

	dots := make([]dot, 0, snap.Vertices())
	for v := 0; v < snap.Vertices(); v++ {
		p := r3.Vec{
			X: float64(snap.Positions[v*3]),
			Y: float64(snap.Positions[v*3+1]),
			Z: float64(snap.Positions[v*3+2]),
		}
		x, y, depth, ok := cam.Project(p, width, height)
		if !ok || snap.Alpha[v] <= 0 {
			continue
		}
		col := colorful.Color{R: float64(snap.Colors[v*3]), G: float64(snap.Colors[v*3+1]), B: float64(snap.Colors[v*3+2])}
		dots = append(dots, dot{
			x:       float64(x),
			y:       float64(y),
			r:       radius * float64(snap.Size[v]),
			depth:   depth,
			fill:    col.Clamped().Hex(),
			opacity: snap.Alpha[v],
		})
	}
	sort.SliceStable(dots, func(i, j int) bool { return dots[i].depth < dots[j].depth })

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	for _, d := range dots {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, d.x, d.y, d.r, d.fill, d.opacity)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasSaver returns a viz.Options.SaveSVG hook that writes each canvas to
// dir as attractors_<unix>.svg, drawn at scale 4 in the theme's primary
// colour where a cell has none.
func CanvasSaver(dir string, now func() time.Time) func(*viz.Canvas, viz.Theme) (string, error) {
	return func(c *viz.Canvas, t viz.Theme) (string, error) {
		path := filepath.Join(dir, fmt.Sprintf("attractors_%d.svg", now().Unix()))
		if err := os.WriteFile(path, []byte(CanvasToSVG(c, 4, string(t.Primary))), 0644); err != nil {
			return "", err
		}
		return path, nil
	}
}

// CanvasToSVG converts a Braille canvas to SVG format, keeping cell colours.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fallback string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	header(&sb, width, height)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			fill := fallback
			if canvas.Levels[row][col] > 0 {
				fill = canvas.Colors[row][col].Clamped().Hex()
			}
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG creates an SVG polyline from projected trajectory points
func TrajectoryToSVG(points []analysis.Point2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

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

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="0.6" stroke-opacity="0.8" d="M`, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
