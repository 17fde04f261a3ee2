package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/viz"
)

const pointSize = 0.006

// place applies the view rotation and combined scale to a field point.
func (a *App) place(p r3.Vec) rl.Vector3 {
	scale := a.view.Zoom()
	if s := a.frame.Transform.Scale; s > 0 {
		scale *= s
	}
	q := r3.Scale(scale, a.view.RotatePoint(p))
	return rl.NewVector3(float32(q.X), float32(q.Y), float32(q.Z))
}

func toColor(c colorful.Color, alpha float32) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(alpha*255))
}

// RenderField draws every vertex of the current frame. Heads are drawn as
// small cubes sized by the field, trail vertices as points.
func (a *App) RenderField() {
	fr := a.frame
	var tint colorful.Color
	if a.mono {
		tint = viz.Colorful(a.theme.Primary)
	}
	for v := 0; v < fr.Vertices; v++ {
		if fr.Alpha[v] <= 0 {
			continue
		}
		pos := a.place(r3.Vec{
			X: float64(fr.Positions[v*3]),
			Y: float64(fr.Positions[v*3+1]),
			Z: float64(fr.Positions[v*3+2]),
		})
		col := colorful.Color{R: float64(fr.Colors[v*3]), G: float64(fr.Colors[v*3+1]), B: float64(fr.Colors[v*3+2])}
		if a.mono {
			col = tint
		}
		c := toColor(col, fr.Alpha[v])

		if fr.Trail > 0 && v%fr.Trail == 0 {
			s := pointSize * fr.Size[v]
			rl.DrawCubeV(pos, rl.NewVector3(s, s, s), c)
			continue
		}
		rl.DrawPoint3D(pos, c)
	}
}

// RenderBox outlines the normalization cube.
func (a *App) RenderBox() {
	corners := [8]r3.Vec{}
	for i := range corners {
		corners[i] = r3.Vec{X: float64(i&1)*2 - 1, Y: float64(i>>1&1)*2 - 1, Z: float64(i>>2&1)*2 - 1}
	}
	for i := 0; i < 8; i++ {
		for bit := 1; bit < 8; bit <<= 1 {
			if j := i | bit; j != i {
				rl.DrawLine3D(a.place(corners[i]), a.place(corners[j]), a.colors.grid)
			}
		}
	}
}
