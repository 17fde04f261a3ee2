package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/storage"
	"github.com/san-kum/attractors/internal/viz"
)

func testSnapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Metadata:  storage.Metadata{Attractor: "Lorenz", Particles: 1, Trail: 3},
		Positions: []float32{0, 0, 0.2, 0, 0, 0, 0.1, 0.1, -0.2},
		Colors:    []float32{1, 0, 0, 1, 0, 0, 1, 0, 0},
		Alpha:     []float32{1, 0.5, 0},
		Size:      []float32{1, 0.625, 0.25},
	}
}

func TestSnapshotToSVG(t *testing.T) {
	svg := SnapshotToSVG(testSnapshot(), viz.NewCamera(60), 400, 300, 2)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("malformed document:\n%s", svg)
	}
	// The zero-alpha tail vertex is skipped.
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("expected particle colour in output")
	}

	// The nearer head (z=0.2) is painted after the farther vertex.
	first := strings.Index(svg, `fill-opacity="0.500"`)
	second := strings.Index(svg, `fill-opacity="1.000"`)
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected back-to-front ordering:\n%s", svg)
	}

	if SnapshotToSVG(nil, viz.NewCamera(60), 10, 10, 1) != "" {
		t.Error("expected empty output for nil snapshot")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.SetColor(0, 0, colorful.Color{G: 1}, 1)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 4, "#ffffff")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `fill="#00ff00"`) || !strings.Contains(svg, `fill="#ffffff"`) {
		t.Errorf("expected cell colour and fallback:\n%s", svg)
	}
	if CanvasToSVG(nil, 1, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestCanvasSaver(t *testing.T) {
	dir := t.TempDir()
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)

	save := CanvasSaver(dir, func() time.Time { return time.Unix(1700000000, 0) })
	path, err := save(c, viz.GetTheme("neon"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if path != filepath.Join(dir, "attractors_1700000000.svg") {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `fill="` + string(viz.GetTheme("neon").Primary) + `"`
	if !strings.Contains(string(data), want) {
		t.Errorf("expected theme primary %s in:\n%s", want, data)
	}

	bad := CanvasSaver(filepath.Join(dir, "missing"), time.Now)
	if _, err := bad(c, viz.GetTheme("neon")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	pts := []analysis.Point2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	svg := TrajectoryToSVG(pts, 100, 50, "#ff6b6b")
	if !strings.Contains(svg, `stroke="#ff6b6b"`) {
		t.Error("expected stroke colour")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments:\n%s", svg)
	}
	if TrajectoryToSVG(pts[:1], 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
}
