package viz

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("expected dots 1 and 8, got %U", got)
	}
	if c.Dots() != 2 {
		t.Errorf("expected 2 dots, got %d", c.Dots())
	}

	c.Unset(0, 0)
	if got := c.Grid[0][0]; got != blank|0x80 {
		t.Errorf("expected dot 8 only, got %U", got)
	}

	// Out of range writes are ignored.
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)
	if c.Dots() != 1 {
		t.Errorf("expected 1 dot, got %d", c.Dots())
	}

	c.Clear()
	if c.Dots() != 0 {
		t.Error("expected empty canvas after clear")
	}
}

func TestCanvasStrongestColourWins(t *testing.T) {
	c := NewCanvas(2, 2)
	head := colorful.Color{R: 1}
	tail := colorful.Color{B: 1}

	c.SetColor(0, 0, tail, 0.2)
	c.SetColor(1, 1, head, 0.9)
	c.SetColor(0, 2, tail, 0.5)

	if c.Colors[0][0] != head || c.Levels[0][0] != 0.9 {
		t.Errorf("expected head colour to win, got %v at %f", c.Colors[0][0], c.Levels[0][0])
	}
	if c.Dots() != 3 {
		t.Errorf("expected 3 dots, got %d", c.Dots())
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 0)
	if c.Dots() != 20 {
		t.Errorf("expected 20 dots on a horizontal line, got %d", c.Dots())
	}
}

func TestCanvasStringAndRender(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetColor(0, 0, colorful.Color{R: 1, G: 1, B: 1}, 1)

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 || len([]rune(lines[0])) != 3 {
		t.Fatalf("unexpected layout %q", c.String())
	}

	out := c.Render(colorful.Color{}, colorful.Color{G: 1})
	if !strings.Contains(out, string(rune(blank|0x1))) {
		t.Error("rendered output lost the dot")
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}
