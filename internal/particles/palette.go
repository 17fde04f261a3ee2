package particles

import (
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"
)

var fallbackColor = colorful.Color{R: 1, G: 1, B: 1}

// ParsePalette converts hex strings to colours, skipping invalid entries.
func ParsePalette(hex []string) []colorful.Color {
	out := make([]colorful.Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// pickColor blends two random palette entries in Lab space.
func pickColor(palette []colorful.Color, rng *rand.Rand) colorful.Color {
	switch len(palette) {
	case 0:
		return fallbackColor
	case 1:
		return palette[0]
	}
	a := palette[rng.Intn(len(palette))]
	b := palette[rng.Intn(len(palette))]
	return a.BlendLab(b, rng.Float64()).Clamped()
}

// Falloff is the brightness of trail offset t in a trail of length n:
// 1 at the head, decaying quadratically towards the tail.
func Falloff(t, n int) float64 {
	if n <= 1 {
		return 1
	}
	u := 1 - float64(t)/float64(n)
	return u * u
}
