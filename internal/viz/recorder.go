package viz

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"os"
)

const (
	charW = 8
	charH = 16
)

// Recorder collects canvas frames and writes them as an animated GIF.
type Recorder struct {
	frames []*image.Paletted
	delay  int
	limit  int
}

// NewRecorder keeps at most limit frames, each shown for delay hundredths of
// a second.
func NewRecorder(delay, limit int) *Recorder {
	return &Recorder{delay: max(delay, 1), limit: limit}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterises the canvas dots in their cell colours over bg.
func (r *Recorder) Capture(c *Canvas, theme Theme) {
	if r.limit > 0 && len(r.frames) >= r.limit {
		return
	}
	bg, fallback := Colorful(theme.Background), Colorful(theme.Primary)
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), palette.Plan9)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(x, y, bg)
		}
	}

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern == 0 {
				continue
			}
			fg, lvl := c.Colors[row][col], c.Levels[row][col]
			if lvl == 0 {
				fg, lvl = fallback, 1
			}
			ink := bg.BlendRgb(fg, float64(lvl)).Clamped()
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.Set(baseX+dx*dotW+px, baseY+dy*dotH+py, ink)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save writes the recording to path and clears it.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("nothing recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return err
	}
	r.frames = nil
	return nil
}
