package gui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/attractors/internal/gesture"
	"github.com/san-kum/attractors/internal/metrics"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	maxFrameGap  = 250 * time.Millisecond
	historyLen   = 200
)

// palette is the HUD colour set derived from a theme.
type palette struct {
	bg, accent, selected, text, dim, grid, hand, alert rl.Color
}

func newPalette(t viz.Theme) palette {
	c := func(col lipgloss.Color, alpha float32) rl.Color { return toColor(viz.Colorful(col), alpha) }
	return palette{
		bg:       c(t.Background, 1),
		accent:   c(t.Accent, 1),
		selected: c(t.Text, 1),
		text:     c(t.Text, 0.6),
		dim:      c(t.Muted, 1),
		grid:     c(t.Muted, 0.4),
		hand:     c(t.Hand, 1),
		alert:    c(t.Alert, 1),
	}
}

type App struct {
	engine  *sim.Engine
	opts    viz.Options
	camera  rl.Camera3D
	view    *viz.Camera
	theme   viz.Theme
	colors  palette
	font    rl.Font
	frame   sim.Frame
	running bool
	showBox bool
	mono    bool
	spread  []float64
	message string
	log     *log.Logger
}

// initWindow opens a 1280x720 window at the requested frame rate and
// disables the default exit key.
func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenWidth, screenHeight, "attractors")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when it is installed and falls back to the
// raylib default font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(engine *sim.Engine, opts viz.Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme := viz.GetTheme(opts.Theme)
	return &App{
		engine: engine,
		opts:   opts,
		camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 3.2),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		view:    viz.NewCamera(opts.FPS),
		theme:   theme,
		colors:  newPalette(theme),
		font:    loadFont(),
		running: true,
		mono:    theme.Monochrome,
		spread:  make([]float64, 0, historyLen),
		log:     logger.WithPrefix("gui"),
	}
}

// Run opens the window and drives engine until the window closes or ctx is
// cancelled.
func Run(ctx context.Context, engine *sim.Engine, opts viz.Options) error {
	if engine == nil {
		return fmt.Errorf("gui: nil engine")
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(engine, opts)
	app.log.Info("window open", "attractor", engine.Attractor().Name, "fps", opts.FPS)
	return app.RunLoop(ctx)
}

func (a *App) RunLoop(ctx context.Context) error {
	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if !a.Update() {
			return nil
		}
		a.Draw()
	}
	return nil
}

// Update handles input and ticks the engine. It reports false once the user
// asks to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace), rl.IsKeyPressed(rl.KeyEnter),
		rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.cycle()
	case rl.IsKeyPressed(rl.KeyP):
		a.running = !a.running
	case rl.IsKeyPressed(rl.KeyB):
		a.showBox = !a.showBox
	case rl.IsKeyPressed(rl.KeyT):
		a.theme = viz.NextTheme(a.theme.Name)
		a.colors = newPalette(a.theme)
		a.mono = a.theme.Monochrome
	case rl.IsKeyPressed(rl.KeyR):
		a.view.Reset()
	}
	for i := 0; i < 9 && i < a.engine.Len(); i++ {
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			a.selectIndex(i)
		}
	}

	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		a.view.RotateY(-0.03)
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		a.view.RotateY(0.03)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		a.view.RotateX(-0.03)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		a.view.RotateX(0.03)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.view.RotateY(float64(delta.X) * 0.005)
		a.view.RotateX(float64(delta.Y) * 0.005)
	}
	a.pointer()

	elapsed := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	if elapsed > maxFrameGap {
		elapsed = maxFrameGap
	}
	if !a.running {
		elapsed = 0
	}
	var hands gesture.HandMetrics
	if a.opts.Hands != nil {
		hands = a.opts.Hands.Load()
	}
	a.frame = a.engine.Tick(elapsed, hands)
	a.view.Update(a.frame.Transform)

	a.spread = append(a.spread, metrics.HeadSpread(a.engine.Field()))
	if len(a.spread) > historyLen {
		a.spread = a.spread[1:]
	}
	return true
}

// pointer feeds the mouse into the gesture pointer, or into the camera zoom
// when no pointer is wired.
func (a *App) pointer() {
	wheel := rl.GetMouseWheelMove()
	p := a.opts.Pointer
	if p == nil {
		if wheel > 0 {
			a.view.ZoomIn()
		} else if wheel < 0 {
			a.view.ZoomOut()
		}
		return
	}
	if wheel != 0 {
		p.Zoom(float64(wheel) * 0.05)
	}
	if !rl.IsCursorOnScreen() {
		p.Leave()
		return
	}
	pos := rl.GetMousePosition()
	p.Move(float64(pos.X)/float64(rl.GetScreenWidth()), float64(pos.Y)/float64(rl.GetScreenHeight()))
}

func (a *App) cycle() {
	if err := a.engine.Cycle(); err != nil {
		a.message = err.Error()
		a.log.Error("cycle failed", "err", err)
		return
	}
	a.message = ""
}

func (a *App) selectIndex(i int) {
	if err := a.engine.Select(i); err != nil {
		a.message = err.Error()
		a.log.Warn("select failed", "index", i, "err", err)
		return
	}
	a.message = ""
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.colors.bg)

	rl.BeginMode3D(a.camera)
	a.RenderField()
	if a.showBox {
		a.RenderBox()
	}
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("attractors", 30, 30, 24, a.colors.selected)
	a.drawText(fmt.Sprintf(":: %s  %d/%d", a.frame.Attractor, a.frame.Index+1, a.engine.Len()), 190, 34, 16, a.colors.text)

	a.DrawTelemetry()

	status := "RUNNING"
	col := a.colors.selected
	if !a.running {
		status = "PAUSED"
		col = a.colors.dim
	}
	a.drawText(status, 1150, 30, 16, col)

	ts := a.frame.Transform
	a.drawText(fmt.Sprintf("scale %.2f  zoom %.2f  reseeds %d", ts.Scale, a.view.Zoom(), a.frame.Stats.Reseeds), 30, 70, 14, a.colors.dim)
	if a.opts.Status != nil {
		a.drawText("hand: "+a.opts.Status(), 30, 90, 14, a.colors.hand)
	}
	if a.message != "" {
		a.drawText(a.message, 30, 620, 14, a.colors.alert)
	}

	a.drawText("[SPACE] NEXT  [1-9] SELECT  [P] PAUSE  [T] THEME  [B] BOX  [Q] QUIT", 640, 680, 14, a.colors.dim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, a.colors.dim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the recent head spread as a line strip.
func (a *App) DrawTelemetry() {
	if len(a.spread) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.spread[0], a.spread[0]
	for _, v := range a.spread {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.spread))
	for i, val := range a.spread {
		px := float32(rectX) + (float32(i)/float32(len(a.spread)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, a.colors.accent)
	a.drawText(fmt.Sprintf("spread %.3f", a.spread[len(a.spread)-1]), rectX+width+10, rectY+height-10, 14, a.colors.text)
}
