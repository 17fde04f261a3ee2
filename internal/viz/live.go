package viz

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/attractors/internal/gesture"
	"github.com/san-kum/attractors/internal/metrics"
	"github.com/san-kum/attractors/internal/sim"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 44
	historyCapacity = 300
	// Frames longer than this are treated as a stall, not simulated time.
	maxFrameGap = 250 * time.Millisecond
)

type TickMsg time.Time

// Options wires the live view to its surroundings. Every field is optional.
type Options struct {
	FPS   int
	Theme string
	// Hands is read once per frame for the render transform.
	Hands *gesture.Cell
	// Pointer, when set, is driven by mouse motion and the wheel.
	Pointer *gesture.Pointer
	// Status reports the gesture source state for the overlay.
	Status  func() string
	GIFPath string
	// SaveSVG writes the current canvas and returns where it went.
	SaveSVG func(c *Canvas, t Theme) (string, error)
	Logger  *log.Logger
}

// Model drives a sim.Engine from bubbletea ticks and draws its frames on a
// braille canvas.
type Model struct {
	engine        *sim.Engine
	opts          Options
	canvas        *Canvas
	camera        *Camera
	theme         Theme
	styles        Styles
	width, height int
	running       bool
	showBox       bool
	showHelp      bool
	last          time.Time
	frame         sim.Frame
	drawn         int
	fps           float64
	spreadHistory []float64
	recorder      *Recorder
	message       string
	log           *log.Logger
}

func NewModel(engine *sim.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "attractors.gif"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme := GetTheme(opts.Theme)
	return Model{
		engine:        engine,
		opts:          opts,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(opts.FPS),
		theme:         theme,
		styles:        NewStyles(theme),
		width:         width,
		height:        height,
		running:       true,
		spreadHistory: make([]float64, 0, historyCapacity),
		log:           logger.WithPrefix("tui"),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "enter":
		m.cycle()
	case "p":
		m.running = !m.running
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = NewStyles(m.theme)
	case "b":
		m.showBox = !m.showBox
	case "?":
		m.showHelp = !m.showHelp
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "left", "h":
		m.camera.RotateY(-0.1)
	case "right", "l":
		m.camera.RotateY(0.1)
	case "up", "k":
		m.camera.RotateX(-0.1)
	case "down", "j":
		m.camera.RotateX(0.1)
	case "r":
		m.camera.Reset()
	case "g":
		m.toggleRecording()
	case "s":
		m.saveSVG()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.selectIndex(int(key[0] - '1'))
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.cycle()
	case msg.Button == tea.MouseButtonWheelUp:
		if m.opts.Pointer != nil {
			m.opts.Pointer.Zoom(0.05)
		} else {
			m.camera.ZoomIn()
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if m.opts.Pointer != nil {
			m.opts.Pointer.Zoom(-0.05)
		} else {
			m.camera.ZoomOut()
		}
	case msg.Action == tea.MouseActionMotion && m.opts.Pointer != nil:
		if msg.X >= m.width || msg.Y >= m.height {
			m.opts.Pointer.Leave()
			return
		}
		m.opts.Pointer.Move(float64(msg.X)/float64(m.width), float64(msg.Y)/float64(m.height))
	}
}

func (m *Model) resize(w, h int) {
	cw := max(w-panelWidth-4, 20)
	ch := max(h-2, 8)
	if cw == m.width && ch == m.height {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

func (m *Model) cycle() {
	if err := m.engine.Cycle(); err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""
}

func (m *Model) selectIndex(i int) {
	if err := m.engine.Select(i); err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder(gifDelay(m.opts.FPS), 600)
		m.message = "recording"
		return
	}
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.message = "gif: " + err.Error()
		m.log.Error("saving gif failed", "path", m.opts.GIFPath, "err", err)
	} else {
		m.message = "saved " + m.opts.GIFPath
		m.log.Info("saved gif", "path", m.opts.GIFPath)
	}
	m.recorder = nil
}

// gifDelay converts a frame rate to a GIF frame delay in hundredths of a
// second.
func gifDelay(fps int) int {
	return max(1, int(math.Round(100/float64(fps))))
}

func (m *Model) saveSVG() {
	if m.opts.SaveSVG == nil {
		m.message = "svg export unavailable"
		return
	}
	path, err := m.opts.SaveSVG(m.canvas, m.theme)
	if err != nil {
		m.message = "svg: " + err.Error()
		m.log.Error("saving svg failed", "err", err)
		return
	}
	m.message = "saved " + path
	m.log.Info("saved svg", "path", path)
}

// step advances the engine by the wall time since the previous tick and
// redraws the canvas.
func (m *Model) step(now time.Time) {
	elapsed := time.Duration(0)
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now
	if elapsed > maxFrameGap {
		elapsed = maxFrameGap
	}
	if elapsed > 0 {
		m.fps = 0.9*m.fps + 0.1/elapsed.Seconds()
	}

	var hands gesture.HandMetrics
	if m.opts.Hands != nil {
		hands = m.opts.Hands.Load()
	}
	if !m.running {
		elapsed = 0
	}
	m.frame = m.engine.Tick(elapsed, hands)

	m.spreadHistory = push(m.spreadHistory, metrics.HeadSpread(m.engine.Field()))

	m.camera.Update(m.frame.Transform)
	m.draw()
	if m.recorder != nil {
		m.recorder.Capture(m.canvas, m.theme)
	}
}

func push(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.showBox {
		Render3D(m.canvas, CreateCubeWireframe(1), m.camera)
	}
	if m.frame.Vertices == 0 {
		return
	}
	if m.theme.Monochrome {
		tint := Colorful(m.theme.Primary)
		m.drawn = DrawFrame(m.canvas, m.camera, m.frame, &tint)
	} else {
		m.drawn = DrawFrame(m.canvas, m.camera, m.frame, nil)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.showHelp {
		return helpText
	}
	st := m.styles
	canvasView := lipgloss.NewStyle().Padding(1, 1).Render(
		m.canvas.Render(Colorful(m.theme.Background), Colorful(m.theme.Primary)))

	var s strings.Builder
	att := m.engine.Attractor()
	s.WriteString(GradientText(strings.ToUpper(att.Name), m.theme.Primary, m.theme.Secondary) + "\n")
	s.WriteString(st.Muted.Render(fmt.Sprintf("%d / %d", m.engine.Index()+1, m.engine.Len())) + "  ")
	switch {
	case m.recorder != nil:
		s.WriteString(st.Recording.Render(fmt.Sprintf("REC %d", m.recorder.Len())))
	case m.running:
		s.WriteString(st.Running.Render("RUNNING"))
	default:
		s.WriteString(st.Paused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	if len(m.spreadHistory) > 1 {
		chart := asciigraph.Plot(m.spreadHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("spread"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}

	f := m.engine.Field()
	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("Particles", fmt.Sprintf("%d x %d", f.Particles(), f.TrailLength()))
	row("Drawn", fmt.Sprintf("%d", m.drawn))
	row("Steps", fmt.Sprintf("%d (+%d)", f.Stats().Steps, m.frame.Steps))
	row("Reseeds", fmt.Sprintf("%d", f.Stats().Reseeds))
	row("FPS", fmt.Sprintf("%.0f", m.fps))
	row("Zoom", fmt.Sprintf("%.2f", m.camera.Zoom()))
	row("Scale", fmt.Sprintf("%.2f", m.frame.Transform.Scale))

	s.WriteString("\n" + st.Header.Render("GESTURE") + "\n")
	status := "off"
	if m.opts.Status != nil {
		status = m.opts.Status()
	}
	if strings.HasPrefix(status, "gesture unavailable") {
		s.WriteString(st.Warning.Render(status) + "\n")
	} else {
		row("Status", status)
	}
	if m.opts.Hands != nil {
		if h := m.opts.Hands.Load(); h.Present {
			s.WriteString(st.Label.Render("Hand") + ProgressBar(h.Scale, 16, st.Hand) + "\n")
		}
	}

	if m.message != "" {
		s.WriteString("\n" + st.Warning.Render(m.message) + "\n")
	}
	s.WriteString(st.Help.Render(Separator(28, st.Muted) + "\nSP:Next 1-9:Pick P:Pause\nT:Theme B:Box G:GIF S:SVG\n?:Help Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space/Enter - Next attractor        ║
║  1-9         - Jump to attractor     ║
║  Click       - Next attractor        ║
║  P           - Pause/Resume          ║
║  +/-, Wheel  - Zoom                  ║
║  Arrows/hjkl - Rotate view           ║
║  R           - Reset view            ║
║  B           - Toggle bounding box   ║
║  T           - Cycle themes          ║
║  G           - Toggle GIF recording  ║
║  S           - Save frame as SVG     ║
║  ?           - Toggle this help      ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝
`
