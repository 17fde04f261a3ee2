package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
)

var attractorInfo = map[physics.Kind]string{
	physics.KindLorenz:    "butterfly wings",
	physics.KindAizawa:    "spherical shell with a tube",
	physics.KindThomas:    "cyclically symmetric lattice",
	physics.KindHalvorsen: "three-lobed propeller",
	physics.KindRossler:   "folded spiral band",
}

const (
	stateMenu = iota
	stateSim
)

type app struct {
	state, cursor int
	engine        *sim.Engine
	live          Model
}

func newApp(engine *sim.Engine, opts Options, skipMenu bool) app {
	a := app{engine: engine, cursor: engine.Index(), live: NewModel(engine, opts)}
	if skipMenu {
		a.state = stateSim
	}
	return a
}

func (a app) Init() tea.Cmd {
	if a.state == stateSim {
		return a.live.Init()
	}
	return nil
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateSim {
		live, cmd := a.live.Update(msg)
		a.live = live.(Model)
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.menuKey(msg)
	case tea.WindowSizeMsg:
		live, _ := a.live.Update(msg)
		a.live = live.(Model)
	}
	return a, nil
}

func (a app) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < a.engine.Len()-1 {
			a.cursor++
		}
	case "enter", " ":
		if a.cursor != a.engine.Index() {
			if err := a.engine.Select(a.cursor); err != nil {
				a.live.message = err.Error()
			}
		}
		a.state = stateSim
		return a, a.live.Init()
	}
	return a, nil
}

func (a app) View() string {
	if a.state == stateSim {
		return a.live.View()
	}
	return a.viewMenu()
}

func (a app) viewMenu() string {
	t := a.live.theme
	var b strings.Builder
	sub := lipgloss.NewStyle().Foreground(t.Muted)
	b.WriteString("\n\n    " + GradientText("ATTRACTORS", t.Primary, t.Secondary) + "\n    " + sub.Render("particle fields on strange attractors") + "\n    " + sub.Render("─────────────────────────────────────") + "\n\n")

	marker := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	name := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.Primary)
	dim := lipgloss.NewStyle().Foreground(t.Muted)
	for i, att := range a.engine.Catalog() {
		info := attractorInfo[att.Kind()]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", marker.Render("▸"), name.Render(fmt.Sprintf("%-12s", att.Name)), desc.Render(info)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", dim.Render(fmt.Sprintf("  %-12s", att.Name)), dim.Render(info)))
		}
	}

	key := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	b.WriteString("\n    " + key.Render("j/k") + dim.Render(" navigate  ") + key.Render("enter") + dim.Render(" start  ") + key.Render("q") + dim.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the attractor menu and then the live view until the
// user quits or ctx is cancelled. With skipMenu the live view starts at once.
func RunInteractive(ctx context.Context, engine *sim.Engine, opts Options, skipMenu bool) error {
	p := tea.NewProgram(newApp(engine, opts, skipMenu),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
