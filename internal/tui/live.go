// Package tui renders a live session in the terminal: the scene on a rune
// canvas with trails, vectors and the selection highlight, a readout panel
// for the selected object, and an energy sparkline.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/experiment"
	"github.com/san-kum/scenelab/internal/physstate"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)
)

const (
	canvasCols = 80
	canvasRows = 26
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/engine.TicksPerSecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model wrapping one session.
type Model struct {
	session *experiment.Session
	worldW  float64
	worldH  float64

	help   string
	width  int
	height int
}

func NewModel(session *experiment.Session, worldW, worldH float64) *Model {
	return &Model{
		session: session,
		worldW:  worldW,
		worldH:  worldH,
		help:    "space pause · s step · tab select · r reset · c clear · t/v/f toggles · q quit",
	}
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.session.Tick()
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.session.Paused() {
			m.session.Resume()
		} else {
			m.session.Pause()
		}
	case "s":
		if m.session.Paused() {
			m.session.StepOnce()
		}
	case "r":
		m.session.Reset()
	case "c":
		m.session.Clear()
	case "tab":
		m.cycleSelection()
	case "t":
		s := m.session.Settings()
		s.Trails = !s.Trails
		m.session.SetSettings(s)
	case "v":
		s := m.session.Settings()
		s.VelocityVectors = !s.VelocityVectors
		m.session.SetSettings(s)
	case "f":
		s := m.session.Settings()
		s.ForceVectors = !s.ForceVectors
		m.session.SetSettings(s)
	}
	return m, nil
}

func (m *Model) cycleSelection() {
	objects := m.session.Registry().Objects()
	if len(objects) == 0 {
		return
	}
	current := m.session.Selection()
	next := objects[0].ID
	for i, obj := range objects {
		if obj.ID == current && i+1 < len(objects) {
			next = objects[i+1].ID
			break
		}
	}
	m.session.Select(next)
}

func (m *Model) View() string {
	c := newCanvas(canvasCols, canvasRows, m.worldW, m.worldH)
	c.clear()

	frame := m.session.OverlayFrame()
	for _, trail := range frame.Trails {
		for i, p := range trail.Points {
			r := '.'
			if trail.Opacities[i] > 0.5 {
				r = 'o'
			}
			c.setWorld(p, r)
		}
	}

	for _, b := range m.session.World().Bodies() {
		m.drawBody(c, b)
	}

	for _, v := range frame.VelocityVectors {
		c.worldLine(v.From, v.To, '*')
	}
	for _, v := range frame.ForceVectors {
		c.worldLine(v.From, v.To, ':')
	}
	if h := frame.Highlight; h != nil {
		pad := engine.Vec2{X: h.Padding, Y: h.Padding}
		c.outline(h.Min.Sub(pad), h.Max.Add(pad), '+')
	}

	view := panel.Render(c.String())
	side := m.sidePanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, view, side)

	status := fmt.Sprintf("t=%.2fs  objects=%d  gravity=%.2f  timescale=%.2f",
		m.session.World().Time(), m.session.Registry().Count(),
		m.session.World().Gravity(), m.session.World().TimeScale())
	if m.session.Paused() {
		status = yellow.Render("PAUSED  ") + dim.Render(status)
	} else {
		status = green.Render("RUNNING ") + dim.Render(status)
	}

	return body + "\n" + status + "\n" + dim.Render(m.help)
}

func (m *Model) drawBody(c *canvas, b *engine.Body) {
	r := bodyRune(b)
	switch b.Shape.Kind {
	case engine.ShapeCircle:
		min, max := b.Bounds()
		cx, cy := c.project(b.Position)
		x1, _ := c.project(min)
		x2, _ := c.project(max)
		radius := (x2 - x1) / 2
		if radius <= 0 {
			c.set(cx, cy, r)
			return
		}
		for dx := -radius; dx <= radius; dx++ {
			c.set(cx+dx, cy, r)
		}
	default:
		min, max := b.Bounds()
		if b.Boundary {
			c.box(min, max, '=')
			return
		}
		c.box(min, max, r)
	}
}

func bodyRune(b *engine.Body) rune {
	switch {
	case b.Static():
		return '#'
	case b.Shape.Kind == engine.ShapeCircle:
		return 'O'
	default:
		return '@'
	}
}

func (m *Model) sidePanel() string {
	var b strings.Builder

	b.WriteString(cyan.Render("selected") + "\n")
	if state, ok := m.session.SelectedState(); ok {
		obj, _ := m.session.Registry().Object(m.session.Selection())
		b.WriteString(white.Render(obj.DefinitionID) + "\n")
		b.WriteString(row("pos", "%.0f, %.0f", state.Position.X, state.Position.Y))
		b.WriteString(row("vel", "%.1f, %.1f", state.Velocity.X, state.Velocity.Y))
		b.WriteString(row("speed", "%.1f", state.Speed))
		b.WriteString(row("mass", "%.2f", state.Mass))
		b.WriteString(row("KE", "%.1f", state.KineticEnergy))
		b.WriteString(row("PE", "%.1f", state.PotentialEnergy))
		b.WriteString(row("total", "%.1f", state.TotalEnergy))
		b.WriteString(row("p", "%.1f, %.1f", state.Momentum.X, state.Momentum.Y))
		b.WriteString("\n" + m.energyGraph())
	} else {
		b.WriteString(dim.Render("none (tab to select)") + "\n")
	}

	return panel.Render(b.String())
}

func row(label, format string, args ...any) string {
	return dim.Render(fmt.Sprintf("%-6s", label)) +
		magenta.Render(fmt.Sprintf(format, args...)) + "\n"
}

func (m *Model) energyGraph() string {
	series := m.session.Graph().Series(func(s physstate.Sample) float64 {
		return s.TotalEnergy
	})
	if len(series) < 2 {
		return dim.Render("collecting samples...")
	}
	return cyan.Render("total energy") + "\n" +
		asciigraph.Plot(series, asciigraph.Height(6), asciigraph.Width(26))
}

// Run loads an optional preset and blocks on the live view until quit.
func Run(session *experiment.Session, worldW, worldH float64, presetID string) error {
	if presetID != "" {
		if _, err := session.LoadExperiment(presetID); err != nil {
			return err
		}
		if objects := session.Registry().Objects(); len(objects) > 0 {
			session.Select(objects[0].ID)
		}
	}
	_, err := tea.NewProgram(NewModel(session, worldW, worldH), tea.WithAltScreen()).Run()
	return err
}
