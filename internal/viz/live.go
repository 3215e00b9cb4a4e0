package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravflow/internal/nbody"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	trailLength  = 400
)

type TickMsg time.Time

// Model drives a live x/y projection of a running simulation. The view
// integrates in wall-clock ticks; it shares nothing with the evaluator.
type Model struct {
	sim      *nbody.Simulation
	scenario string

	canvas   *Canvas
	viewport *Viewport
	trails   [][2]float64

	timePerFrame float64
	frameRate    int
	running      bool
	err          error

	initialEnergy float64
}

func NewModel(sim *nbody.Simulation, scenario string, timePerFrame float64, frameRate int) Model {
	scale := 4.0
	for _, p := range sim.Particles() {
		r := 2.5 * math.Hypot(p.X, p.Y)
		if r > scale {
			scale = r
		}
	}

	return Model{
		sim:           sim,
		scenario:      scenario,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		viewport:      NewViewport(scale),
		trails:        make([][2]float64, 0, trailLength),
		timePerFrame:  timePerFrame,
		frameRate:     frameRate,
		running:       true,
		initialEnergy: sim.Energy(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				return m, m.tick()
			}
			return m, nil
		case "+", "=":
			m.viewport.Scale /= 1.25
		case "-":
			m.viewport.Scale *= 1.25
		}
		return m, nil

	case TickMsg:
		if !m.running || m.err != nil {
			return m, nil
		}
		if err := m.sim.AdvanceBy(context.Background(), m.timePerFrame); err != nil {
			m.err = err
			return m, nil
		}
		for _, p := range m.sim.Particles() {
			m.trails = append(m.trails, [2]float64{p.X, p.Y})
		}
		if len(m.trails) > trailLength {
			m.trails = m.trails[len(m.trails)-trailLength:]
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()
	for _, pt := range m.trails {
		m.viewport.Plot(m.canvas, pt[0], pt[1])
	}
	// Current positions, so the first frame is not empty.
	for _, p := range m.sim.Particles() {
		m.viewport.Plot(m.canvas, p.X, p.Y)
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("gravflow live") + "\n")
	write := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	write("scenario", m.scenario)
	write("bodies", fmt.Sprintf("%d", m.sim.N()))
	write("t", fmt.Sprintf("%.3f", m.sim.T()))
	write("scale", fmt.Sprintf("%.2f au", m.viewport.Scale))

	if m.initialEnergy != 0 {
		drift := math.Abs(m.sim.Energy()-m.initialEnergy) / math.Abs(m.initialEnergy)
		write("energy drift", fmt.Sprintf("%.2e", drift))
	}

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.err != nil {
		status = "error: " + m.err.Error()
	}
	write("status", status)

	stats.WriteString(helpStyle.Render("space pause · +/- zoom · q quit"))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)
}

// Run starts the live view and blocks until it exits.
func Run(sim *nbody.Simulation, scenario string, timePerFrame float64, frameRate int) error {
	p := tea.NewProgram(NewModel(sim, scenario, timePerFrame, frameRate))
	_, err := p.Run()
	return err
}
