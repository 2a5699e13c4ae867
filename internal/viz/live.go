// Package viz provides the terminal live view of a running simulation.
//
// The view is a Bubble Tea program showing the rod as a colored heat bar,
// the current temperature profile as an ascii plot, and a stats panel.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Single step while paused
//	R     - Restart from the initial state
//	Q     - Quit
package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heatsim/internal/solver"
)

const (
	barWidth    = 64
	graphHeight = 10
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Padding(1, 0)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// heatRamp is a cold-to-hot ANSI 256-color gradient for the rod bar.
var heatRamp = []string{
	"17", "18", "19", "20", "21", "27", "33", "39", "45", "51",
	"87", "123", "159", "195", "224", "217", "210", "203", "196", "160",
}

type TickMsg time.Time

// Factory rebuilds a fresh solver for restarts.
type Factory func() (*solver.Solver, error)

type Model struct {
	factory      Factory
	s            *solver.Solver
	running      bool
	stepsPerTick int
	fps          int
	err          error
}

// NewModel wraps a solver for live display. stepsPerTick controls how much
// simulated time passes per frame.
func NewModel(s *solver.Solver, factory Factory, fps, stepsPerTick int) Model {
	if fps <= 0 {
		fps = 30
	}
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return Model{
		factory:      factory,
		s:            s,
		running:      true,
		stepsPerTick: stepsPerTick,
		fps:          fps,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			if !m.running {
				m.advance(1)
			}
		case "r":
			if m.factory != nil {
				s, err := m.factory()
				if err == nil {
					m.s = s
					m.err = nil
					m.running = true
				} else {
					m.err = err
				}
			}
		}
		return m, nil

	case TickMsg:
		if m.running && !m.s.Completed() {
			m.advance(m.stepsPerTick)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance(steps int) {
	for i := 0; i < steps; i++ {
		if _, err := m.s.Step(); err != nil {
			if !errors.Is(err, solver.ErrCompleted) {
				m.err = err
			}
			return
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("heatsim — 1-D heat conduction"))
	b.WriteString("\n")

	f := m.s.Field()
	b.WriteString(renderBar(f))
	b.WriteString("\n")

	graph := asciigraph.Plot(f,
		asciigraph.Height(graphHeight),
		asciigraph.Width(barWidth),
		asciigraph.Caption("u(x)"),
	)
	b.WriteString(graphStyle.Render(graph))
	b.WriteString("\n")

	b.WriteString(statRow("elapsed", fmt.Sprintf("%.4fs", m.s.Elapsed())))
	b.WriteString(statRow("step", fmt.Sprintf("%d/%d", m.s.StepsTaken(), m.s.TotalSteps())))
	b.WriteString(statRow("ratio r", fmt.Sprintf("%.4f", m.s.Ratio())))
	b.WriteString(statRow("peak", fmt.Sprintf("%.6f", f.Peak())))
	b.WriteString(statRow("total heat", fmt.Sprintf("%.6f", f.Sum())))

	if m.s.Completed() {
		b.WriteString("\n")
		b.WriteString(doneStyle.Render("run completed"))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.err.Error()))
	}

	b.WriteString(helpStyle.Render("space pause · s step · r restart · q quit"))
	b.WriteString("\n")
	return b.String()
}

func statRow(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// renderBar downsamples the field onto a fixed-width strip of colored cells.
func renderBar(f solver.Field) string {
	if len(f) == 0 {
		return ""
	}

	minV, maxV := f[0], f[0]
	for _, v := range f {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}

	var b strings.Builder
	for col := 0; col < barWidth; col++ {
		i := col * (len(f) - 1) / (barWidth - 1)
		norm := (f[i] - minV) / rangeV
		idx := int(norm * float64(len(heatRamp)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(heatRamp) {
			idx = len(heatRamp) - 1
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(heatRamp[idx])).Render("█"))
	}
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(s *solver.Solver, factory Factory, fps, stepsPerTick int) error {
	p := tea.NewProgram(NewModel(s, factory, fps, stepsPerTick))
	_, err := p.Run()
	return err
}
