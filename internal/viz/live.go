package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
)

const (
	width          = 60
	height         = 30
	energyCapacity = 300
	// FrameRate is the UI tick; the simulation catches up to its own rate
	// between frames.
	FrameRate = 30
)

type TickMsg time.Time

// Model drives one simulation from bubbletea ticks and renders it.
type Model struct {
	sim        *sim.Simulation
	rate       int
	owed       float64
	maxSteps   int
	canvas     *Canvas
	units      units.Converter
	trails     [dynamo.NumBodies]*Trail
	styles     []lipgloss.Style
	energy     []float64
	energy0    float64
	snap       sim.Snapshot
	paused     bool
	showTrails bool
	showVel    bool
	finished   bool
	err        error
}

// NewModel wraps a freshly built simulation. rate is steps per second (0
// steps once per frame); maxSteps of 0 runs until the user quits.
func NewModel(s *sim.Simulation, rate, maxSteps int) Model {
	canvas := NewCanvas(width, height)
	snap := s.Snapshot()

	m := Model{
		sim:        s,
		rate:       rate,
		maxSteps:   maxSteps,
		canvas:     canvas,
		styles:     make([]lipgloss.Style, dynamo.NumBodies),
		energy:     make([]float64, 0, energyCapacity),
		energy0:    s.Model().Energy(snap.State()),
		snap:       snap,
		showTrails: true,
	}
	m.units = s.Config().Units
	for i, b := range snap.Bodies {
		m.trails[i] = NewTrail(DefaultTrailInterval, DefaultTrailRetain)
		m.trails[i].Add(b.Position)
		m.styles[i] = BodyStyle(b.Color)
	}
	m.record()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/FrameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Err returns the step failure that stopped the view, if any.
func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "t":
			m.showTrails = !m.showTrails
		case "v":
			m.showVel = !m.showVel
		}
	case TickMsg:
		if !m.paused {
			for n := m.due(); n > 0 && !m.finished && m.err == nil; n-- {
				m.advance()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// due returns how many steps this frame owes to keep rate steps per second.
func (m *Model) due() int {
	if m.rate <= 0 {
		return 1
	}
	m.owed += float64(m.rate) / FrameRate
	n := int(m.owed)
	m.owed -= float64(n)
	return n
}

func (m *Model) advance() {
	if err := m.sim.Step(); err != nil {
		m.err = err
		return
	}
	m.snap = m.sim.Snapshot()
	for i, b := range m.snap.Bodies {
		m.trails[i].Add(b.Position)
	}
	m.record()
	if m.maxSteps > 0 && m.snap.Step >= m.maxSteps {
		m.finished = true
	}
}

func (m *Model) record() {
	e := m.sim.Model().Energy(m.snap.State())
	if len(m.energy) == energyCapacity {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:len(m.energy)-1]
	}
	m.energy = append(m.energy, e)
}

func (m *Model) draw() {
	sc := Scene{Bodies: m.snap.Bodies, Velocities: m.showVel}
	if m.showTrails {
		for i, tr := range m.trails {
			sc.Trails[i] = tr.Points()
		}
	}
	DrawScene(m.canvas, m.units, sc)
}

// View renders the canvas beside a stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(m.styles))

	var s strings.Builder
	s.WriteString(headerStyle.Render("THREE BODY") + "\n")
	s.WriteString(m.status() + "\n\n")

	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.snap.Step)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.snap.Time)) + "\n")
	current := m.energy[len(m.energy)-1]
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.5f", current)) + "\n")
	s.WriteString(labelStyle.Render("Drift") + valueStyle.Render(fmt.Sprintf("%.2e", relDrift(current, m.energy0))) + "\n\n")

	for i, b := range m.snap.Bodies {
		dot := m.styles[i].Render("●")
		line := fmt.Sprintf(" body %d  m=%.2f  (%.2f, %.2f)", i+1, b.Mass, b.Position.X, b.Position.Y)
		s.WriteString(dot + labelStyle.Render(line) + "\n")
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause T:Trails V:Velocity Q:Quit"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusStopped.Render("STOPPED: " + describe(m.err))
	case m.finished:
		return StatusPaused.Render("FINISHED")
	case m.paused:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

// describe shortens a step failure to the part a viewer cares about.
func describe(err error) string {
	var sep *dynamo.SeparationError
	if errors.As(err, &sep) {
		return fmt.Sprintf("body %d and body %d collided", sep.I+1, sep.J+1)
	}
	if errors.Is(err, dynamo.ErrInvalidState) {
		return "state diverged"
	}
	return err.Error()
}

func relDrift(e, e0 float64) float64 {
	if e0 == 0 {
		return math.Abs(e - e0)
	}
	return math.Abs((e - e0) / e0)
}
