package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/sim"
)

const (
	frameInterval   = time.Second / 30
	historyCapacity = 600
	maxStepsPerTick = 1 << 16
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// LiveModel steps a session a few updates per frame and redraws the
// current profile over the initial one.
type LiveModel struct {
	session      *sim.Session
	mode         string
	dz           float64
	stepsPerTick int
	running      bool
	err          error
	doseHistory  []float64
}

func NewLiveModel(session *sim.Session, mode string, stepsPerTick int) LiveModel {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return LiveModel{
		session:      session,
		mode:         mode,
		dz:           session.Grid().Dz(),
		stepsPerTick: stepsPerTick,
		running:      true,
		doseHistory:  make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

// Update handles keys and advances the run on every tick.
func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		}
	case TickMsg:
		if m.running && m.err == nil && !m.session.Done() {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		more, err := m.session.Next()
		if err != nil {
			m.err = err
			return
		}
		if !more {
			break
		}
	}

	dose := m.session.Profile().Sum() * m.dz
	if len(m.doseHistory) == historyCapacity {
		m.doseHistory = m.doseHistory[1:]
	}
	m.doseHistory = append(m.doseHistory, dose)
}

func (m LiveModel) Err() error { return m.err }

func (m LiveModel) status() string {
	switch {
	case m.err != nil:
		return StatusFailed.Render("FAILED")
	case m.session.Done():
		return StatusRunning.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

func (m LiveModel) View() string {
	x := m.session.Profile()
	chart := PlotProfiles("initial (green) / current (cyan)", 60, 15, m.session.Initial(), x)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.mode)) + "\n")
	s.WriteString(m.status() + "\n\n")
	s.WriteString(MetricLabel.Render("Time") + MetricValue.Render(fmt.Sprintf("%.4g s", m.session.Time())) + "\n")
	s.WriteString(MetricLabel.Render("End") + MetricValue.Render(fmt.Sprintf("%.4g s", m.session.Config().TFinal)) + "\n")
	s.WriteString(MetricLabel.Render("Steps") + MetricValue.Render(fmt.Sprintf("%d", m.session.Steps())) + "\n")
	s.WriteString(MetricLabel.Render("Steps/frame") + MetricValue.Render(fmt.Sprintf("%d", m.stepsPerTick)) + "\n")
	s.WriteString(MetricLabel.Render("Peak") + MetricValue.Render(fmt.Sprintf("%.4g", x.Max())) + "\n")
	s.WriteString(MetricLabel.Render("Max D") + MetricValue.Render(fmt.Sprintf("%.4g", maxOf(m.session.Coefficient()))) + "\n")
	s.WriteString("\nDOSE\n" + SparklineChart(m.doseHistory, 30) + "\n")
	if m.err != nil {
		s.WriteString("\n" + StatusFailed.Render(m.err.Error()) + "\n")
	}
	s.WriteString(KeyHint.Render("\nSP:Pause +/-:Speed Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, graphStyle.Render(chart), statsStyle.Render(s.String()))
}

func maxOf(d field.Profile) float64 {
	if len(d) == 0 {
		return 0
	}
	return d.Max()
}
