package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/integrators"
	"github.com/san-kum/gdesim/internal/models"
	"github.com/san-kum/gdesim/internal/sim"
)

func session(t *testing.T, dt, tFinal float64) *sim.Session {
	t.Helper()
	g, err := field.NewGrid([]float64{0, 1, 2, 3, 4})
	require.NoError(t, err)
	m, err := models.NewConstant(1e-20)
	require.NoError(t, err)

	ss, err := sim.New(m, integrators.NewFTCS()).Start(g, field.Profile{0, 0, 10, 0, 0}, sim.Config{Dt: dt, TFinal: tFinal})
	require.NoError(t, err)
	return ss
}

func TestPlotProfiles(t *testing.T) {
	out := PlotProfiles("profiles", 20, 5, []float64{0, 10, 0}, []float64{3, 4, 3})
	assert.Contains(t, out, "profiles")
	assert.Empty(t, PlotProfiles("none", 20, 5))
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary("RUN", []Row{{"Steps", "12"}, {"Mode", "constant"}})
	assert.Contains(t, out, "RUN")
	assert.Contains(t, out, "Steps")
	assert.Contains(t, out, "constant")
}

func TestSparklineChart(t *testing.T) {
	assert.Equal(t, strings.Repeat("─", 4), SparklineChart(nil, 4))
	assert.NotEmpty(t, SparklineChart([]float64{1, 2, 3}, 3))
}

func TestLiveModelSteps(t *testing.T) {
	ss := session(t, 1e19, 4e19)
	m := NewLiveModel(ss, "constant", 2)

	next, cmd := m.Update(TickMsg{})
	assert.NotNil(t, cmd)
	lm := next.(LiveModel)
	assert.Equal(t, 2, ss.Steps())
	assert.Len(t, lm.doseHistory, 1)

	next, _ = lm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	lm = next.(LiveModel)
	assert.False(t, lm.running)

	lm.Update(TickMsg{})
	assert.Equal(t, 2, ss.Steps(), "paused model must not step")

	assert.Contains(t, lm.View(), "PAUSED")
}

func TestLiveModelSpeed(t *testing.T) {
	m := NewLiveModel(session(t, 1e19, 1e20), "constant", 0)
	assert.Equal(t, 1, m.stepsPerTick)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	assert.Equal(t, 2, next.(LiveModel).stepsPerTick)
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	assert.Equal(t, 1, next.(LiveModel).stepsPerTick)
}

func TestLiveModelStabilityFailure(t *testing.T) {
	m := NewLiveModel(session(t, 1e21, 1e21), "constant", 1)

	next, _ := m.Update(TickMsg{})
	lm := next.(LiveModel)
	require.Error(t, lm.Err())
	assert.True(t, errors.Is(lm.Err(), field.ErrStabilityViolation))
	assert.Contains(t, lm.View(), "FAILED")
}

func TestLiveModelQuit(t *testing.T) {
	m := NewLiveModel(session(t, 1e19, 1e19), "constant", 1)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
