package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/sim"
)

var (
	_ sim.Metric   = (*Dose)(nil)
	_ sim.Metric   = (*DoseDrift)(nil)
	_ sim.Metric   = (*Positivity)(nil)
	_ sim.Metric   = (*Peak)(nil)
	_ sim.Metric   = (*Spread)(nil)
	_ sim.Observer = (*Collector)(nil)
)

func testGrid(t *testing.T) *field.Grid {
	t.Helper()
	g, err := field.NewGrid([]float64{0, 2, 4, 6, 8})
	require.NoError(t, err)
	return g
}

func TestDose(t *testing.T) {
	g := testGrid(t)
	m := NewDose()

	m.Observe(g, field.Profile{0, 1, 2, 1, 0}, 0)
	assert.Equal(t, 8.0, m.Value())

	m.Reset()
	assert.Zero(t, m.Value())
}

func TestDoseDrift(t *testing.T) {
	g := testGrid(t)
	m := NewDoseDrift()

	m.Observe(g, field.Profile{0, 0, 10, 0, 0}, 0)
	m.Observe(g, field.Profile{1, 1, 8, 1, 1}, 1)
	assert.InDelta(t, 0.2, m.Value(), 1e-12)

	m.Observe(g, field.Profile{0, 0, 10, 0, 0}, 2)
	assert.InDelta(t, 0.2, m.Value(), 1e-12, "drift keeps its maximum")

	m.Reset()
	assert.Zero(t, m.Value())
}

func TestPositivity(t *testing.T) {
	g := testGrid(t)
	m := NewPositivity(1e-12)
	assert.Equal(t, 1.0, m.Value())

	m.Observe(g, field.Profile{0, 1, 2, 1, 0}, 0)
	m.Observe(g, field.Profile{0, -1, 2, 1, 0}, 1)
	assert.Equal(t, 0.5, m.Value())
}

func TestPeakAndSpread(t *testing.T) {
	g := testGrid(t)
	peak, spread := NewPeak(), NewSpread()

	x := field.Profile{0, 1, 0, 1, 0}
	peak.Observe(g, x, 0)
	spread.Observe(g, x, 0)

	assert.Equal(t, 1.0, peak.Value())
	assert.Equal(t, 2.0, spread.Value())
}

func TestCollector(t *testing.T) {
	g := testGrid(t)
	c := NewCollector(g, "constant")

	c.OnStep(1, 0.5, field.Profile{0, 1, 2, 1, 0}, field.Uniform(5, 3))
	c.OnStep(2, 1.0, field.Profile{1, 1, 1, 1, 1}, field.Profile{1, 4, 2, 0, 0})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SimulatedTime))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.MaxCoefficient))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.Dose))
	assert.Equal(t, 4, testutil.CollectAndCount(c.Registry()))

	path := filepath.Join(t.TempDir(), "gdesim.prom")
	require.NoError(t, c.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gdesim_steps_total{mode="constant"} 2`)
	assert.Contains(t, string(data), `gdesim_max_coefficient_square_meters_per_second{mode="constant"} 4`)
}
