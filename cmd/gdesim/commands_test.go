package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/physics"
	"github.com/san-kum/gdesim/internal/storage"
)

// storedRun runs the five-point scenario into a fresh store and returns the
// run id.
func storedRun(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "x.r")
	require.NoError(t, storage.WriteTable(in, []float64{0, 1, 2, 3, 4}, []float64{0, 0, 10, 0, 0}))
	dataDir = filepath.Join(dir, "store")
	noSave, metricsFile = false, ""

	cmd := newRunCmd(t)
	require.NoError(t, cmd.Flags().Set("input", in))
	require.NoError(t, cmd.Flags().Set("output", filepath.Join(dir, "X.r")))
	require.NoError(t, cmd.Flags().Set("dt", "1e19"))
	require.NoError(t, cmd.Flags().Set("time", "2e19"))
	require.NoError(t, runSimulation(cmd, nil))

	runs, err := storage.New(dataDir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	return runs[0].ID
}

func findCommand(t *testing.T, name string) *cobra.Command {
	t.Helper()
	for _, c := range runCommands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("no %s command", name)
	return nil
}

func TestRunStoreFailureEmitsNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "x.r")
	out := filepath.Join(dir, "X.r")
	require.NoError(t, storage.WriteTable(in, []float64{0, 1, 2, 3, 4}, []float64{0, 0, 10, 0, 0}))

	// a regular file where the store directory should be
	dataDir = filepath.Join(dir, "store")
	require.NoError(t, os.WriteFile(dataDir, nil, 0644))
	noSave, metricsFile = false, ""

	cmd := newRunCmd(t)
	require.NoError(t, cmd.Flags().Set("input", in))
	require.NoError(t, cmd.Flags().Set("output", out))
	require.NoError(t, cmd.Flags().Set("dt", "1e19"))
	require.NoError(t, cmd.Flags().Set("time", "1e19"))

	require.Error(t, runSimulation(cmd, nil))
	assert.NoFileExists(t, out)
}

func TestRunsCommands(t *testing.T) {
	id := storedRun(t)
	chdir(t, t.TempDir())

	assert.NoError(t, listRuns(nil, nil))
	assert.NoError(t, plotRun(nil, []string{id}))
	assert.NoError(t, analyzeRun(nil, []string{id}))

	exportJSON := findCommand(t, "export-json")
	assert.NoError(t, exportJSON.RunE(exportJSON, []string{id}))

	exportSVGCmd := findCommand(t, "export-svg")
	require.NoError(t, exportSVGCmd.RunE(exportSVGCmd, []string{id}))
	data, err := os.ReadFile(id + ".svg")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	require.NoError(t, exportSVGCmd.Flags().Set("out", "profiles.svg"))
	require.NoError(t, exportSVGCmd.RunE(exportSVGCmd, []string{id}))
	assert.FileExists(t, "profiles.svg")
}

func TestRunsCommandsUnknownRun(t *testing.T) {
	storedRun(t)

	assert.Error(t, plotRun(nil, []string{"missing"}))
	assert.Error(t, analyzeRun(nil, []string{"missing"}))
	assert.Error(t, exportSVG(nil, []string{"missing"}))
}

func TestListRunsEmptyStore(t *testing.T) {
	dataDir = filepath.Join(t.TempDir(), "none")
	assert.NoError(t, listRuns(nil, nil))
}

func TestEfxvWritesBandEdgeFiles(t *testing.T) {
	chdir(t, t.TempDir())
	z := []float64{0, 1e-9, 2e-9}
	require.NoError(t, storage.WriteTable("alloy-profile.dat", z, []float64{0, 0.3, 0}))

	cmd := efxvCommand()
	require.NoError(t, cmd.Flags().Set("print-bandgap", "true"))
	require.NoError(t, runEfxv(cmd, nil))

	for _, name := range []string{"v.r", "m.r", "m_perp.r", "Eg.r"} {
		assert.FileExists(t, name)
	}

	_, v, err := storage.ReadTable("v.r")
	require.NoError(t, err)
	assert.InEpsilon(t, 0.67*1.247*0.3*physics.ElementaryCharge, v[1], 1e-6)
	assert.Zero(t, v[0])

	_, m, err := storage.ReadTable("m.r")
	require.NoError(t, err)
	assert.InEpsilon(t, 0.067*physics.ElectronMass, m[0], 1e-6)
}

func TestEfxvConstantMass(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, storage.WriteTable("alloy-profile.dat", []float64{0, 1e-9}, []float64{0, 0.2}))

	cmd := efxvCommand()
	require.NoError(t, cmd.Flags().Set("mass", "0.1"))
	require.NoError(t, runEfxv(cmd, nil))

	_, m, err := storage.ReadTable("m_perp.r")
	require.NoError(t, err)
	assert.InEpsilon(t, 0.1*physics.ElectronMass, m[1], 1e-6)
	assert.NoFileExists(t, "Eg.r")
}

func TestEfxvRejectsGaAlAsLightHole(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, storage.WriteTable("alloy-profile.dat", []float64{0, 1e-9}, []float64{0, 0.3}))

	cmd := efxvCommand()
	require.NoError(t, cmd.Flags().Set("particle", "l"))

	err := runEfxv(cmd, nil)
	assert.ErrorIs(t, err, field.ErrInvalidInput)
	for _, name := range []string{"v.r", "m.r", "m_perp.r"} {
		assert.NoFileExists(t, name)
	}
}

func TestEfxvQuaternaryHeavyHoleHasNoMass(t *testing.T) {
	chdir(t, t.TempDir())
	z := []float64{0, 1e-9}
	require.NoError(t, storage.WriteTable("alloy-profile.dat", z, []float64{0.1, 0.2}, []float64{0.3, 0.4}))

	cmd := efxvCommand()
	require.NoError(t, cmd.Flags().Set("material", "inalgaas"))
	require.NoError(t, cmd.Flags().Set("particle", "h"))
	require.NoError(t, runEfxv(cmd, nil))

	assert.FileExists(t, "v.r")
	assert.NoFileExists(t, "m.r")
	assert.NoFileExists(t, "m_perp.r")
}

func writePermittivity(t *testing.T, n int) []float64 {
	t.Helper()
	z := make([]float64, n)
	eps := make([]float64, n)
	for i := range z {
		z[i] = float64(i) * 1e-9
		eps[i] = 13 * physics.VacuumPermittivity
	}
	require.NoError(t, storage.WriteTable("eps_dc.r", z, eps))
	return z
}

func TestPoissonUnchargedWithField(t *testing.T) {
	chdir(t, t.TempDir())
	z := writePermittivity(t, 5)

	cmd := poissonCommand()
	require.NoError(t, cmd.Flags().Set("uncharged", "true"))
	require.NoError(t, cmd.Flags().Set("field", "10"))
	require.NoError(t, runPoisson(cmd, nil))

	for _, name := range []string{"field.r", "v_p.r", "v.r"} {
		assert.FileExists(t, name)
	}

	// 10 kV/cm across 5 nm drops 5 mV between the walls
	_, vp, err := storage.ReadTable("v_p.r")
	require.NoError(t, err)
	for i := range z {
		want := -physics.ElementaryCharge * 5e-3 * (float64(i) + 0.5) / 5
		assert.InDelta(t, want, vp[i], 1e-30, "sample %d", i)
	}

	_, f, err := storage.ReadTable("field.r")
	require.NoError(t, err)
	assert.InDelta(t, -1e6, f[2], 1)
	assert.Zero(t, f[0])

	_, total, err := storage.ReadTable("v.r")
	require.NoError(t, err)
	assert.Equal(t, vp, total)
}

func TestPoissonAddsBaseline(t *testing.T) {
	chdir(t, t.TempDir())
	z := writePermittivity(t, 5)
	require.NoError(t, storage.WriteTable("v_b.r", z, []float64{1e-20, 1e-20, 1e-20, 1e-20, 1e-20}))

	cmd := poissonCommand()
	require.NoError(t, cmd.Flags().Set("uncharged", "true"))
	require.NoError(t, cmd.Flags().Set("bandedgepotentialfile", "v_b.r"))
	require.NoError(t, runPoisson(cmd, nil))

	_, vp, err := storage.ReadTable("v_p.r")
	require.NoError(t, err)
	_, total, err := storage.ReadTable("v.r")
	require.NoError(t, err)
	for i := range vp {
		assert.InDelta(t, vp[i]+1e-20, total[i], 1e-30)
	}
}

func TestPoissonBaselineLengthMismatch(t *testing.T) {
	chdir(t, t.TempDir())
	writePermittivity(t, 5)
	require.NoError(t, storage.WriteTable("v_b.r", []float64{0, 1e-9, 2e-9}, []float64{0, 0, 0}))

	cmd := poissonCommand()
	require.NoError(t, cmd.Flags().Set("uncharged", "true"))
	require.NoError(t, cmd.Flags().Set("bandedgepotentialfile", "v_b.r"))

	err := runPoisson(cmd, nil)
	assert.ErrorIs(t, err, field.ErrInvalidInput)
	for _, name := range []string{"field.r", "v_p.r", "v.r"} {
		assert.NoFileExists(t, name)
	}
}

func TestPoissonMissingChargeFile(t *testing.T) {
	chdir(t, t.TempDir())
	writePermittivity(t, 5)

	err := runPoisson(poissonCommand(), nil)
	assert.ErrorIs(t, err, field.ErrInputFile)
	assert.NoFileExists(t, "v.r")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
