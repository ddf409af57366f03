package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/integrators"
)

func grid(t *testing.T, n int, dz float64) *field.Grid {
	t.Helper()
	z := make([]float64, n)
	for i := range z {
		z[i] = float64(i) * dz
	}
	g, err := field.NewGrid(z)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestComputeMoments(t *testing.T) {
	g := grid(t, 5, 2)
	m := ComputeMoments(g, field.Profile{0, 1, 0, 1, 0})

	if m.Dose != 4 {
		t.Errorf("dose = %v, want 4", m.Dose)
	}
	if m.Centroid != 4 {
		t.Errorf("centroid = %v, want 4", m.Centroid)
	}
	if m.Variance != 4 || m.Width != 2 {
		t.Errorf("variance = %v width = %v, want 4 and 2", m.Variance, m.Width)
	}
}

func TestComputeMomentsEmptyProfile(t *testing.T) {
	m := ComputeMoments(grid(t, 3, 1), field.Profile{0, 0, 0})
	if m != (Moments{}) {
		t.Errorf("expected zero moments, got %+v", m)
	}
}

func TestVarianceGrowthMatchesCoefficient(t *testing.T) {
	const (
		n  = 101
		dz = 1e-9
		d  = 1e-18
	)
	g := grid(t, n, dz)
	x := make(field.Profile, n)
	x[n/2] = 1

	coeff := field.Uniform(n, d)
	dt := 0.25 * integrators.MaxStableStep(dz, d)
	ftcs := integrators.NewFTCS()

	before := ComputeMoments(g, x)
	steps := 40
	for i := 0; i < steps; i++ {
		x = ftcs.Step(g, x, coeff, dt)
	}
	after := ComputeMoments(g, x)

	got := EffectiveCoefficient(before, after, float64(steps)*dt)
	if math.Abs(got-d)/d > 1e-9 {
		t.Errorf("effective coefficient = %g, want %g", got, d)
	}
	if math.Abs(after.Dose-before.Dose) > 1e-12*before.Dose {
		t.Errorf("dose changed: %g -> %g", before.Dose, after.Dose)
	}
}

func TestDiffusionLength(t *testing.T) {
	if got := DiffusionLength(2, 4); got != 4 {
		t.Errorf("DiffusionLength(2, 4) = %v, want 4", got)
	}
	if EffectiveCoefficient(Moments{}, Moments{Variance: 1}, 0) != 0 {
		t.Error("expected zero for non-positive elapsed time")
	}
}
