package integrators

import (
	"testing"

	"github.com/san-kum/gdesim/internal/field"
)

func benchGrid(b *testing.B, n int) *field.Grid {
	z := make([]float64, n)
	for i := range z {
		z[i] = float64(i) * 1e-10
	}
	g, err := field.NewGrid(z)
	if err != nil {
		b.Fatal(err)
	}
	return g
}

func benchmarkFTCS(b *testing.B, n int) {
	g := benchGrid(b, n)
	integrator := NewFTCS()
	x := make(field.Profile, n)
	x[n/2] = 1
	d := field.Uniform(n, 1e-20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(g, x, d, 0.1)
	}
}

func BenchmarkFTCS100(b *testing.B)   { benchmarkFTCS(b, 100) }
func BenchmarkFTCS1000(b *testing.B)  { benchmarkFTCS(b, 1000) }
func BenchmarkFTCS10000(b *testing.B) { benchmarkFTCS(b, 10000) }

func BenchmarkCheckStability(b *testing.B) {
	d := field.Uniform(1000, 1e-20)
	for i := 0; i < b.N; i++ {
		_ = CheckStability(0.1, 1e-10, d.Max())
	}
}
