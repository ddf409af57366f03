package integrators_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/integrators"
)

func mesh(n int, dz float64) *field.Grid {
	z := make([]float64, n)
	for i := range z {
		z[i] = float64(i) * dz
	}
	g, err := field.NewGrid(z)
	Expect(err).NotTo(HaveOccurred())
	return g
}

var _ = Describe("FTCS", func() {
	var ftcs *integrators.FTCS

	BeforeEach(func() {
		ftcs = integrators.NewFTCS()
	})

	It("spreads a single peak symmetrically", func() {
		g := mesh(5, 1)
		x := field.Profile{0, 0, 10, 0, 0}
		d := field.Uniform(5, 1e-20)

		next := ftcs.Step(g, x, d, 1e19)

		Expect(next[2]).To(BeNumerically("~", 8, 1e-9))
		Expect(next[1]).To(BeNumerically("~", 1, 1e-9))
		Expect(next[3]).To(Equal(next[1]))
		Expect(next[0]).To(Equal(next[1]))
		Expect(next[4]).To(Equal(next[3]))
	})

	It("leaves the previous profile untouched", func() {
		g := mesh(5, 1)
		x := field.Profile{0, 0, 10, 0, 0}
		before := x.Clone()

		_ = ftcs.Step(g, x, field.Uniform(5, 1e-20), 1e19)

		Expect(x).To(Equal(before))
	})

	It("is a no-op on uniform profiles with uniform coefficients", func() {
		g := mesh(20, 1e-10)
		x := field.Uniform(20, 3.5)
		d := field.Uniform(20, 2e-20)
		dt := 0.4 * integrators.MaxStableStep(g.Dz(), d.Max())

		for i := 0; i < 50; i++ {
			x = ftcs.Step(g, x, d, dt)
		}
		for _, v := range x {
			Expect(v).To(BeNumerically("~", 3.5, 1e-12))
		}
	})

	It("mirrors the boundaries exactly for arbitrary coefficients", func() {
		g := mesh(12, 1e-9)
		x := make(field.Profile, 12)
		d := make(field.Profile, 12)
		for i := range x {
			x[i] = math.Sin(float64(i)) + 2
			d[i] = 1e-20 * (1 + float64(i%3))
		}
		dt := 0.5 * integrators.MaxStableStep(g.Dz(), d.Max())

		for i := 0; i < 10; i++ {
			x = ftcs.Step(g, x, d, dt)
			Expect(x[0]).To(Equal(x[1]))
			Expect(x[11]).To(Equal(x[10]))
		}
	})

	It("conserves the interior sum for uniform coefficients", func() {
		g := mesh(30, 1)
		x := make(field.Profile, 30)
		for i := 10; i < 20; i++ {
			x[i] = float64(i)
		}
		d := field.Uniform(30, 0.25)
		dt := 0.9 * integrators.MaxStableStep(g.Dz(), d.Max())

		total := x.InteriorSum()
		for i := 0; i < 200; i++ {
			x = ftcs.Step(g, x, d, dt)
			Expect(x.InteriorSum()).To(BeNumerically("~", total, 1e-9))
		}
	})
})

var _ = Describe("CheckStability", func() {
	DescribeTable("accepts steps below and rejects steps above dz²/(2·D)",
		func(dz, d float64) {
			dtMax := dz * dz / (2 * d)

			Expect(integrators.CheckStability(0.999*dtMax, dz, d)).To(Succeed())

			err := integrators.CheckStability(1.001*dtMax, dz, d)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, field.ErrStabilityViolation)).To(BeTrue())

			var se *field.StabilityError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.DtMax).To(BeNumerically("~", dtMax, dtMax*1e-12))
		},
		Entry("unit mesh, reference coefficient", 1.0, 1e-20),
		Entry("angstrom mesh", 1e-10, 1e-20),
		Entry("nanometre mesh, fast diffusion", 1e-9, 5e-18),
		Entry("coarse mesh", 2.5, 0.3),
	)

	It("accepts any step when the coefficient is zero", func() {
		Expect(integrators.CheckStability(1e30, 1, 0)).To(Succeed())
	})
})
