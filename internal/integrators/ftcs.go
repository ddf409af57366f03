package integrators

import "github.com/san-kum/gdesim/internal/field"

// FTCS advances a profile with the explicit forward-time, central-space
// discretisation of dx/dt = d/dz (D dx/dz), expanded by the product rule so
// that spatially varying coefficients contribute their gradient term.
//
// Step assumes CheckStability has already accepted (dt, dz, max D).
type FTCS struct{}

func NewFTCS() *FTCS {
	return &FTCS{}
}

func (f *FTCS) Name() string { return "ftcs" }

// Step returns a new profile; x and d are only read.
func (f *FTCS) Step(g *field.Grid, x, d field.Profile, dt float64) field.Profile {
	n := g.Len()
	dz := g.Dz()
	h2 := dz * dz
	w2 := (2 * dz) * (2 * dz)

	next := make(field.Profile, n)
	for i := 1; i < n-1; i++ {
		next[i] = dt*((d[i+1]-d[i-1])*(x[i+1]-x[i-1])/w2+
			d[i]*(x[i+1]-2*x[i]+x[i-1])/h2) + x[i]
	}

	// closed system: no flux through either end
	next[0] = next[1]
	next[n-1] = next[n-2]

	return next
}
