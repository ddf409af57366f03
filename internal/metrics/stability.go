package metrics

import "github.com/san-kum/gdesim/internal/field"

// Positivity is the fraction of observed profiles whose every sample is at
// least -tolerance. An explicit scheme run close to its stability bound with
// a steep coefficient gradient can undershoot below zero.
type Positivity struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewPositivity(tolerance float64) *Positivity {
	return &Positivity{
		name:      "positivity",
		tolerance: tolerance,
	}
}

func (p *Positivity) Name() string {
	return p.name
}

func (p *Positivity) Observe(g *field.Grid, x field.Profile, t float64) {
	p.samples++
	if x.Min() < -p.tolerance {
		p.violations++
	}
}

func (p *Positivity) Value() float64 {
	if p.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(p.violations)/float64(p.samples)
}

func (p *Positivity) Reset() {
	p.violations = 0
	p.samples = 0
}
