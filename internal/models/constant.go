package models

import (
	"fmt"

	"github.com/san-kum/gdesim/internal/field"
)

// Constant is a single coefficient applied at every grid point. The profile
// is built on first use and reused for the rest of the run.
type Constant struct {
	D0 float64
	d  field.Profile
}

func NewConstant(d0 float64) (*Constant, error) {
	if d0 < 0 {
		return nil, fmt.Errorf("%w: diffusion coefficient must be non-negative, got %g", field.ErrInvalidInput, d0)
	}
	return &Constant{D0: d0}, nil
}

func (c *Constant) Name() string { return "constant" }

// Evaluate returns a shared profile; callers must not modify it.
func (c *Constant) Evaluate(g *field.Grid, _ field.Profile, _ float64) field.Profile {
	if len(c.d) != g.Len() {
		c.d = field.Uniform(g.Len(), c.D0)
	}
	return c.d
}

func (c *Constant) GetParams() map[string]float64 {
	return map[string]float64{"d0": c.D0}
}
