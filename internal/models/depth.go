package models

import (
	"fmt"
	"math"

	"github.com/san-kum/gdesim/internal/field"
)

// Defaults for the Gaussian depth profile.
const (
	DefaultDepthD0    = 10 * 1e-20   // peak coefficient [m²/s]
	DefaultDepthZ0    = 1800 * 1e-10 // centre [m]
	DefaultDepthSigma = 600 * 1e-10  // width [m]
)

// DepthDependent is a Gaussian coefficient distribution centred on Z0,
// D_i = D0·exp(-((z_i-Z0)/Sigma)²/2).
type DepthDependent struct {
	D0    float64
	Z0    float64
	Sigma float64
}

func NewDepthDependent(d0, z0, sigma float64) (*DepthDependent, error) {
	if d0 < 0 {
		return nil, fmt.Errorf("%w: peak coefficient must be non-negative, got %g", field.ErrInvalidInput, d0)
	}
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: distribution width must be positive, got %g", field.ErrInvalidInput, sigma)
	}
	return &DepthDependent{D0: d0, Z0: z0, Sigma: sigma}, nil
}

func (m *DepthDependent) Name() string { return "depth-dependent" }

func (m *DepthDependent) Evaluate(g *field.Grid, _ field.Profile, _ float64) field.Profile {
	d := make(field.Profile, g.Len())
	for i := range d {
		u := (g.At(i) - m.Z0) / m.Sigma
		d[i] = m.D0 * math.Exp(-u*u/2)
	}
	return d
}

func (m *DepthDependent) GetParams() map[string]float64 {
	return map[string]float64{"d0": m.D0, "z0": m.Z0, "sigma": m.Sigma}
}
