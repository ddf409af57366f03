package models

import (
	"fmt"

	"github.com/san-kum/gdesim/internal/field"
)

// DefaultConcentrationFactor is k in D = k·x² [m²/s].
const DefaultConcentrationFactor = 1e-20

// ConcentrationDependent scales the coefficient with the square of the
// local concentration, D_i = K·x_i².
type ConcentrationDependent struct {
	K float64
}

func NewConcentrationDependent(k float64) (*ConcentrationDependent, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: concentration factor must be non-negative, got %g", field.ErrInvalidInput, k)
	}
	return &ConcentrationDependent{K: k}, nil
}

func (m *ConcentrationDependent) Name() string { return "concentration-dependent" }

func (m *ConcentrationDependent) Evaluate(_ *field.Grid, x field.Profile, _ float64) field.Profile {
	d := make(field.Profile, len(x))
	for i, v := range x {
		d[i] = m.K * v * v
	}
	return d
}

func (m *ConcentrationDependent) GetParams() map[string]float64 {
	return map[string]float64{"k": m.K}
}
