package models

import (
	"fmt"

	"github.com/san-kum/gdesim/internal/field"
)

// Tabulated holds a coefficient profile read once from an external table.
type Tabulated struct {
	Source string
	d      field.Profile
}

// NewTabulated checks that the table is aligned with the grid. source only
// labels errors.
func NewTabulated(g *field.Grid, source string, d []float64) (*Tabulated, error) {
	p, err := alignedCoefficients(g, source, d)
	if err != nil {
		return nil, err
	}
	return &Tabulated{Source: source, d: p}, nil
}

func (m *Tabulated) Name() string { return "file" }

// Evaluate returns a shared profile; callers must not modify it.
func (m *Tabulated) Evaluate(_ *field.Grid, _ field.Profile, _ float64) field.Profile {
	return m.d
}

func (m *Tabulated) GetParams() map[string]float64 {
	return map[string]float64{"d_max": m.d.Max(), "d_min": m.d.Min()}
}

func alignedCoefficients(g *field.Grid, source string, d []float64) (field.Profile, error) {
	if len(d) != g.Len() {
		return nil, &field.TableMismatchError{Path: source, Want: g.Len(), Got: len(d)}
	}
	for i, v := range d {
		if v < 0 {
			return nil, fmt.Errorf("%w: %s: negative diffusion coefficient %g at point %d", field.ErrInvalidInput, source, v, i)
		}
	}
	return field.Profile(d).Clone(), nil
}
