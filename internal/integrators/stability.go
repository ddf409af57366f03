package integrators

import (
	"math"

	"github.com/san-kum/gdesim/internal/field"
)

// MaxStableStep is the largest time step for which the explicit scheme stays
// bounded, dz²/(2·dMax). A zero coefficient gives +Inf.
func MaxStableStep(dz, dMax float64) float64 {
	if dMax == 0 {
		return math.Inf(1)
	}
	return dz * dz / (2 * dMax)
}

// CheckStability returns a *field.StabilityError when dt exceeds the bound.
func CheckStability(dt, dz, dMax float64) error {
	dtMax := MaxStableStep(dz, dMax)
	if dt > dtMax || math.IsNaN(dtMax) {
		return &field.StabilityError{Dt: dt, DtMax: dtMax, DMax: dMax}
	}
	return nil
}
