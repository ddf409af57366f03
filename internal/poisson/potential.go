package poisson

import (
	"fmt"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/physics"
)

// Options select the boundary conditions of a space-charge calculation.
type Options struct {
	// Field is the applied field [kV/cm]; it is ignored unless HasField.
	Field    float64
	HasField bool
	// Mixed adds the applied bias as a Laplace correction to the zero-field
	// solution instead of pinning both walls in one solve.
	Mixed bool
	// Centred pivots the potential about the middle of the structure. It
	// only applies when a field is given.
	Centred bool
	// Offset is the potential at the first sample [meV]. Mixed runs ignore
	// it.
	Offset float64
	// PType treats the charge as acceptors so holes see a positive
	// potential.
	PType bool
}

// Potential is the electron potential energy [J] and the electric field
// [V/m] along the structure.
type Potential struct {
	Energy []float64
	Field  []float64
	// Drop is the voltage [V] imposed across the structure, zero unless a
	// field was applied.
	Drop float64
}

// Compute finds the potential induced by a carrier density [m⁻³]. A nil
// density means an uncharged structure.
func Compute(eps []float64, dz float64, density []float64, opt Options) (*Potential, error) {
	s, err := NewSolver(eps, dz)
	if err != nil {
		return nil, err
	}

	rho := make([]float64, s.Len())
	if density != nil {
		if len(density) != s.Len() {
			return nil, fmt.Errorf("%w: charge profile has %d points, permittivity has %d", field.ErrInvalidInput, len(density), s.Len())
		}
		sign := 1.0
		if opt.PType {
			sign = -1
		}
		for i, n := range density {
			rho[i] = sign * n * physics.ElementaryCharge
		}
	}

	applied := physics.FieldFromKVPerCm(opt.Field)
	out := &Potential{}
	var phi []float64

	switch {
	case opt.Mixed:
		phi, err = s.Solve(rho)
		if err != nil {
			return nil, err
		}
		if opt.HasField {
			out.Drop = applied*s.Length() - phi[len(phi)-1]
			bias, err := s.SolveLaplace(out.Drop)
			if err != nil {
				return nil, err
			}
			for i := range phi {
				phi[i] += bias[i]
				if opt.Centred {
					phi[i] -= out.Drop / 2
				}
			}
		}

	case opt.HasField:
		out.Drop = applied * s.Length()
		phi, err = s.SolveWithDrop(rho, out.Drop)
		if err != nil {
			return nil, err
		}
		if opt.Centred {
			// the first sample is half a cell inside the wall
			shift := phi[0] + out.Drop/2 - applied*dz/2
			for i := range phi {
				phi[i] -= shift
			}
		}

	default:
		phi, err = s.Solve(rho)
		if err != nil {
			return nil, err
		}
	}

	if !opt.Mixed {
		offset := opt.Offset / 1000
		for i := range phi {
			phi[i] -= offset
		}
	}

	out.Energy = make([]float64, len(phi))
	for i, v := range phi {
		out.Energy[i] = -v * physics.ElementaryCharge
	}
	out.Field = FieldProfile(out.Energy, dz)
	return out, nil
}

// FieldProfile is the centred-difference field [V/m] of a potential energy
// profile [J]. The end points are zero.
func FieldProfile(energy []float64, dz float64) []float64 {
	f := make([]float64, len(energy))
	for i := 1; i < len(energy)-1; i++ {
		f[i] = (energy[i+1] - energy[i-1]) / (2 * dz * physics.ElementaryCharge)
	}
	return f
}

// AddBaseline returns energy + base. The profiles must have the same
// number of points.
func AddBaseline(energy, base []float64) ([]float64, error) {
	if len(base) != len(energy) {
		return nil, fmt.Errorf("%w: baseline and Poisson potential have different lengths (%d and %d)", field.ErrInvalidInput, len(base), len(energy))
	}
	total := make([]float64, len(energy))
	for i := range energy {
		total[i] = energy[i] + base[i]
	}
	return total, nil
}
