// Package poisson solves the 1-D Poisson equation d/dz(ε dφ/dz) = -ρ on a
// cell-centred mesh. Sample i sits in the middle of cell i, so the
// structure walls are half a cell outside the first and last samples.
package poisson

import (
	"fmt"

	"gonum.org/v1/gonum/lapack/gonum"

	"github.com/san-kum/gdesim/internal/field"
)

type Solver struct {
	eps []float64
	dz  float64
}

// NewSolver takes the permittivity [F/m] at every sample and the cell size
// [m].
func NewSolver(eps []float64, dz float64) (*Solver, error) {
	if len(eps) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 cells, got %d", field.ErrInvalidInput, len(eps))
	}
	if !(dz > 0) {
		return nil, fmt.Errorf("%w: cell size must be positive, got %g", field.ErrInvalidInput, dz)
	}
	for i, v := range eps {
		if !(v > 0) {
			return nil, fmt.Errorf("%w: permittivity must be positive, got %g at point %d", field.ErrInvalidInput, v, i)
		}
	}
	return &Solver{eps: append([]float64(nil), eps...), dz: dz}, nil
}

func (s *Solver) Len() int { return len(s.eps) }

// Length is the distance between the walls, N·dz.
func (s *Solver) Length() float64 { return float64(len(s.eps)) * s.dz }

// face is the permittivity between samples i and i+1.
func (s *Solver) face(i int) float64 { return 0.5 * (s.eps[i] + s.eps[i+1]) }

func (s *Solver) check(rho []float64) error {
	if len(rho) != len(s.eps) {
		return fmt.Errorf("%w: charge profile has %d points, permittivity has %d", field.ErrInvalidInput, len(rho), len(s.eps))
	}
	return nil
}

// Solve integrates outward from the left wall with zero field there and
// φ=0 at the first sample. For a neutral structure the field also vanishes
// at the right wall.
func (s *Solver) Solve(rho []float64) ([]float64, error) {
	if err := s.check(rho); err != nil {
		return nil, err
	}

	n := len(rho)
	phi := make([]float64, n)
	dz2 := s.dz * s.dz
	enclosed := 0.0
	for i := 0; i < n-1; i++ {
		enclosed += rho[i]
		phi[i+1] = phi[i] - dz2*enclosed/s.face(i)
	}
	return phi, nil
}

// SolveWithDrop fixes φ=0 at the left wall and φ=drop at the right wall.
func (s *Solver) SolveWithDrop(rho []float64, drop float64) ([]float64, error) {
	if err := s.check(rho); err != nil {
		return nil, err
	}

	n := len(rho)
	dz2 := s.dz * s.dz
	sub := make([]float64, n-1)
	diag := make([]float64, n)
	super := make([]float64, n-1)
	phi := make([]float64, n)

	for i := 0; i < n; i++ {
		var left, right float64
		if i == 0 {
			left = 2 * s.eps[0]
		} else {
			left = s.face(i - 1)
			sub[i-1] = left / dz2
		}
		if i == n-1 {
			right = 2 * s.eps[n-1]
			phi[i] = -right * drop / dz2
		} else {
			right = s.face(i)
			super[i] = right / dz2
		}
		diag[i] = -(left + right) / dz2
		phi[i] -= rho[i]
	}

	// Dgtsv overwrites the right-hand side with the solution.
	if ok := (gonum.Implementation{}).Dgtsv(n, 1, sub, diag, super, phi, 1); !ok {
		return nil, fmt.Errorf("%w: singular Poisson system", field.ErrInvalidState)
	}
	return phi, nil
}

// SolveLaplace is SolveWithDrop for an uncharged structure.
func (s *Solver) SolveLaplace(drop float64) ([]float64, error) {
	return s.SolveWithDrop(make([]float64, len(s.eps)), drop)
}
