package field

import (
	"fmt"
	"math"
)

// MinPoints is the smallest mesh that still has an interior point.
const MinPoints = 3

// spacingTolerance bounds the deviation of an interval from the first one,
// relative to the magnitude of the positions involved. Tables printed with
// six or seven significant digits stay well inside it.
const spacingTolerance = 1e-5

// Grid is a uniform 1-D sampling mesh.
type Grid struct {
	z  []float64
	dz float64
}

// NewGrid validates and copies the positions. Every interval must match the
// first one to within a tolerance scaled by the largest position involved,
// so rounding in printed tables is accepted.
func NewGrid(positions []float64) (*Grid, error) {
	n := len(positions)
	if n < MinPoints {
		return nil, fmt.Errorf("%w: grid needs at least %d points, got %d", ErrInvalidInput, MinPoints, n)
	}

	dz := positions[1] - positions[0]
	if !(dz > 0) || math.IsInf(dz, 0) {
		return nil, fmt.Errorf("%w: grid spacing must be positive, got %g", ErrInvalidInput, dz)
	}

	origin := math.Max(math.Abs(positions[0]), math.Abs(positions[1]))
	for i := 2; i < n; i++ {
		h := positions[i] - positions[i-1]
		scale := math.Max(dz, math.Max(origin, math.Max(math.Abs(positions[i]), math.Abs(positions[i-1]))))
		if math.Abs(h-dz) > spacingTolerance*scale {
			return nil, fmt.Errorf("%w: non-uniform grid spacing at point %d (%g, expected %g)", ErrInvalidInput, i, h, dz)
		}
	}

	z := make([]float64, n)
	copy(z, positions)
	return &Grid{z: z, dz: dz}, nil
}

func (g *Grid) Len() int         { return len(g.z) }
func (g *Grid) Dz() float64      { return g.dz }
func (g *Grid) At(i int) float64 { return g.z[i] }

// Positions returns a copy of the sample positions.
func (g *Grid) Positions() []float64 {
	z := make([]float64, len(g.z))
	copy(z, g.z)
	return z
}

// Length is the distance between the first and last sample.
func (g *Grid) Length() float64 {
	return g.z[len(g.z)-1] - g.z[0]
}

// Check returns ErrInvalidInput unless p has one value per grid point.
func (g *Grid) Check(p Profile) error {
	if len(p) != len(g.z) {
		return fmt.Errorf("%w: profile has %d points, grid has %d", ErrInvalidInput, len(p), len(g.z))
	}
	return nil
}
