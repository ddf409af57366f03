package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/gdesim/internal/field"
)

// Moments summarises the spatial distribution of a profile.
type Moments struct {
	Dose     float64 // Σ x·dz
	Centroid float64
	Variance float64
	Width    float64 // sqrt(Variance)
}

// ComputeMoments treats each sample as the centre of a cell of width dz and
// uses the concentration as the weight of its position. Centroid and
// variance are zero when the profile sums to zero.
func ComputeMoments(g *field.Grid, x field.Profile) Moments {
	total := floats.Sum(x)
	m := Moments{Dose: total * g.Dz()}
	if total == 0 {
		return m
	}

	m.Centroid, m.Variance = stat.PopMeanVariance(g.Positions(), x)
	m.Width = math.Sqrt(math.Abs(m.Variance))
	return m
}

// DiffusionLength is sqrt(2·D·t).
func DiffusionLength(d, t float64) float64 {
	return math.Sqrt(2 * d * t)
}

// EffectiveCoefficient is the coefficient that explains the change in
// variance between two moments taken elapsed seconds apart.
func EffectiveCoefficient(before, after Moments, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return (after.Variance - before.Variance) / (2 * elapsed)
}
