package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Profile holds one value per grid point.
type Profile []float64

// Uniform returns a profile of n copies of v.
func Uniform(n int, v float64) Profile {
	p := make(Profile, n)
	for i := range p {
		p[i] = v
	}
	return p
}

func (p Profile) Clone() Profile {
	c := make(Profile, len(p))
	copy(c, p)
	return c
}

func (p Profile) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Max returns the largest value, or -Inf for an empty profile.
func (p Profile) Max() float64 {
	if len(p) == 0 {
		return math.Inf(-1)
	}
	return floats.Max(p)
}

// Min returns the smallest value, or +Inf for an empty profile.
func (p Profile) Min() float64 {
	if len(p) == 0 {
		return math.Inf(1)
	}
	return floats.Min(p)
}

func (p Profile) Sum() float64 { return floats.Sum(p) }

// InteriorSum excludes the two boundary points.
func (p Profile) InteriorSum() float64 {
	if len(p) < 2 {
		return 0
	}
	return p[1 : len(p)-1].Sum()
}
