package models

import (
	"math"

	"github.com/san-kum/gdesim/internal/field"
)

// UpdateLaw computes a point's next coefficient from its previous value, the
// local concentration, its position, the current clock and the time elapsed
// since the previous evaluation.
type UpdateLaw func(dPrev, x, z, t, elapsed float64) float64

// TimeDependent starts from a tabulated profile and applies Law to every
// point on each evaluation, including the first.
type TimeDependent struct {
	Source  string
	LawName string
	law     UpdateLaw
	d       field.Profile
	last    float64
}

func NewTimeDependent(g *field.Grid, source string, d0 []float64, lawName string, law UpdateLaw) (*TimeDependent, error) {
	p, err := alignedCoefficients(g, source, d0)
	if err != nil {
		return nil, err
	}
	if law == nil {
		law = StaticLaw()
	}
	return &TimeDependent{Source: source, LawName: lawName, law: law, d: p}, nil
}

func (m *TimeDependent) Name() string { return "time" }

func (m *TimeDependent) Evaluate(g *field.Grid, x field.Profile, t float64) field.Profile {
	elapsed := t - m.last
	next := make(field.Profile, len(m.d))
	for i, prev := range m.d {
		next[i] = m.law(prev, x[i], g.At(i), t, elapsed)
	}
	m.d = next
	m.last = t
	return next
}

// Current returns a copy of the most recent coefficient profile.
func (m *TimeDependent) Current() field.Profile {
	return m.d.Clone()
}

func (m *TimeDependent) GetParams() map[string]float64 {
	return map[string]float64{"d_max": m.d.Max()}
}

// StaticLaw keeps every coefficient at its tabulated value.
func StaticLaw() UpdateLaw {
	return func(dPrev, _, _, _, _ float64) float64 { return dPrev }
}

// RelaxLaw moves each coefficient a fraction rate of the way towards the
// concentration-dependent value k·x² on every step.
func RelaxLaw(k, rate float64) UpdateLaw {
	return func(dPrev, x, _, _, _ float64) float64 {
		return dPrev + rate*(k*x*x-dPrev)
	}
}

// DecayLaw gives D(t) = D(0)·exp(-rate·t) by decaying each coefficient over
// the clock interval since the previous evaluation.
func DecayLaw(rate float64) UpdateLaw {
	return func(dPrev, _, _, _, elapsed float64) float64 {
		return dPrev * math.Exp(-rate*elapsed)
	}
}
