// Package material maps alloy composition profiles to band-edge potentials
// and effective masses for a small database of III-V and II-VI alloys.
package material

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/physics"
)

type Material string

const (
	GaAlAs   Material = "gaalas"   // Ga(1-x)Al(x)As
	CdMnTe   Material = "cdmnte"   // Cd(1-x)Mn(x)Te
	InAlGaAs Material = "inalgaas" // In(1-x-y)Al(x)Ga(y)As
)

func ParseMaterial(s string) (Material, error) {
	switch m := Material(strings.ToLower(s)); m {
	case GaAlAs, CdMnTe, InAlGaAs:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown material %q (want gaalas, cdmnte or inalgaas)", field.ErrConfiguration, s)
}

// Columns is the number of columns in an alloy table for m: position and
// one or two alloy fractions.
func (m Material) Columns() int {
	if m == InAlGaAs {
		return 3
	}
	return 2
}

type Particle byte

const (
	Electron  Particle = 'e'
	HeavyHole Particle = 'h'
	LightHole Particle = 'l'
)

func ParseParticle(s string) (Particle, error) {
	if len(s) == 1 {
		switch p := Particle(s[0]); p {
		case Electron, HeavyHole, LightHole:
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown particle %q (want e, h or l)", field.ErrConfiguration, s)
}

func (p Particle) String() string { return string(p) }

// ParseMass reads "auto" as zero, meaning the mass is computed from the
// alloy fraction, or a positive constant mass in units of m_e.
func ParseMass(s string) (float64, error) {
	if s == "auto" {
		return 0, nil
	}
	m, err := strconv.ParseFloat(s, 64)
	if err != nil || !(m > 0) {
		return 0, fmt.Errorf("%w: cannot parse mass %q", field.ErrConfiguration, s)
	}
	return m, nil
}

// Alloy is a composition profile. Y is only used by quaternaries.
type Alloy struct {
	Z []float64
	X []float64
	Y []float64
}

type Options struct {
	Material Material
	Particle Particle
	// Mass is a constant effective mass in units of m_e; zero selects the
	// composition-dependent mass.
	Mass    float64
	Bandgap bool
}

// BandProfile is the band-edge potential [J] and effective masses [kg]
// along the structure. Mass is nil when the database has no mass for the
// particle. Warnings lists data that had to be left out.
type BandProfile struct {
	Z        []float64
	V        []float64
	Mass     []float64
	MassPerp []float64
	Bandgap  []float64
	Warnings []string
}

type bandData struct {
	offset  func(x, y float64) float64 // total discontinuity dV/e [V]
	gap     float64                    // bandgap of the binary [eV]
	split   map[Particle]float64
	mass    map[Particle]func(x float64) float64
	noPot   map[Particle]bool
	noBand  map[Particle]bool
	display string
}

var database = map[Material]bandData{
	GaAlAs: {
		offset: func(x, _ float64) float64 { return 1.247 * x },
		gap:    1.426,
		split:  map[Particle]float64{Electron: 0.67, HeavyHole: 0.33},
		mass: map[Particle]func(float64) float64{
			Electron:  func(x float64) float64 { return 0.067 + 0.083*x },
			HeavyHole: func(x float64) float64 { return 0.62 + 0.14*x },
		},
		noBand:  map[Particle]bool{LightHole: true},
		display: "Ga(1-x)Al(x)As",
	},
	CdMnTe: {
		offset: func(x, _ float64) float64 { return 1.587 * x },
		gap:    1.606,
		split:  map[Particle]float64{Electron: 0.70, HeavyHole: 0.30},
		mass: map[Particle]func(float64) float64{
			Electron:  func(x float64) float64 { return 0.11 + 0.067*x },
			HeavyHole: func(x float64) float64 { return 0.60 + 0.21*x + 0.15*x*x },
			LightHole: func(x float64) float64 { return 0.18 + 0.14*x },
		},
		noPot:   map[Particle]bool{LightHole: true},
		display: "Cd(1-x)Mn(x)Te",
	},
	InAlGaAs: {
		offset: func(x, y float64) float64 {
			return 2.093*x + 0.629*y + 0.577*x*x + 0.436*y*y + 1.013*x*y + 2.0*x*x*(x+y-1)
		},
		gap:   0.36,
		split: map[Particle]float64{Electron: 0.53, HeavyHole: 0.47},
		mass: map[Particle]func(float64) float64{
			Electron: func(x float64) float64 { return 0.0427 + 0.0685*x },
		},
		noBand:  map[Particle]bool{LightHole: true},
		display: "In(1-x-y)Al(x)Ga(y)As",
	},
}

// BandEdge computes the band-edge profile of an alloy structure.
func BandEdge(a Alloy, opt Options) (*BandProfile, error) {
	data, ok := database[opt.Material]
	if !ok {
		return nil, fmt.Errorf("%w: unknown material %q", field.ErrConfiguration, opt.Material)
	}
	if data.noBand[opt.Particle] {
		return nil, fmt.Errorf("%w: no data for %s %s", field.ErrInvalidInput, data.display, particleName(opt.Particle))
	}
	if len(a.X) != len(a.Z) {
		return nil, fmt.Errorf("%w: %d positions but %d alloy fractions", field.ErrInvalidInput, len(a.Z), len(a.X))
	}
	if opt.Material.Columns() == 3 && len(a.Y) != len(a.Z) {
		return nil, fmt.Errorf("%w: %s needs a second alloy fraction at every point", field.ErrInvalidInput, data.display)
	}
	if opt.Mass < 0 {
		return nil, fmt.Errorf("%w: effective mass must be positive, got %g", field.ErrInvalidInput, opt.Mass)
	}

	n := len(a.Z)
	out := &BandProfile{
		Z: append([]float64(nil), a.Z...),
		V: make([]float64, n),
	}

	dV := make([]float64, n)
	for i, x := range a.X {
		y := 0.0
		if a.Y != nil {
			y = a.Y[i]
		}
		dV[i] = data.offset(x, y) * physics.ElementaryCharge
	}

	if data.noPot[opt.Particle] {
		out.Warnings = append(out.Warnings, fmt.Sprintf("potential data not defined for %s %s", data.display, particleName(opt.Particle)))
	} else {
		split := data.split[opt.Particle]
		for i := range dV {
			out.V[i] = split * dV[i]
		}
	}

	switch massFn, ok := data.mass[opt.Particle]; {
	case opt.Mass > 0:
		out.Mass = constant(n, opt.Mass*physics.ElectronMass)
	case ok:
		out.Mass = make([]float64, n)
		for i, x := range a.X {
			out.Mass[i] = massFn(x) * physics.ElectronMass
		}
	default:
		out.Warnings = append(out.Warnings, fmt.Sprintf("mass data not defined for %s %s", data.display, particleName(opt.Particle)))
	}
	if out.Mass != nil {
		out.MassPerp = append([]float64(nil), out.Mass...)
	}

	if opt.Bandgap {
		out.Bandgap = make([]float64, n)
		for i := range dV {
			out.Bandgap[i] = data.gap*physics.ElementaryCharge + dV[i]
		}
	}
	return out, nil
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func particleName(p Particle) string {
	switch p {
	case Electron:
		return "electron"
	case HeavyHole:
		return "heavy-hole"
	case LightHole:
		return "light-hole"
	}
	return p.String()
}
