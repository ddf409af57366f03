package metrics

import (
	"math"

	"github.com/san-kum/gdesim/internal/field"
)

// Dose tracks Σ x·dz, the amount of diffusant on the mesh.
type Dose struct {
	name    string
	current float64
	samples int
}

func NewDose() *Dose {
	return &Dose{name: "dose"}
}

func (d *Dose) Name() string { return d.name }

func (d *Dose) Observe(g *field.Grid, x field.Profile, t float64) {
	d.current = x.Sum() * g.Dz()
	d.samples++
}

func (d *Dose) Value() float64 { return d.current }

func (d *Dose) Reset() {
	d.current = 0
	d.samples = 0
}

// DoseDrift is the largest relative departure of the dose from its value at
// the first observation. The mirrored boundaries do not conserve the dose
// exactly, so this measures how much leaks through the edge cells.
type DoseDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewDoseDrift() *DoseDrift {
	return &DoseDrift{name: "dose_drift"}
}

func (d *DoseDrift) Name() string { return d.name }

func (d *DoseDrift) Observe(g *field.Grid, x field.Profile, t float64) {
	dose := x.Sum() * g.Dz()
	if d.samples == 0 {
		d.initial = dose
	}
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(dose-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *DoseDrift) Value() float64 { return d.maxDrift }

func (d *DoseDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
