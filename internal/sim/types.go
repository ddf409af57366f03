package sim

import "github.com/san-kum/gdesim/internal/field"

// CoefficientModel produces the diffusion coefficient profile for the
// current concentration, mesh and clock.
type CoefficientModel interface {
	Name() string
	Evaluate(g *field.Grid, x field.Profile, t float64) field.Profile
}

// Integrator advances a concentration profile by one step. It must return a
// new profile and leave x and d untouched.
type Integrator interface {
	Step(g *field.Grid, x, d field.Profile, dt float64) field.Profile
}

type Metric interface {
	Name() string
	Observe(g *field.Grid, x field.Profile, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, t float64, x, d field.Profile)
}

type Configurable interface {
	GetParams() map[string]float64
}

type Config struct {
	Dt            float64
	TFinal        float64
	ValidateState bool
	// SnapshotEvery records the profile every n steps; zero disables it.
	SnapshotEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		TFinal:        1.0,
		ValidateState: true,
	}
}

type Snapshot struct {
	Step    int
	Time    float64
	Profile field.Profile
}

type Result struct {
	Initial     field.Profile
	Final       field.Profile
	Coefficient field.Profile
	Steps       int
	Time        float64
	Snapshots   []Snapshot
	Metrics     map[string]float64
}
