package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/gdesim/internal/config"
	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/metrics"
	"github.com/san-kum/gdesim/internal/models"
	"github.com/san-kum/gdesim/internal/sim"
	"github.com/san-kum/gdesim/internal/storage"
)

// ModelFactory builds a fresh coefficient model for one run on g.
type ModelFactory func(g *field.Grid, cfg *config.Config) (sim.CoefficientModel, error)

// LawFactory builds a time-dependent update law from its parameters.
type LawFactory func(p TimeParams) models.UpdateLaw

type ConcentrationParams struct {
	K float64 `param:"k"`
}

type DepthParams struct {
	D0    float64 `param:"d0"`
	Z0    float64 `param:"z0"`
	Sigma float64 `param:"sigma"`
}

type TimeParams struct {
	Law  string  `param:"law"`
	K    float64 `param:"k"`
	Rate float64 `param:"rate"`
}

type Registry struct {
	models map[string]ModelFactory
	laws   map[string]LawFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]ModelFactory),
		laws:   make(map[string]LawFactory),
	}

	r.models["constant"] = func(_ *field.Grid, cfg *config.Config) (sim.CoefficientModel, error) {
		if err := config.DecodeParams(cfg.Params, &struct{}{}); err != nil {
			return nil, err
		}
		return models.NewConstant(cfg.D0())
	}
	r.models["file"] = func(g *field.Grid, cfg *config.Config) (sim.CoefficientModel, error) {
		if err := config.DecodeParams(cfg.Params, &struct{}{}); err != nil {
			return nil, err
		}
		_, d, err := storage.ReadTable(cfg.CoefficientFile)
		if err != nil {
			return nil, err
		}
		return models.NewTabulated(g, cfg.CoefficientFile, d)
	}
	r.models["concentration-dependent"] = func(_ *field.Grid, cfg *config.Config) (sim.CoefficientModel, error) {
		p := ConcentrationParams{K: models.DefaultConcentrationFactor}
		if err := config.DecodeParams(cfg.Params, &p); err != nil {
			return nil, err
		}
		return models.NewConcentrationDependent(p.K)
	}
	r.models["depth-dependent"] = func(_ *field.Grid, cfg *config.Config) (sim.CoefficientModel, error) {
		p := DepthParams{
			D0:    models.DefaultDepthD0,
			Z0:    models.DefaultDepthZ0,
			Sigma: models.DefaultDepthSigma,
		}
		if err := config.DecodeParams(cfg.Params, &p); err != nil {
			return nil, err
		}
		return models.NewDepthDependent(p.D0, p.Z0, p.Sigma)
	}
	r.models["time"] = func(g *field.Grid, cfg *config.Config) (sim.CoefficientModel, error) {
		p := TimeParams{Law: "static", K: models.DefaultConcentrationFactor}
		if err := config.DecodeParams(cfg.Params, &p); err != nil {
			return nil, err
		}
		law, err := r.GetLaw(p)
		if err != nil {
			return nil, err
		}
		_, d, err := storage.ReadTable(cfg.CoefficientFile)
		if err != nil {
			return nil, err
		}
		return models.NewTimeDependent(g, cfg.CoefficientFile, d, p.Law, law)
	}

	r.laws["static"] = func(TimeParams) models.UpdateLaw { return models.StaticLaw() }
	r.laws["relax"] = func(p TimeParams) models.UpdateLaw { return models.RelaxLaw(p.K, p.Rate) }
	r.laws["decay"] = func(p TimeParams) models.UpdateLaw { return models.DecayLaw(p.Rate) }

	return r
}

// HasModel reports whether mode names a registered coefficient model.
func (r *Registry) HasModel(mode string) bool {
	_, ok := r.models[mode]
	return ok
}

func (r *Registry) GetModel(g *field.Grid, cfg *config.Config) (sim.CoefficientModel, error) {
	fn, ok := r.models[cfg.Mode]
	if !ok {
		return nil, unknownMode(cfg.Mode)
	}
	return fn(g, cfg)
}

func (r *Registry) GetLaw(p TimeParams) (models.UpdateLaw, error) {
	fn, ok := r.laws[p.Law]
	if !ok {
		return nil, fmt.Errorf("%w: unknown update law %q", field.ErrConfiguration, p.Law)
	}
	return fn(p), nil
}

// Register adds or replaces a coefficient model under mode.
func (r *Registry) Register(mode string, fn ModelFactory) {
	r.models[mode] = fn
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListLaws() []string {
	names := make([]string, 0, len(r.laws))
	for name := range r.laws {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh set of run metrics.
func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewDose(),
		metrics.NewDoseDrift(),
		metrics.NewPositivity(0),
		metrics.NewPeak(),
		metrics.NewSpread(),
	}
}

func unknownMode(mode string) error {
	return fmt.Errorf("%w: diffusion mode %q not recognised", field.ErrConfiguration, mode)
}
