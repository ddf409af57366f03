package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/integrators"
	"github.com/san-kum/gdesim/internal/sim"
)

// SweepResult is the outcome of one run in a sweep. Exactly one of Result
// and Err is set.
type SweepResult struct {
	Dt     float64
	Result *sim.Result
	Err    error
}

// Sweep repeats the configured run once per time step in dts, concurrently.
// Every run gets its own coefficient model and metrics; a failing run does
// not stop the others.
func (e *Experiment) Sweep(ctx context.Context, dts []float64) ([]SweepResult, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("%w: experiment not set up", field.ErrConfiguration)
	}
	if len(dts) == 0 {
		return nil, fmt.Errorf("%w: no time steps to sweep", field.ErrConfiguration)
	}

	results := make([]SweepResult, len(dts))

	var wg sync.WaitGroup
	for i, dt := range dts {
		wg.Add(1)
		go func(idx int, dt float64) {
			defer wg.Done()
			results[idx] = e.runWithDt(ctx, dt)
		}(i, dt)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			e.logger.Warn("sweep run failed", "dt", r.Dt, "err", r.Err)
		}
	}
	return results, nil
}

func (e *Experiment) runWithDt(ctx context.Context, dt float64) SweepResult {
	cfg := *e.cfg
	cfg.Dt = dt
	if err := cfg.Validate(); err != nil {
		return SweepResult{Dt: dt, Err: err}
	}

	model, err := e.registry.GetModel(e.grid, &cfg)
	if err != nil {
		return SweepResult{Dt: dt, Err: err}
	}

	s := sim.New(model, integrators.NewFTCS())
	for _, m := range e.registry.DefaultMetrics() {
		s.AddMetric(m)
	}

	simCfg := e.SimConfig()
	simCfg.Dt = dt
	res, err := s.Run(ctx, e.grid, e.initial, simCfg)
	return SweepResult{Dt: dt, Result: res, Err: err}
}
