package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/gdesim/internal/config"
	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/integrators"
	"github.com/san-kum/gdesim/internal/sim"
	"github.com/san-kum/gdesim/internal/storage"
)

// Experiment ties a run configuration to its input table, mesh and
// coefficient model.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	logger    *slog.Logger
	grid      *field.Grid
	initial   field.Profile
	model     sim.CoefficientModel
	simulator *sim.Simulator
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Setup validates the configuration, reads the input table, builds the mesh
// and the coefficient model. An unknown mode is reported before any file is
// read.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	if !e.registry.HasModel(e.cfg.Mode) {
		return unknownMode(e.cfg.Mode)
	}

	z, x, err := storage.ReadTable(e.cfg.Input)
	if err != nil {
		return err
	}
	g, err := field.NewGrid(z)
	if err != nil {
		return fmt.Errorf("%s: %w", e.cfg.Input, err)
	}
	e.logger.Debug("input loaded", "path", e.cfg.Input, "points", g.Len(), "dz", g.Dz())

	model, err := e.registry.GetModel(g, e.cfg)
	if err != nil {
		return err
	}
	e.logger.Debug("coefficient model ready", "mode", model.Name())

	e.grid = g
	e.initial = field.Profile(x)
	e.model = model
	e.simulator = sim.New(model, integrators.NewFTCS())
	for _, m := range e.registry.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("%w: experiment not set up", field.ErrConfiguration)
	}

	cfg := e.SimConfig()
	e.logger.Info("run started",
		"mode", e.cfg.Mode, "dt", cfg.Dt, "time", cfg.TFinal, "steps", sim.StepCount(cfg))

	res, err := e.simulator.Run(ctx, e.grid, e.initial, cfg)
	if err != nil {
		e.logger.Debug("run failed", "err", err)
		return nil, err
	}
	e.logger.Info("run finished", "steps", res.Steps, "time", res.Time)
	return res, nil
}

// Start opens an incremental session on the configured run.
func (e *Experiment) Start() (*sim.Session, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("%w: experiment not set up", field.ErrConfiguration)
	}
	return e.simulator.Start(e.grid, e.initial, e.SimConfig())
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:            e.cfg.Dt,
		TFinal:        e.cfg.Time,
		ValidateState: true,
		SnapshotEvery: e.cfg.SnapshotEvery,
	}
}

func (e *Experiment) Config() *config.Config      { return e.cfg }
func (e *Experiment) Grid() *field.Grid           { return e.grid }
func (e *Experiment) Initial() field.Profile      { return e.initial.Clone() }
func (e *Experiment) Model() sim.CoefficientModel { return e.model }

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
