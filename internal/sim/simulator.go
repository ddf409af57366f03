package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/integrators"
)

type Simulator struct {
	model      CoefficientModel
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(model CoefficientModel, integrator Integrator) *Simulator {
	return &Simulator{
		model:      model,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates x0 from t=0 to cfg.TFinal. On any error no result is
// returned.
func (s *Simulator) Run(ctx context.Context, g *field.Grid, x0 field.Profile, cfg Config) (*Result, error) {
	sess, err := s.Start(g, x0, cfg)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		more, err := sess.Next()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	return sess.Result(), nil
}

// Start validates the inputs and returns a session positioned at t=0.
func (s *Simulator) Start(g *field.Grid, x0 field.Profile, cfg Config) (*Session, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", field.ErrInvalidInput)
	}
	if err := g.Check(x0); err != nil {
		return nil, err
	}
	if !x0.IsValid() {
		return nil, fmt.Errorf("%w: initial profile", field.ErrInvalidState)
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(g, x0, 0)
	}

	sess := &Session{
		sim:     s,
		grid:    g,
		cfg:     cfg,
		initial: x0.Clone(),
		x:       x0.Clone(),
	}
	if cfg.SnapshotEvery > 0 {
		sess.snapshots = append(sess.snapshots, Snapshot{Step: 0, Time: 0, Profile: x0.Clone()})
	}
	return sess, nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", field.ErrConfiguration, cfg.Dt)
	}
	if math.IsNaN(cfg.TFinal) || math.IsInf(cfg.TFinal, 0) {
		return fmt.Errorf("%w: end time must be finite, got %g", field.ErrConfiguration, cfg.TFinal)
	}
	if cfg.SnapshotEvery < 0 {
		return fmt.Errorf("%w: snapshot interval must not be negative, got %d", field.ErrConfiguration, cfg.SnapshotEvery)
	}
	return nil
}

// Session is a run in progress. Each call to Next performs one step.
type Session struct {
	sim       *Simulator
	grid      *field.Grid
	cfg       Config
	initial   field.Profile
	x         field.Profile
	d         field.Profile
	t         float64
	step      int
	done      bool
	snapshots []Snapshot
}

// Next advances the clock by dt and, while the clock has not passed the end
// time, evaluates the coefficient, checks stability and applies one update.
// It reports false once the run is complete. The clock is advanced before the
// comparison, so a trailing interval shorter than dt is never integrated.
func (ss *Session) Next() (bool, error) {
	if ss.done {
		return false, nil
	}

	t := ss.t + ss.cfg.Dt
	if t > ss.cfg.TFinal {
		ss.done = true
		return false, nil
	}

	s := ss.sim
	d := s.model.Evaluate(ss.grid, ss.x, t)
	if err := ss.grid.Check(d); err != nil {
		ss.done = true
		return false, fmt.Errorf("%s coefficient: %w", s.model.Name(), err)
	}

	if err := integrators.CheckStability(ss.cfg.Dt, ss.grid.Dz(), d.Max()); err != nil {
		ss.done = true
		if se, ok := err.(*field.StabilityError); ok {
			se.Step = ss.step + 1
			se.Time = t
		}
		return false, err
	}

	next := s.integrator.Step(ss.grid, ss.x, d, ss.cfg.Dt)
	if ss.cfg.ValidateState && !next.IsValid() {
		ss.done = true
		return false, fmt.Errorf("%w: step %d (t=%g)", field.ErrInvalidState, ss.step+1, t)
	}

	ss.x, ss.d, ss.t = next, d, t
	ss.step++

	for _, m := range s.metrics {
		m.Observe(ss.grid, ss.x, ss.t)
	}
	for _, o := range s.observers {
		o.OnStep(ss.step, ss.t, ss.x, ss.d)
	}
	if ss.cfg.SnapshotEvery > 0 && ss.step%ss.cfg.SnapshotEvery == 0 {
		ss.snapshots = append(ss.snapshots, Snapshot{Step: ss.step, Time: ss.t, Profile: ss.x.Clone()})
	}

	return true, nil
}

func (ss *Session) Done() bool             { return ss.done }
func (ss *Session) Steps() int             { return ss.step }
func (ss *Session) Time() float64          { return ss.t }
func (ss *Session) Grid() *field.Grid      { return ss.grid }
func (ss *Session) Profile() field.Profile { return ss.x.Clone() }
func (ss *Session) Initial() field.Profile { return ss.initial.Clone() }
func (ss *Session) Config() Config         { return ss.cfg }

// Coefficient is the profile used by the latest step, nil before the first.
func (ss *Session) Coefficient() field.Profile {
	if ss.d == nil {
		return nil
	}
	return ss.d.Clone()
}

// Result collects the current state and metric values.
func (ss *Session) Result() *Result {
	res := &Result{
		Initial:     ss.initial.Clone(),
		Final:       ss.x.Clone(),
		Coefficient: ss.Coefficient(),
		Steps:       ss.step,
		Time:        ss.t,
		Snapshots:   ss.snapshots,
		Metrics:     make(map[string]float64),
	}
	for _, m := range ss.sim.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}

// StepCount is the number of updates a run with this configuration performs
// when it is not interrupted.
func StepCount(cfg Config) int {
	n := 0
	for t := cfg.Dt; t <= cfg.TFinal; t += cfg.Dt {
		n++
	}
	return n
}
