package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// Simulation owns the three bodies of one run. It is not safe for
// concurrent use; a stopped or failed run is restarted by calling New.
type Simulation struct {
	model      *physics.ThreeBody
	integrator dynamo.Integrator
	cfg        Config
	logger     *slog.Logger

	y      dynamo.State
	radii  [dynamo.NumBodies]float64
	colors [dynamo.NumBodies][3]float64
	step   int
	t      float64
	err    error

	metrics   []Metric
	observers []Observer
}

// New takes bodies in placement-layer units, converts them to internal
// units, removes the centre-of-mass velocity and derives display radii.
func New(initial [dynamo.NumBodies]body.Body, integrator dynamo.Integrator, cfg Config) (*Simulation, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	var masses [dynamo.NumBodies]float64
	for i, b := range initial {
		if err := b.Validate(); err != nil {
			return nil, &dynamo.BodyError{Index: i, Err: err}
		}
		masses[i] = b.Mass
	}

	model, err := physics.NewThreeBody(masses)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Simulation{
		model:      model,
		integrator: integrator,
		cfg:        cfg,
		logger:     logger,
	}

	for i, b := range initial {
		in := cfg.Units.ToInternal(b)
		s.y[2*i] = in.Position
		s.y[2*i+1] = in.Velocity
		s.colors[i] = in.Color.Normalized()
		s.radii[i] = body.Radius(in.Mass)
	}
	if !s.y.IsValid() {
		return nil, dynamo.ErrInvalidState
	}

	vcom := model.CenterOfMassVelocity(s.y)
	for i := 0; i < dynamo.NumBodies; i++ {
		s.y[2*i+1] = r3.Sub(s.y[2*i+1], vcom)
	}

	s.logger.Debug("simulation initialised",
		"integrator", integrator.Name(),
		"dt", cfg.Dt,
		"vcom_x", vcom.X,
		"vcom_y", vcom.Y,
		"radii", s.radii,
	)

	return s, nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w, got %v", dynamo.ErrInvalidTimestep, cfg.Dt)
	}
	if cfg.Rate < 0 || cfg.Rate > MaxRate {
		return fmt.Errorf("rate must be in [0, %d], got %d", MaxRate, cfg.Rate)
	}
	if cfg.MaxSteps < 0 {
		return fmt.Errorf("max steps must not be negative, got %d", cfg.MaxSteps)
	}
	return cfg.Units.Validate()
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Model() *physics.ThreeBody { return s.model }

// Config returns the configuration the run was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Err returns the error that stopped the run, if any.
func (s *Simulation) Err() error { return s.err }

// Step advances the run by one fixed step and writes the result back
// into the bodies. After a failure every call returns the same error.
func (s *Simulation) Step() error {
	if s.err != nil {
		return s.err
	}

	next, err := s.integrator.Step(s.model, s.y, s.cfg.Dt)
	if err == nil && !next.IsValid() {
		err = dynamo.ErrInvalidState
	}
	if err != nil {
		s.err = &dynamo.StepError{Step: s.step, Time: s.t, Wrapped: err}
		s.logger.Error("simulation stopped", "err", s.err, "snapshot", s.Snapshot())
		return s.err
	}

	s.y = next
	s.step++
	s.t += s.cfg.Dt
	return nil
}

// Snapshot copies the current state for a renderer.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{Step: s.step, Time: s.t}
	masses := s.model.Masses()
	for i := range snap.Bodies {
		snap.Bodies[i] = BodyView{
			Position: s.y.Position(i),
			Velocity: s.y.Velocity(i),
			Mass:     masses[i],
			Radius:   s.radii[i],
			Color:    s.colors[i],
		}
	}
	return snap
}

// Run steps until ctx is cancelled, MaxSteps is reached or a step fails.
// Steps are paced at cfg.Rate per second. Metrics and observers see the
// initial snapshot and every snapshot after it.
func (s *Simulation) Run(ctx context.Context) error {
	for _, m := range s.metrics {
		m.Reset()
	}
	s.notify(s.Snapshot())

	var tick <-chan time.Time
	if s.cfg.Rate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(s.cfg.Rate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for s.cfg.MaxSteps == 0 || s.step < s.cfg.MaxSteps {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if err := s.Step(); err != nil {
			return err
		}
		s.notify(s.Snapshot())
	}

	s.logger.Debug("simulation finished", "steps", s.step, "t", s.t)
	return nil
}

// Metrics returns the current metric values by name.
func (s *Simulation) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Simulation) notify(snap Snapshot) {
	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, o := range s.observers {
		o.OnStep(snap)
	}
}
