package sim

import (
	"log/slog"
	"time"

	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultDt   = 0.1
	DefaultRate = 100
	// MaxRate is the fastest pace a ticker can express: one step per nanosecond.
	MaxRate = int(time.Second)
)

type Config struct {
	Dt float64
	// Rate is the target number of steps per second; 0 runs unpaced.
	Rate int
	// MaxSteps bounds Run; 0 runs until the context is cancelled.
	MaxSteps int
	Units    units.Converter
	Logger   *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Dt:    DefaultDt,
		Rate:  DefaultRate,
		Units: units.Default(),
	}
}

// BodyView is the read-only per-body data handed to renderers.
type BodyView struct {
	Position r3.Vec
	Velocity r3.Vec
	Mass     float64
	Radius   float64
	Color    [3]float64
}

// Snapshot is a consistent copy of the simulation after a step.
type Snapshot struct {
	Step   int
	Time   float64
	Bodies [dynamo.NumBodies]BodyView
}

// State rebuilds the integration vector from the snapshot.
func (s Snapshot) State() dynamo.State {
	var y dynamo.State
	for i, b := range s.Bodies {
		y[2*i] = b.Position
		y[2*i+1] = b.Velocity
	}
	return y
}

// Masses returns the three masses.
func (s Snapshot) Masses() [dynamo.NumBodies]float64 {
	var m [dynamo.NumBodies]float64
	for i, b := range s.Bodies {
		m[i] = b.Mass
	}
	return m
}

// LogValue implements slog.LogValuer.
func (s Snapshot) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("step", s.Step),
		slog.Float64("t", s.Time),
	}
	for i, b := range s.Bodies {
		attrs = append(attrs, slog.Group(bodyKey(i),
			slog.Float64("x", b.Position.X),
			slog.Float64("y", b.Position.Y),
			slog.Float64("vx", b.Velocity.X),
			slog.Float64("vy", b.Velocity.Y),
		))
	}
	return slog.GroupValue(attrs...)
}

func bodyKey(i int) string {
	return [dynamo.NumBodies]string{"body1", "body2", "body3"}[i]
}

// Observer receives every snapshot produced by Run.
type Observer interface {
	OnStep(s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Snapshot)

func (f ObserverFunc) OnStep(s Snapshot) { f(s) }

// Metric summarises a run.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Result is what a Recorder collects.
type Result struct {
	States  []dynamo.State
	Times   []float64
	Masses  [dynamo.NumBodies]float64
	Colors  [dynamo.NumBodies][3]float64
	Metrics map[string]float64
	Err     error
}
