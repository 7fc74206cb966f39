package metrics

import (
	"math"

	"github.com/ryanmcf10/three-body-simulation/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

// MinSeparation records the closest approach between any two bodies.
type MinSeparation struct {
	min float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return "min_separation" }

func (m *MinSeparation) Observe(s sim.Snapshot) {
	for i := 0; i < len(s.Bodies); i++ {
		for j := i + 1; j < len(s.Bodies); j++ {
			d := r3.Norm(r3.Sub(s.Bodies[i].Position, s.Bodies[j].Position))
			m.min = math.Min(m.min, d)
		}
	}
}

func (m *MinSeparation) Value() float64 { return m.min }

func (m *MinSeparation) Reset() { m.min = math.Inf(1) }

// Default returns the metrics attached to every recorded run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(),
		NewMomentumResidual(),
		NewMinSeparation(),
	}
}
