package metrics

import (
	"math"

	"github.com/ryanmcf10/three-body-simulation/internal/physics"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

// EnergyDrift tracks the largest relative change of total energy since
// the first observed snapshot.
type EnergyDrift struct {
	model         *physics.ThreeBody
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s sim.Snapshot) {
	if e.model == nil {
		model, err := physics.NewThreeBody(s.Masses())
		if err != nil {
			return
		}
		e.model = model
	}

	energy := e.model.Energy(s.State())
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.model = nil
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumResidual tracks the largest |P| seen. After centre-of-mass
// correction it should stay at rounding level.
type MomentumResidual struct {
	max float64
}

func NewMomentumResidual() *MomentumResidual {
	return &MomentumResidual{}
}

func (m *MomentumResidual) Name() string { return "momentum_residual" }

func (m *MomentumResidual) Observe(s sim.Snapshot) {
	var p r3.Vec
	for _, b := range s.Bodies {
		p = r3.Add(p, r3.Scale(b.Mass, b.Velocity))
	}
	m.max = math.Max(m.max, r3.Norm(p))
}

func (m *MomentumResidual) Value() float64 { return m.max }

func (m *MomentumResidual) Reset() { m.max = 0 }
