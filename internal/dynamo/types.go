package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NumBodies is fixed; the model is not a general N-body solver.
const NumBodies = 3

// State is the integration vector [pos1, vel1, pos2, vel2, pos3, vel3].
type State [2 * NumBodies]r3.Vec

// Position returns the position of body i.
func (s State) Position(i int) r3.Vec { return s[2*i] }

// Velocity returns the velocity of body i.
func (s State) Velocity(i int) r3.Vec { return s[2*i+1] }

func (s State) Add(other State) State {
	var result State
	for i := range s {
		result[i] = r3.Add(s[i], other[i])
	}
	return result
}

func (s State) Scale(factor float64) State {
	var result State
	for i := range s {
		result[i] = r3.Scale(factor, s[i])
	}
	return result
}

func (s State) IsValid() bool {
	for _, v := range s {
		for _, c := range [3]float64{v.X, v.Y, v.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}

// Flatten returns the state as 18 scalars in vector order.
func (s State) Flatten() []float64 {
	out := make([]float64, 0, len(s)*3)
	for _, v := range s {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

// System computes the time derivative of a state.
type System interface {
	Derive(y State) (State, error)
}

// Integrator advances a state by one fixed step. Implementations hold no
// state between calls.
type Integrator interface {
	Name() string
	Step(sys System, y State, dt float64) (State, error)
}
