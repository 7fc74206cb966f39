package integrators

import "github.com/ryanmcf10/three-body-simulation/internal/dynamo"

// Euler is the explicit first-order method, kept as a baseline for
// integrator comparisons.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys dynamo.System, y dynamo.State, dt float64) (dynamo.State, error) {
	dy, err := sys.Derive(y)
	if err != nil {
		return y, err
	}
	return y.Add(dy.Scale(dt)), nil
}
