package integrators

import "github.com/ryanmcf10/three-body-simulation/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method:
//
//	k1 = dt*f(y)
//	k2 = dt*f(y + k1/2)
//	k3 = dt*f(y + k2/2)
//	k4 = dt*f(y + k3)
//	y' = y + k1/6 + k2/3 + k3/3 + k4/6
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(sys dynamo.System, y dynamo.State, dt float64) (dynamo.State, error) {
	f1, err := sys.Derive(y)
	if err != nil {
		return y, err
	}
	k1 := f1.Scale(dt)

	f2, err := sys.Derive(y.Add(k1.Scale(0.5)))
	if err != nil {
		return y, err
	}
	k2 := f2.Scale(dt)

	f3, err := sys.Derive(y.Add(k2.Scale(0.5)))
	if err != nil {
		return y, err
	}
	k3 := f3.Scale(dt)

	f4, err := sys.Derive(y.Add(k3))
	if err != nil {
		return y, err
	}
	k4 := f4.Scale(dt)

	dy := k1.Scale(1.0 / 6).Add(k2.Scale(1.0 / 3)).Add(k3.Scale(1.0 / 3)).Add(k4.Scale(1.0 / 6))
	return y.Add(dy), nil
}
