package physics

import (
	"math"

	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// ThreeBody implements the gravitational three-body problem with G = 1.
// State: [p1, v1, p2, v2, p3, v3]. There is no softening: coincident
// bodies produce a *dynamo.SeparationError.
type ThreeBody struct {
	masses [dynamo.NumBodies]float64
}

// NewThreeBody returns the model for the given masses. Every mass must be
// positive.
func NewThreeBody(masses [dynamo.NumBodies]float64) (*ThreeBody, error) {
	for i, m := range masses {
		if !(m > 0) || math.IsInf(m, 0) {
			return nil, &dynamo.BodyError{Index: i, Err: dynamo.ErrInvalidMass}
		}
	}
	return &ThreeBody{masses: masses}, nil
}

func (t *ThreeBody) Masses() [dynamo.NumBodies]float64 { return t.masses }

// Derive computes dy/dt. Position derivatives are the velocities copied
// through; velocity derivatives are the pairwise inverse-square
// accelerations.
func (t *ThreeBody) Derive(y dynamo.State) (dynamo.State, error) {
	m1, m2, m3 := t.masses[0], t.masses[1], t.masses[2]

	r12c, err := inverseCube(y[0], y[2], 0, 1)
	if err != nil {
		return dynamo.State{}, err
	}
	r23c, err := inverseCube(y[2], y[4], 1, 2)
	if err != nil {
		return dynamo.State{}, err
	}
	r31c, err := inverseCube(y[4], y[0], 2, 0)
	if err != nil {
		return dynamo.State{}, err
	}

	return dynamo.State{
		y[1],
		r3.Add(r3.Scale(-m2, r12c), r3.Scale(m3, r31c)),
		y[3],
		r3.Add(r3.Scale(-m3, r23c), r3.Scale(m1, r12c)),
		y[5],
		r3.Add(r3.Scale(-m1, r31c), r3.Scale(m2, r23c)),
	}, nil
}

// inverseCube returns (a-b)/|a-b|^3.
func inverseCube(a, b r3.Vec, i, j int) (r3.Vec, error) {
	r := r3.Sub(a, b)
	mag := r3.Norm(r)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		if i > j {
			i, j = j, i
		}
		return r3.Vec{}, &dynamo.SeparationError{I: i, J: j}
	}
	return r3.Scale(1/(mag*mag*mag), r), nil
}

// Energy returns kinetic plus potential energy.
func (t *ThreeBody) Energy(y dynamo.State) float64 {
	ke := 0.0
	pe := 0.0
	for i := 0; i < dynamo.NumBodies; i++ {
		ke += 0.5 * t.masses[i] * r3.Norm2(y.Velocity(i))
		for j := i + 1; j < dynamo.NumBodies; j++ {
			r := r3.Norm(r3.Sub(y.Position(j), y.Position(i)))
			pe -= t.masses[i] * t.masses[j] / r
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum.
func (t *ThreeBody) Momentum(y dynamo.State) r3.Vec {
	var p r3.Vec
	for i := 0; i < dynamo.NumBodies; i++ {
		p = r3.Add(p, r3.Scale(t.masses[i], y.Velocity(i)))
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (t *ThreeBody) AngularMomentum(y dynamo.State) r3.Vec {
	var l r3.Vec
	for i := 0; i < dynamo.NumBodies; i++ {
		l = r3.Add(l, r3.Scale(t.masses[i], r3.Cross(y.Position(i), y.Velocity(i))))
	}
	return l
}

// CenterOfMassVelocity returns (m1*v1 + m2*v2 + m3*v3) / (m1+m2+m3).
func (t *ThreeBody) CenterOfMassVelocity(y dynamo.State) r3.Vec {
	total := t.masses[0] + t.masses[1] + t.masses[2]
	return r3.Scale(1/total, t.Momentum(y))
}

// Separations returns |p1-p2|, |p2-p3| and |p3-p1|.
func (t *ThreeBody) Separations(y dynamo.State) [dynamo.NumBodies]float64 {
	return [dynamo.NumBodies]float64{
		r3.Norm(r3.Sub(y[0], y[2])),
		r3.Norm(r3.Sub(y[2], y[4])),
		r3.Norm(r3.Sub(y[4], y[0])),
	}
}
