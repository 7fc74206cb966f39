package analysis

import (
	"errors"
	"math"

	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoPerturbation is returned for a non-positive initial offset.
var ErrNoPerturbation = errors.New("analysis: perturbation must be positive")

// distance is the phase-space separation of two states.
func distance(a, b dynamo.State) float64 {
	sum := 0.0
	for i := range a {
		sum += r3.Norm2(r3.Sub(b[i], a[i]))
	}
	return math.Sqrt(sum)
}

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Offset body 1 along x by perturbation
// 2. Step both trajectories and measure their divergence
// 3. Pull the shadow back to distance perturbation after every step
// 4. λ ≈ Σ ln(d/d0) / t
func LyapunovExponent(sys dynamo.System, integ dynamo.Integrator, y0 dynamo.State, dt float64, steps int, perturbation float64) (float64, error) {
	if !(perturbation > 0) {
		return 0, ErrNoPerturbation
	}
	if !(dt > 0) {
		return 0, dynamo.ErrInvalidTimestep
	}
	if steps <= 0 {
		return 0, nil
	}

	x := y0
	xp := y0
	xp[0].X += perturbation

	sumLog := 0.0
	for k := 0; k < steps; k++ {
		var err error
		if x, err = integ.Step(sys, x, dt); err != nil {
			return 0, &dynamo.StepError{Step: k, Time: float64(k) * dt, Wrapped: err}
		}
		if xp, err = integ.Step(sys, xp, dt); err != nil {
			return 0, &dynamo.StepError{Step: k, Time: float64(k) * dt, Wrapped: err}
		}

		sep := distance(x, xp)
		if sep == 0 || math.IsInf(sep, 0) || math.IsNaN(sep) {
			return 0, &dynamo.StepError{Step: k, Time: float64(k) * dt, Wrapped: dynamo.ErrInvalidState}
		}
		sumLog += math.Log(sep / perturbation)

		// Renormalize to prevent overflow
		xp = x.Add(xp.Add(x.Scale(-1)).Scale(perturbation / sep))
	}

	return sumLog / (float64(steps) * dt), nil
}
