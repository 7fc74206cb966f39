package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/integrators"
	"github.com/ryanmcf10/three-body-simulation/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// oscillator rotates each position/velocity pair in phase space, so
// separations neither grow nor shrink.
type oscillator struct{}

func (oscillator) Derive(y dynamo.State) (dynamo.State, error) {
	var d dynamo.State
	for i := 0; i < dynamo.NumBodies; i++ {
		d[2*i] = y[2*i+1]
		d[2*i+1] = r3.Scale(-1, y[2*i])
	}
	return d, nil
}

func TestLyapunovOscillatorIsNotChaotic(t *testing.T) {
	y0 := dynamo.State{{X: 1}, {}, {Y: 1}, {}, {X: -1}, {}}
	lambda, err := LyapunovExponent(oscillator{}, integrators.NewRK4(), y0, 0.01, 1000, 1e-8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(lambda) > 1e-3 {
		t.Errorf("lambda = %v, want ~0", lambda)
	}
}

func TestLyapunovThreeBodyIsFinite(t *testing.T) {
	model, err := physics.NewThreeBody([3]float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	y0 := dynamo.State{
		{X: -1}, {Y: -0.3},
		{X: 1}, {Y: 0.3},
		{Y: 2}, {X: 0.1},
	}
	lambda, err := LyapunovExponent(model, integrators.NewRK4(), y0, 0.01, 500, 1e-8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		t.Errorf("lambda = %v", lambda)
	}
}

func TestLyapunovRejectsBadInput(t *testing.T) {
	y0 := dynamo.State{{X: 1}}
	if _, err := LyapunovExponent(oscillator{}, integrators.NewRK4(), y0, 0.01, 10, 0); !errors.Is(err, ErrNoPerturbation) {
		t.Errorf("expected ErrNoPerturbation, got %v", err)
	}
	if _, err := LyapunovExponent(oscillator{}, integrators.NewRK4(), y0, 0, 10, 1e-8); !errors.Is(err, dynamo.ErrInvalidTimestep) {
		t.Errorf("expected ErrInvalidTimestep, got %v", err)
	}
}

func TestLyapunovPropagatesSingularity(t *testing.T) {
	model, err := physics.NewThreeBody([3]float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	y0 := dynamo.State{{X: 1}, {}, {X: 1}, {}, {X: 5}, {}}
	_, err = LyapunovExponent(model, integrators.NewRK4(), y0, 0.01, 10, 1e-8)
	if !errors.Is(err, dynamo.ErrSingularSeparation) {
		t.Errorf("expected singular separation, got %v", err)
	}
}
