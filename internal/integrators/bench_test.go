package integrators

import (
	"testing"

	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

func benchState() dynamo.State {
	return dynamo.State{
		r3.Vec{X: -1}, r3.Vec{X: 0.347, Y: 0.532},
		r3.Vec{X: 1}, r3.Vec{X: 0.347, Y: 0.532},
		r3.Vec{}, r3.Vec{X: -0.694, Y: -1.064},
	}
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	model, _ := physics.NewThreeBody([3]float64{1, 1, 1})
	y := benchState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _ = integrator.Step(model, y, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	model, _ := physics.NewThreeBody([3]float64{1, 1, 1})
	y := benchState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _ = integrator.Step(model, y, 0.001)
	}
}
