// Package physics provides the gravitational force model.
//
// [ThreeBody] implements [dynamo.System] for exactly three point masses
// with the gravitational constant folded into the unit convention (G = 1).
// It also exposes the conserved quantities used to check an integration:
//
//	model, _ := physics.NewThreeBody([3]float64{1, 1, 1})
//	e0 := model.Energy(y)
//	p0 := model.Momentum(y)
package physics
