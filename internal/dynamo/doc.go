// Package dynamo provides the core primitives shared by the three-body
// simulation.
//
// The package defines the state representation and the interfaces the
// integrator and the force model meet at:
//
//   - [State]: the six-vector [pos1, vel1, pos2, vel2, pos3, vel3]
//   - [System]: a derivative model (dy/dt = f(y))
//   - [Integrator]: a fixed-step numerical integrator
//
// # Errors
//
// Physics failures are reported with sentinel errors ([ErrInvalidMass],
// [ErrSingularSeparation], [ErrIncompleteInitialConditions]) wrapped in
// typed errors that name the bodies involved. Use [errors.Is] and
// [errors.As] to inspect them.
package dynamo
