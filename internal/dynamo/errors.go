package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidMass indicates a body with zero, negative or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: mass must be positive")

	// ErrSingularSeparation indicates two bodies at the same position.
	ErrSingularSeparation = errors.New("dynamo: singular separation (bodies coincide)")

	// ErrIncompleteInitialConditions indicates a start before all bodies were placed.
	ErrIncompleteInitialConditions = errors.New("dynamo: initial conditions incomplete")

	// ErrOutOfOrder indicates a placement action issued out of sequence.
	ErrOutOfOrder = errors.New("dynamo: placement action out of order")

	// ErrInvalidTimestep indicates a non-positive or non-finite dt.
	ErrInvalidTimestep = errors.New("dynamo: timestep must be positive")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// BodyError attaches a body index to an error. Index is 0-based; the
// message uses the 1-based body number.
type BodyError struct {
	Index int
	Err   error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %d: %v", e.Index+1, e.Err)
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

// SeparationError reports the pair of bodies whose separation is zero.
type SeparationError struct {
	I, J int
}

func (e *SeparationError) Error() string {
	return fmt.Sprintf("%v: body %d and body %d", ErrSingularSeparation, e.I+1, e.J+1)
}

func (e *SeparationError) Unwrap() error {
	return ErrSingularSeparation
}

// StepError wraps an error with simulation context.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
