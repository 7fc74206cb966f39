package dynamo

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"zeros", State{}, true},
		{"normal", State{{X: 1, Y: 2}, {X: 3, Z: -1}}, true},
		{"with NaN", State{{X: 1, Y: math.NaN()}}, false},
		{"with +Inf", State{4: {Z: math.Inf(1)}}, false},
		{"with -Inf", State{5: {X: math.Inf(-1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{{X: 1, Y: 2, Z: 3}, 5: {X: -1}}
	b := State{{X: 4, Y: 5, Z: 6}, 5: {X: 1}}

	sum := a.Add(b)
	if sum[0] != (r3.Vec{X: 5, Y: 7, Z: 9}) || sum[5] != (r3.Vec{}) {
		t.Errorf("Add failed: got %v", sum)
	}

	scaled := a.Scale(2)
	if scaled[0] != (r3.Vec{X: 2, Y: 4, Z: 6}) || scaled[5] != (r3.Vec{X: -2}) {
		t.Errorf("Scale failed: got %v", scaled)
	}
}

func TestState_Accessors(t *testing.T) {
	var s State
	for i := 0; i < NumBodies; i++ {
		s[2*i] = r3.Vec{X: float64(i)}
		s[2*i+1] = r3.Vec{Y: float64(i)}
	}
	for i := 0; i < NumBodies; i++ {
		if s.Position(i).X != float64(i) || s.Velocity(i).Y != float64(i) {
			t.Errorf("body %d: position %v velocity %v", i, s.Position(i), s.Velocity(i))
		}
	}

	flat := s.Flatten()
	if len(flat) != 18 {
		t.Fatalf("expected 18 scalars, got %d", len(flat))
	}
	if flat[12] != 2 || flat[16] != 2 {
		t.Errorf("unexpected flatten layout: %v", flat)
	}
}

func TestErrorMessages(t *testing.T) {
	sep := &SeparationError{I: 0, J: 2}
	if !errors.Is(sep, ErrSingularSeparation) {
		t.Error("SeparationError should wrap ErrSingularSeparation")
	}
	if got, want := sep.Error(), "dynamo: singular separation (bodies coincide): body 1 and body 3"; got != want {
		t.Errorf("SeparationError.Error() = %q, want %q", got, want)
	}

	be := &BodyError{Index: 1, Err: ErrInvalidMass}
	if got, want := be.Error(), "body 2: dynamo: mass must be positive"; got != want {
		t.Errorf("BodyError.Error() = %q, want %q", got, want)
	}

	se := &StepError{Step: 150, Time: 15, Wrapped: sep}
	expected := "step 150 (t=15.0000): " + sep.Error()
	if se.Error() != expected {
		t.Errorf("StepError.Error() = %q, want %q", se.Error(), expected)
	}
	var target *SeparationError
	if !errors.As(se, &target) || target.J != 2 {
		t.Error("StepError should unwrap to the SeparationError")
	}
}
