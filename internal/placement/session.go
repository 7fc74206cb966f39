package placement

import (
	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// Session places exactly three bodies, one after another.
type Session struct {
	units      units.Converter
	colors     [dynamo.NumBodies]body.Color
	placements []*Placement
}

func NewSession(conv units.Converter, colors [dynamo.NumBodies]body.Color) *Session {
	s := &Session{units: conv, colors: colors}
	s.placements = []*Placement{New(conv, colors[0])}
	return s
}

// Current returns the body being placed, or nil once all three are ready.
func (s *Session) Current() *Placement {
	last := s.placements[len(s.placements)-1]
	if last.IsReady() {
		return nil
	}
	return last
}

// Index is the 0-based index of the body being placed.
func (s *Session) Index() int {
	return len(s.placements) - 1
}

// Placements returns the bodies started so far, in placement order.
func (s *Session) Placements() []*Placement {
	out := make([]*Placement, len(s.placements))
	copy(out, s.placements)
	return out
}

// Ready reports whether all three bodies are fully placed.
func (s *Session) Ready() bool {
	return len(s.placements) == dynamo.NumBodies && s.placements[dynamo.NumBodies-1].IsReady()
}

// Track forwards a pointer position to the current body.
func (s *Session) Track(pointer r3.Vec) {
	if p := s.Current(); p != nil {
		p.Track(pointer)
	}
}

// Commit locks the current stage; finishing a body starts the next one.
func (s *Session) Commit() error {
	p := s.Current()
	if p == nil {
		return dynamo.ErrOutOfOrder
	}
	if err := p.Commit(); err != nil {
		return err
	}
	s.advance()
	return nil
}

// Place runs the three actions for the current body in order.
func (s *Session) Place(pos r3.Vec, sizeMultiplier float64, velocityMultiplier r3.Vec) error {
	p := s.Current()
	if p == nil {
		return dynamo.ErrOutOfOrder
	}
	idx := s.Index()
	if err := p.SetPosition(pos); err != nil {
		return &dynamo.BodyError{Index: idx, Err: err}
	}
	if err := p.SetSizeMultiplier(sizeMultiplier); err != nil {
		return &dynamo.BodyError{Index: idx, Err: err}
	}
	if err := p.SetVelocityMultiplier(velocityMultiplier); err != nil {
		return &dynamo.BodyError{Index: idx, Err: err}
	}
	s.advance()
	return nil
}

// Bodies hands off the placed bodies. It fails, naming the first
// unready body, until every body is ready.
func (s *Session) Bodies() ([dynamo.NumBodies]body.Body, error) {
	var out [dynamo.NumBodies]body.Body
	for i := 0; i < dynamo.NumBodies; i++ {
		if i >= len(s.placements) || !s.placements[i].IsReady() {
			return out, &dynamo.BodyError{Index: i, Err: dynamo.ErrIncompleteInitialConditions}
		}
		out[i] = s.placements[i].Body()
	}
	return out, nil
}

func (s *Session) advance() {
	last := s.placements[len(s.placements)-1]
	if last.IsReady() && len(s.placements) < dynamo.NumBodies {
		s.placements = append(s.placements, New(s.units, s.colors[len(s.placements)]))
	}
}
