// Package placement captures initial conditions for the three bodies.
//
// Each body goes through three actions in a fixed order: set position,
// set size, set velocity. A pointer-driven front end calls Track while
// the pointer moves and Commit on a click; scripted front ends (config
// files, tests) call the Set* methods directly.
package placement

import (
	"fmt"
	"math/rand"

	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// Stage is the next action a Placement expects.
type Stage int

const (
	StagePosition Stage = iota
	StageSize
	StageVelocity
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StagePosition:
		return "position"
	case StageSize:
		return "size"
	case StageVelocity:
		return "velocity"
	case StageReady:
		return "ready"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Prompt is the instruction shown to the user for the stage.
func (s Stage) Prompt() string {
	switch s {
	case StagePosition:
		return "Set the position of the planet."
	case StageSize:
		return "Set the size of the planet."
	case StageVelocity:
		return "Set the velocity of the planet."
	}
	return "Press [SPACE] to start the simulation"
}

// Placement is one body under construction, in placement-layer units:
// pixel position, mass from the size multiplier, velocity from the
// velocity multiplier.
type Placement struct {
	units  units.Converter
	stage  Stage
	body   body.Body
	radius int
}

// New returns a placement that starts at mass 10 and radius 15.
func New(conv units.Converter, color body.Color) *Placement {
	return &Placement{
		units:  conv,
		body:   body.Body{Mass: conv.MaxMass, Color: color},
		radius: 15,
	}
}

func (p *Placement) Stage() Stage { return p.stage }

// IsReady reports whether position, size and velocity were all committed.
func (p *Placement) IsReady() bool { return p.stage == StageReady }

// Body returns the body as placed so far.
func (p *Placement) Body() body.Body { return p.body }

// DisplayRadius is the pixel radius used while placing.
func (p *Placement) DisplayRadius() int { return p.radius }

// Track previews the current stage from a pointer position without
// committing it.
func (p *Placement) Track(pointer r3.Vec) {
	switch p.stage {
	case StagePosition:
		p.body.Position = pointer
	case StageSize:
		p.applySize(r3.Norm(r3.Sub(p.body.Position, pointer)))
	case StageVelocity:
		p.applyVelocity(r3.Sub(pointer, p.body.Position))
	}
}

// Commit locks the current stage and advances to the next one.
func (p *Placement) Commit() error {
	if p.stage == StageReady {
		return dynamo.ErrOutOfOrder
	}
	p.stage++
	return nil
}

// SetPosition sets and commits the pixel position.
func (p *Placement) SetPosition(pos r3.Vec) error {
	if err := p.expect(StagePosition); err != nil {
		return err
	}
	p.body.Position = pos
	return p.Commit()
}

// SetSize sets and commits the size from a drag distance in pixels.
func (p *Placement) SetSize(drag float64) error {
	if err := p.expect(StageSize); err != nil {
		return err
	}
	p.applySize(drag)
	return p.Commit()
}

// SetSizeMultiplier sets and commits the size from a multiplier in [0, 1].
func (p *Placement) SetSizeMultiplier(m float64) error {
	return p.SetSize(m * p.units.MaxVector)
}

// SetVelocity sets and commits the velocity from a drag vector in pixels.
func (p *Placement) SetVelocity(drag r3.Vec) error {
	if err := p.expect(StageVelocity); err != nil {
		return err
	}
	p.applyVelocity(drag)
	return p.Commit()
}

// SetVelocityMultiplier sets and commits the velocity from a multiplier pair.
func (p *Placement) SetVelocityMultiplier(m r3.Vec) error {
	return p.SetVelocity(r3.Scale(p.units.MaxVector, m))
}

func (p *Placement) expect(s Stage) error {
	if p.stage != s {
		return fmt.Errorf("%w: next action is %s, got %s", dynamo.ErrOutOfOrder, p.stage, s)
	}
	return nil
}

func (p *Placement) applySize(drag float64) {
	m := p.units.SizeMultiplier(drag)
	p.radius = p.units.DisplayRadiusFromMultiplier(m)
	p.body.Mass = p.units.MassFromMultiplier(m)
}

func (p *Placement) applyVelocity(drag r3.Vec) {
	p.body.Velocity = p.units.VelocityFromMultiplier(p.units.VelocityMultiplier(drag))
}

// RandomColors returns one random colour per body.
func RandomColors(seed int64) [dynamo.NumBodies]body.Color {
	rng := rand.New(rand.NewSource(seed))
	var colors [dynamo.NumBodies]body.Color
	for i := range colors {
		colors[i] = body.Color{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
	}
	return colors
}
