package viz

import (
	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// Scene is everything one frame shows, in internal units.
type Scene struct {
	Bodies     [dynamo.NumBodies]sim.BodyView
	Trails     [dynamo.NumBodies][]r3.Vec
	Velocities bool
}

// DrawScene clears c and draws trails, velocity lines and bodies, each on
// the layer of its body.
func DrawScene(c *Canvas, conv units.Converter, sc Scene) {
	proj := NewProjection(conv, c)
	c.Clear()
	for i, trail := range sc.Trails {
		for _, p := range trail {
			x, y := proj.Point(p)
			c.Set(x, y, i)
		}
	}
	for i, b := range sc.Bodies {
		x, y := proj.Point(b.Position)
		if sc.Velocities {
			ex, ey := proj.Point(velocityEnd(conv, b))
			c.DrawLine(x, y, ex, ey, i)
		}
		c.FillCircle(x, y, proj.Length(b.Radius), i)
	}
}

// velocityEnd is the internal-unit end of the velocity line drawn from a
// body, scaled like the placement preview.
func velocityEnd(conv units.Converter, b sim.BodyView) r3.Vec {
	ui := body.Body{
		Position: conv.ToUIPosition(b.Position),
		Velocity: conv.ToUIVelocity(b.Velocity),
	}
	return conv.ToInternalPosition(conv.PreviewEnd(ui))
}
