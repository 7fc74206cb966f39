// Package units converts placement-layer input (pixels, drag multipliers,
// y-down screen axes) into the internal units of the integrator.
//
// Every conversion is an explicit function so each can be tested in
// isolation; nothing is converted implicitly on assignment.
package units

import (
	"fmt"
	"math"

	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultScale            = 20.0
	DefaultMaxVector        = 200.0
	DefaultMaxRadius        = 25.0
	DefaultMaxMass          = 10.0
	DefaultStandardVelocity = 0.35
	DefaultScreenWidth      = 800
	DefaultScreenHeight     = 800
	DefaultPreviewVector    = 300.0
)

// Converter holds the unit constants shared by placement and simulation.
type Converter struct {
	Scale            float64 `yaml:"scale"`
	MaxVector        float64 `yaml:"max_vector"`
	MaxRadius        float64 `yaml:"max_radius"`
	MaxMass          float64 `yaml:"max_mass"`
	StandardVelocity float64 `yaml:"standard_velocity"`
	ScreenWidth      int     `yaml:"screen_width"`
	ScreenHeight     int     `yaml:"screen_height"`
	// PreviewVector is the pixel length drawn per unit of UI velocity.
	PreviewVector float64 `yaml:"preview_vector"`
}

func Default() Converter {
	return Converter{
		Scale:            DefaultScale,
		MaxVector:        DefaultMaxVector,
		MaxRadius:        DefaultMaxRadius,
		MaxMass:          DefaultMaxMass,
		StandardVelocity: DefaultStandardVelocity,
		ScreenWidth:      DefaultScreenWidth,
		ScreenHeight:     DefaultScreenHeight,
		PreviewVector:    DefaultPreviewVector,
	}
}

// ToInternalPosition divides by the scale factor and flips the vertical axis.
func (c Converter) ToInternalPosition(p r3.Vec) r3.Vec {
	return r3.Vec{X: p.X / c.Scale, Y: -p.Y / c.Scale, Z: p.Z / c.Scale}
}

// ToUIPosition is the inverse of ToInternalPosition.
func (c Converter) ToUIPosition(p r3.Vec) r3.Vec {
	return r3.Vec{X: p.X * c.Scale, Y: -p.Y * c.Scale, Z: p.Z * c.Scale}
}

// ToInternalVelocity flips the vertical component. Velocities are not
// rescaled by the coordinate factor.
func (c Converter) ToInternalVelocity(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: -v.Y, Z: v.Z}
}

// ToUIVelocity is the inverse of ToInternalVelocity.
func (c Converter) ToUIVelocity(v r3.Vec) r3.Vec {
	return c.ToInternalVelocity(v)
}

// SizeMultiplier maps a drag distance in pixels to [0, 1].
func (c Converter) SizeMultiplier(drag float64) float64 {
	return clamp01(drag / c.MaxVector)
}

// MassFromMultiplier returns MaxMass scaled by the clamped multiplier.
func (c Converter) MassFromMultiplier(m float64) float64 {
	return clamp01(m) * c.MaxMass
}

// DisplayRadiusFromMultiplier returns the placement-time circle radius in pixels.
func (c Converter) DisplayRadiusFromMultiplier(m float64) int {
	return int(clamp01(m) * c.MaxRadius)
}

// VelocityMultiplier maps a drag vector in pixels to a multiplier pair.
// The result is not clamped.
func (c Converter) VelocityMultiplier(drag r3.Vec) r3.Vec {
	return r3.Scale(1/c.MaxVector, drag)
}

// VelocityFromMultiplier scales the standard velocity by m.
func (c Converter) VelocityFromMultiplier(m r3.Vec) r3.Vec {
	return r3.Scale(c.StandardVelocity, m)
}

// PreviewEnd returns the pixel end point of a body's velocity preview line.
func (c Converter) PreviewEnd(b body.Body) r3.Vec {
	return r3.Add(b.Position, r3.Scale(c.PreviewVector, b.Velocity))
}

// ToInternal converts a placed body to simulation units. Mass and colour
// pass through.
func (c Converter) ToInternal(b body.Body) body.Body {
	return body.Body{
		Mass:     b.Mass,
		Position: c.ToInternalPosition(b.Position),
		Velocity: c.ToInternalVelocity(b.Velocity),
		Color:    b.Color,
	}
}

// Viewport returns the centre and the width/height of the screen in
// internal units.
func (c Converter) Viewport() (center r3.Vec, width, height float64) {
	w, h := float64(c.ScreenWidth), float64(c.ScreenHeight)
	center = c.ToInternalPosition(r3.Vec{X: w / 2, Y: h / 2})
	return center, w / c.Scale, h / c.Scale
}

// Validate reports the first constant that cannot be divided by.
func (c Converter) Validate() error {
	switch {
	case !(c.Scale > 0):
		return fmt.Errorf("units: scale must be positive, got %v", c.Scale)
	case !(c.MaxVector > 0):
		return fmt.Errorf("units: max_vector must be positive, got %v", c.MaxVector)
	case !(c.MaxMass > 0):
		return fmt.Errorf("units: max_mass must be positive, got %v", c.MaxMass)
	case c.MaxRadius < 0 || c.StandardVelocity < 0:
		return fmt.Errorf("units: max_radius and standard_velocity must not be negative")
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("units: screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	return nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
