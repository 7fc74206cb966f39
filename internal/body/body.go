// Package body holds the gravitating point masses of a simulation run.
package body

import (
	"fmt"
	"math"

	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Color is an 8-bit RGB triple as produced by the placement layer.
type Color struct {
	R, G, B uint8
}

// Normalized maps each channel from 0-255 to 0-1.
func (c Color) Normalized() [3]float64 {
	return [3]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// Hex formats the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Body is one of the three bodies. Units depend on the owner: the
// placement layer works in pixels, the simulation in internal units.
type Body struct {
	Mass     float64
	Position r3.Vec
	Velocity r3.Vec
	Color    Color
}

// Validate rejects masses the force model cannot divide by.
func (b Body) Validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return dynamo.ErrInvalidMass
	}
	return nil
}

// Momentum returns m*v.
func (b Body) Momentum() r3.Vec {
	return r3.Scale(b.Mass, b.Velocity)
}

// Radius is the display radius derived from mass: 0.5 * m^(1/3).
func Radius(mass float64) float64 {
	return 0.5 * math.Cbrt(mass)
}
