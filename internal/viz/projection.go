package viz

import (
	"math"

	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// Projection maps internal simulation coordinates onto canvas sub-pixels.
// The view shows the same region the placement screen covered.
type Projection struct {
	Center        r3.Vec
	Width, Height float64
	PixelsX       int
	PixelsY       int
}

func NewProjection(conv units.Converter, c *Canvas) Projection {
	center, w, h := conv.Viewport()
	px, py := c.PixelSize()
	return Projection{Center: center, Width: w, Height: h, PixelsX: px, PixelsY: py}
}

// Point returns the sub-pixel for an internal position. Internal Y grows
// upward, canvas rows grow downward.
func (p Projection) Point(v r3.Vec) (int, int) {
	x := (v.X-p.Center.X)/p.Width + 0.5
	y := 0.5 - (v.Y-p.Center.Y)/p.Height
	return int(math.Floor(x * float64(p.PixelsX))), int(math.Floor(y * float64(p.PixelsY)))
}

// Length converts an internal distance to sub-pixels along X.
func (p Projection) Length(d float64) int {
	return int(math.Round(d / p.Width * float64(p.PixelsX)))
}
