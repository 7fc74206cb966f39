package export

import (
	"fmt"
	"strings"

	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"github.com/ryanmcf10/three-body-simulation/internal/viz"
	"gonum.org/v1/gonum/spatial/r3"
)

const background = "#0a0a0a"

// CanvasToSVG converts a braille canvas to SVG, colouring each cell by its
// layer. Cells with no layer colour use the default green.
func CanvasToSVG(canvas *viz.Canvas, colors [][3]float64, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	dotRadius := scale * 0.4
	px, py := canvas.PixelSize()
	for y := 0; y < py; y++ {
		for x := 0; x < px; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := "#00ff00"
			if layer := canvas.Layers[y/4][x/2]; layer >= 0 && layer < len(colors) {
				fill = viz.HexColor(colors[layer])
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FrameToSVG draws the last state of a run the way the live view shows it:
// trails, velocity lines and bodies on a cols x rows braille canvas.
func FrameToSVG(result *sim.Result, conv units.Converter, cols, rows int, scale float64) string {
	if result == nil || len(result.States) == 0 {
		return ""
	}

	last := result.States[len(result.States)-1]
	sc := viz.Scene{Velocities: true}
	colors := make([][3]float64, len(result.Colors))
	for i := range sc.Bodies {
		trail := viz.NewTrail(viz.DefaultTrailInterval, viz.DefaultTrailRetain)
		for _, y := range result.States {
			trail.Add(y.Position(i))
		}
		sc.Trails[i] = trail.Points()
		sc.Bodies[i] = sim.BodyView{
			Position: last.Position(i),
			Velocity: last.Velocity(i),
			Mass:     result.Masses[i],
			Radius:   body.Radius(result.Masses[i]),
			Color:    result.Colors[i],
		}
		colors[i] = result.Colors[i]
	}

	canvas := viz.NewCanvas(cols, rows)
	viz.DrawScene(canvas, conv, sc)
	return CanvasToSVG(canvas, colors, scale)
}

// TrajectoriesToSVG draws one path per body from a recorded run. Each
// path keeps every other recorded point up to the trail retention limit,
// and all three share one bounding box so relative motion is preserved.
func TrajectoriesToSVG(result *sim.Result, width, height int) string {
	if result == nil || len(result.States) < 2 {
		return ""
	}

	var paths [3][]r3.Vec
	for i := range paths {
		trail := viz.NewTrail(viz.DefaultTrailInterval, viz.DefaultTrailRetain)
		for _, y := range result.States {
			trail.Add(y.Position(i))
		}
		paths[i] = trail.Points()
	}

	// Find bounds
	first := paths[0][0]
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, path := range paths {
		for _, p := range path {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	project := func(p r3.Vec) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	for i, path := range paths {
		stroke := viz.HexColor(result.Colors[i])
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for j, p := range path {
			x, y := project(p)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		x, y := project(path[len(path)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, stroke))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
