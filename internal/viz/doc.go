// Package viz renders a running three-body simulation in the terminal.
//
// [Model] is a Bubble Tea program that steps a [sim.Simulation] on each
// tick and draws the bodies and their trails on a braille [Canvas], one
// colour per body, next to an energy graph.
//
// # Key Bindings
//
//	Space      - Pause/Resume simulation
//	T          - Toggle trails
//	V          - Toggle velocity lines
//	Q/Esc/^C   - Quit
package viz
