// Package viz is the terminal host for the particle simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: a running simulation drawn on a braille [Canvas], driven by
//     terminal mouse events
//   - [Surface]: adapts a [Canvas] to the render surface contract
//   - a preset menu and parameter screen in front of the live model
//
// # Key Bindings
//
//	Mouse - Drag a ball; releasing flings it
//	Space - Pause/Resume simulation
//	N     - Single step while paused
//	R     - Reset to initial layout
//	Tab   - Cycle physics parameters, Up/Down to tune
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help
//
// # Recording
//
// G records the canvas as a GIF animation, saved as ballpit.gif in the
// current directory when recording stops.
package viz
