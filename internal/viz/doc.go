// Package viz renders a running particle field in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [RunInteractive]: attractor menu followed by the live view
//   - [Model]: live view driving a [sim.Engine] once per tick
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Camera]: perspective projection with spring-eased zoom
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space/Enter - Next attractor (also left click)
//	1-9         - Jump to an attractor
//	P           - Pause/Resume
//	+/-         - Zoom
//	T           - Cycle color themes
//	G           - Toggle GIF recording
//	?           - Show help overlay
//
// # Recording
//
// G starts capturing canvas frames; pressing it again writes them as an
// animated GIF (attractors.gif unless configured otherwise).
package viz
