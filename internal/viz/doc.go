// Package viz plays animations in the terminal.
//
// The package implements an interactive player using the Bubble Tea
// framework:
//
//   - [Model]: playback loop with a stats sidebar
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Watch]: rebuilds the animation when the instruction file changes
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the beginning
//	T     - Cycle color themes
//	Z     - Toggle zen mode
//	L     - Toggle looping
//	←/→   - Seek
//	↑/↓   - Playback speed
//	?     - Show help overlay
package viz
