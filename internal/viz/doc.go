// Package viz renders simulation results in the terminal.
//
//   - [Summary]: a styled report of one run
//   - [SweepTable]: peak pressure per vent area with a sparkline
//   - [Replay]: a Bubble Tea model that plays back a pressure history
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from t=0
//	T     - Cycle color themes
//	+/-   - Playback speed
//	[]/   - Scrub backward/forward
//	Q     - Quit
package viz
