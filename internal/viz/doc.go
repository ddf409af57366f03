// Package viz renders concentration profiles in the terminal.
//
//   - [PlotProfiles]: asciigraph chart of initial and final profiles
//   - [RenderSummary]: styled key/value table for run results
//   - [LiveModel]: Bubble Tea program that steps a run and redraws it
//
// # Key Bindings
//
//	Space - Pause/Resume stepping
//	+/-   - Double/halve the steps taken per frame
//	Q     - Quit
package viz
