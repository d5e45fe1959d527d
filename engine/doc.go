// Package engine implements a fixed-grid character cell renderer driven by a
// frame loop.
//
// Features:
//   - Fixed-size cell grid with bounds-gated cell operations
//   - Multi-cell objects drawn, moved and removed as units
//   - Full-frame rendering through a pluggable Sink
//   - Optional frame pacing with a mockable clock
//   - Context-based cancellation of the run loop
//
// The core is single-threaded by contract: an Updater mutates the grid once
// per frame and the loop repaints the whole grid after every update. There is
// no diffing and no color model; sinks receive complete text frames.
package engine
