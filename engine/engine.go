package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrAlreadyRunning is returned by Run when the engine is mid-run.
var ErrAlreadyRunning = errors.New("engine is already running")

// Updater is the per-frame hook. Update is called exactly once before each
// repaint; an error is fatal to the run loop and propagates out of Run
// unchanged apart from wrapping.
type Updater interface {
	Update() error
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func() error

// Update calls f.
func (f UpdaterFunc) Update() error { return f() }

// Engine drives an Updater and repaints a Display once per frame.
type Engine struct {
	display *Display
	updater Updater
	clock   Clock

	frames  atomic.Int64
	running atomic.Bool
}

// New creates an engine. The optional clock overrides the system clock;
// tests pass a MockClock for deterministic pacing.
func New(display *Display, updater Updater, clock ...Clock) *Engine {
	var c Clock
	if len(clock) > 0 && clock[0] != nil {
		c = clock[0]
	} else {
		c = NewSystemClock()
	}
	return &Engine{
		display: display,
		updater: updater,
		clock:   c,
	}
}

// Display returns the display the engine repaints.
func (e *Engine) Display() *Display {
	return e.display
}

// Frames returns the number of completed frames.
func (e *Engine) Frames() int64 {
	return e.frames.Load()
}

// Step runs a single frame: one update, one render. No pacing is applied.
// Must not be called while Run is active.
func (e *Engine) Step() error {
	return e.step()
}

// Run drives the frame loop until ctx is canceled or a frame fails.
//
// interval is the target duration of one frame. When positive, each iteration
// measures the time elapsed since the previous iteration started and sleeps
// away the remainder before updating; frames may run slower than the target
// but are never forced faster. A non-positive interval disables pacing
// entirely.
//
// Cancellation is checked every iteration and interrupts the pacing sleep;
// Run then returns ctx.Err(). An update or render error is returned wrapped
// with the frame number. Run returns ErrAlreadyRunning if called while a
// previous Run is still active.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	last := e.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if interval > 0 {
			elapsed := e.clock.Now().Sub(last)
			if remaining := interval - elapsed; remaining > 0 {
				select {
				case <-e.clock.After(remaining):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			// Measure from post-sleep so slow updates shorten the next
			// sleep instead of accumulating drift
			last = e.clock.Now()
		}

		if err := e.step(); err != nil {
			return err
		}
	}
}

func (e *Engine) step() error {
	frame := e.frames.Load()
	if err := e.updater.Update(); err != nil {
		return fmt.Errorf("update (frame %d): %w", frame, err)
	}
	if err := e.display.Render(); err != nil {
		return fmt.Errorf("render (frame %d): %w", frame, err)
	}
	e.frames.Add(1)
	return nil
}
