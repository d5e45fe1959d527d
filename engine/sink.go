package engine

import "sync"

// Frame is one complete rendered grid state. Rows always holds exactly
// Height strings of exactly Width runes; strings are immutable, so sinks may
// retain frames without copying.
type Frame struct {
	Width  int
	Height int
	Rows   []string
}

// Sink consumes rendered frames. Implementations decide what a frame means:
// terminal bytes, tcell cells, websocket payloads, database rows.
type Sink interface {
	WriteFrame(Frame) error
}

// MultiSink fans each frame out to every sink in order, stopping at the
// first error. Analogous to io.MultiWriter.
func MultiSink(sinks ...Sink) Sink {
	m := make(multiSink, len(sinks))
	copy(m, sinks)
	return m
}

type multiSink []Sink

func (m multiSink) WriteFrame(f Frame) error {
	for _, s := range m {
		if err := s.WriteFrame(f); err != nil {
			return err
		}
	}
	return nil
}

// Discard is a sink that drops every frame. Useful for headless pacing runs
// and benchmarks.
var Discard Sink = discard{}

type discard struct{}

func (discard) WriteFrame(Frame) error { return nil }

// Capture is a sink that stores every frame in memory, for tests and
// inspection. Safe for concurrent use.
type Capture struct {
	mu     sync.Mutex
	frames []Frame
}

// WriteFrame appends the frame to the capture log.
func (c *Capture) WriteFrame(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
	return nil
}

// Frames returns a copy of all captured frames in write order.
func (c *Capture) Frames() []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	frames := make([]Frame, len(c.frames))
	copy(frames, c.frames)
	return frames
}

// Last returns the most recent frame, if any.
func (c *Capture) Last() (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return Frame{}, false
	}
	return c.frames[len(c.frames)-1], true
}

// Len returns the number of captured frames.
func (c *Capture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}
