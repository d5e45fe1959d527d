package engine

import (
	"errors"
	"testing"
)

func TestMultiSinkFanOut(t *testing.T) {
	a := &Capture{}
	b := &Capture{}
	m := MultiSink(a, b)

	f := Frame{Width: 1, Height: 1, Rows: []string{"x"}}
	if err := m.WriteFrame(f); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("Expected 1 frame in each sink, got %d and %d", a.Len(), b.Len())
	}
}

func TestMultiSinkStopsAtFirstError(t *testing.T) {
	sinkErr := errors.New("boom")
	after := &Capture{}
	m := MultiSink(failSink{err: sinkErr}, after)

	err := m.WriteFrame(Frame{Width: 1, Height: 1, Rows: []string{"x"}})
	if !errors.Is(err, sinkErr) {
		t.Errorf("Expected sink error, got %v", err)
	}
	if after.Len() != 0 {
		t.Errorf("Expected later sinks to be skipped, got %d frames", after.Len())
	}
}

func TestDiscard(t *testing.T) {
	if err := Discard.WriteFrame(Frame{Width: 1, Height: 1, Rows: []string{"x"}}); err != nil {
		t.Errorf("Expected Discard to accept frames, got %v", err)
	}
}

func TestCaptureOrder(t *testing.T) {
	c := &Capture{}
	for _, row := range []string{"a", "b", "c"} {
		c.WriteFrame(Frame{Width: 1, Height: 1, Rows: []string{row}})
	}

	frames := c.Frames()
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	for i, want := range []string{"a", "b", "c"} {
		if frames[i].Rows[0] != want {
			t.Errorf("Expected frame %d row %q, got %q", i, want, frames[i].Rows[0])
		}
	}

	last, ok := c.Last()
	if !ok || last.Rows[0] != "c" {
		t.Errorf("Expected last frame %q, got %q (ok=%v)", "c", last.Rows[0], ok)
	}
}

func TestCaptureEmpty(t *testing.T) {
	c := &Capture{}
	if _, ok := c.Last(); ok {
		t.Error("Expected no last frame on empty capture")
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty capture, got %d frames", c.Len())
	}
}
