package record

import (
	"context"
	"fmt"
	"time"

	"github.com/cellwright/gridterm/engine"
)

// Replay feeds a stored session's frames into sink. With interval > 0 the
// frames are paced at that fixed rate; otherwise the recorded capture times
// drive the pacing. Returns ctx.Err() if the context is canceled mid-replay.
func (s *Store) Replay(ctx context.Context, sessionID int64, sink engine.Sink, interval time.Duration) error {
	info, err := s.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	frames, err := s.Frames(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("session %d has no frames", sessionID)
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for i, frame := range frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if i > 0 {
			delay := interval
			if delay <= 0 {
				delay = frame.CapturedAt.Sub(frames[i-1].CapturedAt)
			}
			if delay > 0 {
				timer.Reset(delay)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-timer.C:
				}
			}
		}

		out := engine.Frame{Width: info.Width, Height: info.Height, Rows: frame.Rows}
		if err := sink.WriteFrame(out); err != nil {
			return fmt.Errorf("failed to replay frame %d: %w", frame.Seq, err)
		}
	}
	return nil
}
