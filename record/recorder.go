package record

import (
	"context"
	"sync"
	"time"

	"github.com/cellwright/gridterm/engine"
)

// Recorder is a render sink that appends every frame to a session in the
// store. The session is created lazily on the first frame, when the grid
// size is known.
type Recorder struct {
	mu        sync.Mutex
	store     *Store
	sessionID int64
	seq       int64
	started   bool
}

// NewRecorder creates a recorder writing into store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

// WriteFrame implements engine.Sink.
func (r *Recorder) WriteFrame(f engine.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx := context.Background()
	if !r.started {
		id, err := r.store.BeginSession(ctx, f.Width, f.Height)
		if err != nil {
			return err
		}
		r.sessionID = id
		r.started = true
	}

	r.seq++
	return r.store.AppendFrame(ctx, r.sessionID, r.seq, time.Now(), f.Rows)
}

// SessionID reports the session created for this recording, or 0 if no
// frame has been written yet.
func (r *Recorder) SessionID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}
