// Package record persists rendered frames to SQLite and plays them back.
package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned when a session id does not exist in the store.
var ErrNoSession = errors.New("session not found")

// SessionInfo describes one recorded session.
type SessionInfo struct {
	ID        int64
	StartedAt time.Time
	Width     int
	Height    int
	Frames    int
}

// StoredFrame is one frame of a recorded session.
type StoredFrame struct {
	Seq        int64
	CapturedAt time.Time
	Rows       []string
}

// Store is a SQLite-backed archive of recorded sessions.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the file, its parent directory
// and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TIMESTAMP NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS frames (
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			captured_at TIMESTAMP NOT NULL,
			content TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		)`,
	}
	for _, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginSession records the start of a new session and returns its id.
func (s *Store) BeginSession(ctx context.Context, width, height int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, width, height) VALUES (?, ?, ?)`,
		time.Now().UTC(), width, height)
	if err != nil {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read session id: %w", err)
	}
	return id, nil
}

// AppendFrame stores one frame of a session. Rows are stored newline joined;
// grid rows never contain newlines themselves.
func (s *Store) AppendFrame(ctx context.Context, sessionID, seq int64, capturedAt time.Time, rows []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO frames (session_id, seq, captured_at, content) VALUES (?, ?, ?, ?)`,
		sessionID, seq, capturedAt.UTC(), strings.Join(rows, "\n"))
	if err != nil {
		return fmt.Errorf("failed to store frame %d: %w", seq, err)
	}
	return nil
}

// Session returns one session with its frame count.
func (s *Store) Session(ctx context.Context, id int64) (SessionInfo, error) {
	var info SessionInfo
	err := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.started_at, s.width, s.height, COUNT(f.seq)
		 FROM sessions s LEFT JOIN frames f ON f.session_id = s.id
		 WHERE s.id = ?
		 GROUP BY s.id`, id).
		Scan(&info.ID, &info.StartedAt, &info.Width, &info.Height, &info.Frames)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionInfo{}, ErrNoSession
	}
	if err != nil {
		return SessionInfo{}, fmt.Errorf("failed to load session %d: %w", id, err)
	}
	return info, nil
}

// Sessions lists all recorded sessions in recording order.
func (s *Store) Sessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.started_at, s.width, s.height, COUNT(f.seq)
		 FROM sessions s LEFT JOIN frames f ON f.session_id = s.id
		 GROUP BY s.id
		 ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.StartedAt, &info.Width, &info.Height, &info.Frames); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	return sessions, nil
}

// Frames returns every frame of a session in sequence order.
func (s *Store) Frames(ctx context.Context, sessionID int64) ([]StoredFrame, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, captured_at, content FROM frames
		 WHERE session_id = ?
		 ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load frames for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var frames []StoredFrame
	for rows.Next() {
		var frame StoredFrame
		var content string
		if err := rows.Scan(&frame.Seq, &frame.CapturedAt, &content); err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		frame.Rows = strings.Split(content, "\n")
		frames = append(frames, frame)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read frames: %w", err)
	}
	return frames, nil
}
