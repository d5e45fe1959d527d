package engine

import (
	"sync"
	"time"
)

// MockClock provides a controllable time source for testing.
//
// After does not block: it advances the mocked time by the requested duration
// and returns an already-delivered channel, while recording the duration.
// Loops paced with a MockClock therefore run at full speed with exact
// virtual timing.
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
	sleeps      []time.Duration
}

// NewMockClock creates a new mock clock with the given start time.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock.
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// After advances the mocked time by d, records the request, and returns a
// channel that already holds the new time.
func (m *MockClock) After(d time.Duration) <-chan time.Time {
	m.mu.Lock()
	m.currentTime = m.currentTime.Add(d)
	m.sleeps = append(m.sleeps, d)
	t := m.currentTime
	m.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- t
	return ch
}

// Sleeps returns a copy of every duration passed to After, in order.
func (m *MockClock) Sleeps() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sleeps := make([]time.Duration, len(m.sleeps))
	copy(sleeps, m.sleeps)
	return sleeps
}
