package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/seabattle/internal/dependencies/clock"
)

// MockClock is a settable Clock. It is safe for concurrent use since
// sessions are stepped from several goroutines in tests.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	// step is added after every Now call when non-zero
	step time.Duration
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// AutoStep makes every Now call move the clock forward by d
func (c *MockClock) AutoStep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = d
}
