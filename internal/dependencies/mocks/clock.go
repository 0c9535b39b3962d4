package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/numberguess/internal/dependencies/clock"
)

// MockClock is a settable Clock. It is safe to advance from a test while
// request goroutines read it.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
