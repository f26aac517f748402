package mocks

import (
	"sort"
	"time"

	"github.com/fwhittle/typerace-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing. Scheduled
// functions run synchronously when Advance moves past their deadline.
type MockClock struct {
	CurrentTime time.Time
	timers      []*mockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// AfterFunc registers f to fire when the clock advances past d from now
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &mockTimer{deadline: c.CurrentTime.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration, running any
// scheduled functions whose deadlines are reached, in deadline order.
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)

	due := c.dueTimers()
	for _, t := range due {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

// Set sets the clock to the given time without firing timers
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}

// PendingTimers returns the number of scheduled, unfired timers
func (c *MockClock) PendingTimers() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *MockClock) dueTimers() []*mockTimer {
	var due []*mockTimer
	for _, t := range c.timers {
		if !t.deadline.After(c.CurrentTime) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	return due
}

type mockTimer struct {
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

// Stop cancels the timer
func (t *mockTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
