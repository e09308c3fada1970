package chat

import (
	"sync"
	"testing"
	"time"

	"batepapo/internal/app/store"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (*Service, *store.MemoryStore, *fakeClock) {
	t.Helper()

	st := store.NewMemoryStore()
	clock := newFakeClock()
	svc := NewService(st, Options{
		SweepInterval:     15 * time.Second,
		InactivityTimeout: 10 * time.Second,
		Now:               clock.Now,
	})
	return svc, st, clock
}
