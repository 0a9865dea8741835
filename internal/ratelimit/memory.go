package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is a mutex-guarded fixed-window counter for single-instance
// deployments and tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryLimiter builds an in-memory limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow counts the event against the key's current window, starting a fresh
// window once the previous one has elapsed.
func (l *MemoryLimiter) Allow(_ context.Context, key string, windowDur time.Duration, max int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= windowDur {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count <= max, nil
}
