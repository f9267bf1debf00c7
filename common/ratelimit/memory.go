package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a fixed-window counter held in process memory. Window
// expiry is evaluated lazily on each check rather than by timers, so the
// limiter holds no background state and tests can drive it with a fake
// clock.
type MemoryLimiter struct {
	limit  int64
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

type window struct {
	start time.Time
	count int64
}

// NewMemoryLimiter creates a memory-backed limiter
func NewMemoryLimiter(limit int64, windowSize time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  windowSize,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// SetClock replaces the limiter's time source (tests)
func (m *MemoryLimiter) SetClock(now func() time.Time) {
	m.now = now
}

// Allow records one request for creatorID within the current window
func (m *MemoryLimiter) Allow(ctx context.Context, creatorID string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	w, ok := m.windows[creatorID]
	if !ok || now.Sub(w.start) >= m.window {
		w = &window{start: now}
		m.windows[creatorID] = w
	}

	w.count++

	if w.count > m.limit {
		retryAfter := int64(m.window.Seconds() - now.Sub(w.start).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		return &Result{
			Allowed:           false,
			CurrentCount:      w.count,
			Limit:             m.limit,
			RetryAfterSeconds: retryAfter,
		}, nil
	}

	return &Result{
		Allowed:      true,
		CurrentCount: w.count,
		Limit:        m.limit,
	}, nil
}

// sweep drops expired windows so the map stays bounded by the set of
// creators active within one window, not every creator ever seen. Runs at
// most once per window. Caller must hold m.mu.
func (m *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.window {
		return
	}
	for creatorID, w := range m.windows {
		if now.Sub(w.start) >= m.window {
			delete(m.windows, creatorID)
		}
	}
	m.lastSweep = now
}
