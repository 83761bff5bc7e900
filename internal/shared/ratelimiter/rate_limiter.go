// Package ratelimiter implements per-key fixed-window rate limiting for
// sensitive endpoints.
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter decides whether a caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// bucket tracks one client's attempts within the current window.
type bucket struct {
	count       int
	windowStart time.Time
}

// FixedWindow is a mutex-guarded fixed-window counter keyed by client
// identifier. The whole window resets at once rather than sliding, so bursts
// at window boundaries are accepted as a known limitation. State is
// process-local; multi-instance deployments get per-instance soft limiting
// only.
type FixedWindow struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

var _ Limiter = (*FixedWindow)(nil)

// NewFixedWindow creates a limiter admitting max attempts per key per window.
func NewFixedWindow(max int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		max:     max,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow records an attempt for key and reports whether it is admitted.
// The first sight of a key starts a window with count 1. Once the count
// reaches the maximum, further attempts are rejected without mutating state
// until the window elapses, after which the bucket restarts as if new.
func (l *FixedWindow) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	if b.count >= l.max {
		return false
	}
	b.count++
	return true
}
