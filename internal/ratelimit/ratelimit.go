// Package ratelimit provides a per-endpoint minimum-interval gate that
// protects upstream services from bursts.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks the last successful call per logical endpoint name.
// It is advisory, not a queue: a denied caller must take its fallback path
// immediately rather than block or retry.
type Limiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time
	now      func() time.Time
}

// New creates an empty Limiter.
func New() *Limiter {
	return &Limiter{
		lastCall: make(map[string]time.Time),
		now:      time.Now,
	}
}

// NewWithClock creates a Limiter with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Limiter {
	l := New()
	l.now = now
	return l
}

// Allow reports whether a call to endpoint may proceed, recording the call
// time only when it does. It returns true when at least minInterval has
// elapsed since the previous allowed call for that endpoint.
func (l *Limiter) Allow(endpoint string, minInterval time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastCall[endpoint]; ok {
		if now.Sub(last) < minInterval {
			return false
		}
	}
	l.lastCall[endpoint] = now
	return true
}

// Reset forgets the recorded call time for endpoint.
func (l *Limiter) Reset(endpoint string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.lastCall, endpoint)
}
