// Package ratelimit implements a per-client sliding-window rate limiter for
// the form submission endpoints.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultWindow is the tracking window for submission endpoints
	DefaultWindow = 15 * time.Minute
	// DefaultSweepInterval is how often idle clients are evicted
	DefaultSweepInterval = 5 * time.Minute
)

// SlidingWindow counts accepted requests per client over a window that ends at
// "now", rather than resetting at fixed clock boundaries. The check-and-record
// step is atomic under the mutex, so concurrent requests from the same client
// cannot exceed the limit.
type SlidingWindow struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string][]time.Time
	now     func() time.Time
}

// NewSlidingWindow creates a limiter allowing max requests per client per window.
func NewSlidingWindow(window time.Duration, max int) *SlidingWindow {
	if window <= 0 {
		window = DefaultWindow
	}
	return &SlidingWindow{
		window:  window,
		max:     max,
		entries: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether a request from clientID may proceed, and records it if
// so. Timestamps older than the window are pruned on every call; a rejected
// request is not recorded.
func (l *SlidingWindow) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.entries[clientID][:0]
	for _, ts := range l.entries[clientID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.entries[clientID] = recent
		return false
	}

	l.entries[clientID] = append(recent, now)
	return true
}

// Remaining returns how many more requests clientID may make in the current
// window, without recording anything.
func (l *SlidingWindow) Remaining(clientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	count := 0
	for _, ts := range l.entries[clientID] {
		if ts.After(cutoff) {
			count++
		}
	}
	if count >= l.max {
		return 0
	}
	return l.max - count
}

// Sweep evicts clients whose newest timestamp has aged out of the window,
// bounding memory for a long-running process. It returns the number of clients
// evicted.
func (l *SlidingWindow) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	evicted := 0
	for clientID, stamps := range l.entries {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.entries, clientID)
			evicted++
		}
	}
	return evicted
}

// Start runs a periodic sweep until ctx is cancelled.
func (l *SlidingWindow) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// Len returns the number of tracked clients.
func (l *SlidingWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
