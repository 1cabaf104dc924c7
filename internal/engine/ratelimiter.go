package engine

import (
	"sync"
	"time"
)

type rateWindow struct {
	count int
	start time.Time
}

// RateLimiter admits at most max actions per entity in a fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	now     func() time.Time
	windows map[string]*rateWindow
}

// NewRateLimiter returns a limiter allowing max actions per window. now is
// the clock; nil means [time.Now].
func NewRateLimiter(max int, window time.Duration, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		max:     max,
		window:  window,
		now:     now,
		windows: make(map[string]*rateWindow),
	}
}

// CanAct reports whether one more action on entityID would be admitted. It
// does not count the action; see [RateLimiter.RecordAction].
func (l *RateLimiter) CanAct(entityID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[entityID]
	if !ok || l.expired(w) {
		return true
	}
	return w.count < l.max
}

// RecordAction counts one action on entityID, opening a new window when the
// current one has expired.
func (l *RateLimiter) RecordAction(entityID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[entityID]
	if !ok || l.expired(w) {
		l.windows[entityID] = &rateWindow{count: 1, start: l.now()}
		return
	}
	w.count++
}

// Reset forgets the window of entityID.
func (l *RateLimiter) Reset(entityID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, entityID)
}

func (l *RateLimiter) expired(w *rateWindow) bool {
	return l.now().Sub(w.start) > l.window
}
