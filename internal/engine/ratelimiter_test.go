package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_WindowLimit(t *testing.T) {
	clock := newFakeClock(0)
	l := NewRateLimiter(10, time.Minute, clock.Now)

	for i := 0; i < 10; i++ {
		assert.True(t, l.CanAct("c1"), "action %d should be admitted", i)
		l.RecordAction("c1")
	}
	assert.False(t, l.CanAct("c1"))

	// other entities have their own window
	assert.True(t, l.CanAct("c2"))

	clock.Advance(time.Minute)
	assert.False(t, l.CanAct("c1"), "window is still open at exactly its duration")

	clock.Advance(time.Millisecond)
	assert.True(t, l.CanAct("c1"), "expired window counts as empty without Reset")

	l.RecordAction("c1")
	assert.True(t, l.CanAct("c1"), "recording after expiry opens a new window")
}

func TestRateLimiter_CanActHasNoSideEffect(t *testing.T) {
	l := NewRateLimiter(1, time.Minute, newFakeClock(0).Now)

	for i := 0; i < 5; i++ {
		assert.True(t, l.CanAct("c1"))
	}

	l.RecordAction("c1")
	assert.False(t, l.CanAct("c1"))
}

func TestRateLimiter_Reset(t *testing.T) {
	l := NewRateLimiter(2, time.Minute, newFakeClock(0).Now)

	l.RecordAction("c1")
	l.RecordAction("c1")
	assert.False(t, l.CanAct("c1"))

	l.Reset("c1")
	assert.True(t, l.CanAct("c1"))

	// resetting an unknown entity is fine
	l.Reset("missing")
}
