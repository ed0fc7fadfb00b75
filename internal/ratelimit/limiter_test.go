package ratelimit

import (
	"testing"
	"time"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	l := New(max, window)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestAllowWithinBudget(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("attempt over budget should be denied")
	}
}

func TestDeniedAttemptDoesNotConsumeBudget(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	l.Allow("k")
	l.Allow("k")
	for i := 0; i < 5; i++ {
		if l.Allow("k") {
			t.Fatal("should stay denied")
		}
	}

	// Only the two recorded attempts need to expire.
	*clock = clock.Add(time.Minute + time.Second)
	if !l.Allow("k") {
		t.Error("should recover after the window passes")
	}
}

func TestWindowExpiry(t *testing.T) {
	l, clock := newTestLimiter(2, 5*time.Minute)

	l.Allow("k")
	*clock = clock.Add(3 * time.Minute)
	l.Allow("k")
	if l.Allow("k") {
		t.Error("both attempts still in window, should deny")
	}

	// First attempt ages out, freeing one slot.
	*clock = clock.Add(2*time.Minute + time.Second)
	if !l.Allow("k") {
		t.Error("oldest attempt expired, should allow")
	}
	if l.Allow("k") {
		t.Error("budget refilled by exactly one slot")
	}
}

func TestKeysAreIsolated(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first key should be allowed")
	}
	if !l.Allow("b") {
		t.Error("second key has its own budget")
	}
	if l.Allow("a") {
		t.Error("first key is exhausted")
	}
}
