package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces successive polls by at least interval.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval < 0 {
		interval = 0
	}
	return &throttle{interval: interval}
}

// wait blocks until the next slot is free and claims it. It returns false
// when ctx ends first; the slot is left unclaimed in that case.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	now := time.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	t.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		t.release(slot)
		return false
	case <-timer.C:
		return true
	}
}

// release hands back a slot claimed by a cancelled wait, provided no later
// caller has claimed the one after it.
func (t *throttle) release(slot time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.next.Equal(slot.Add(t.interval)) {
		t.next = slot
	}
}
