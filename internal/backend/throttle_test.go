package backend

import (
	"context"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if !th.wait(ctx) || !th.wait(ctx) {
		t.Fatalf("expected both waits to succeed")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second wait to block, elapsed %v", elapsed)
	}
}

func TestThrottleZeroIntervalNeverBlocks(t *testing.T) {
	var nilThrottle *throttle
	if !nilThrottle.wait(context.Background()) {
		t.Fatalf("expected nil throttle to pass")
	}
	if !newThrottle(0).wait(context.Background()) {
		t.Fatalf("expected zero interval to pass")
	}
}

func TestThrottleCancelledWait(t *testing.T) {
	th := newThrottle(time.Hour)
	if !th.wait(context.Background()) {
		t.Fatalf("expected first wait to pass immediately")
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() { done <- th.wait(ctx) }()
	cancel()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected cancelled wait to report false")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("cancelled wait did not return")
	}
}
