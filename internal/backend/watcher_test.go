package backend

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/tmux-emoji-popup/internal/syncstore"
)

type fakeReloader struct {
	mu      sync.Mutex
	results []syncstore.ChangeSet
	err     error
	calls   int
}

func (f *fakeReloader) Reload() (syncstore.ChangeSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) == 0 {
		return nil, nil
	}
	next := f.results[0]
	f.results = f.results[1:]
	return next, nil
}

func withStubPaneExists(t *testing.T, fn func(string, string) (bool, error)) {
	t.Helper()
	prev := paneExists
	paneExists = fn
	t.Cleanup(func() { paneExists = prev })
}

func receive(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func TestWatcherEmitsOnlyNonEmptyChanges(t *testing.T) {
	store := &fakeReloader{results: []syncstore.ChangeSet{
		nil,
		{syncstore.KeyTheme: {OldValue: "light", NewValue: "dark"}},
	}}
	w := NewWatcher(Options{Store: store, Interval: 5 * time.Millisecond})
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := receive(t, w)
	if evt.Kind != KindStorage {
		t.Fatalf("expected storage event, got %v", evt.Kind)
	}
	changes, ok := evt.Data.(syncstore.ChangeSet)
	if !ok || !changes.Has(syncstore.KeyTheme) {
		t.Fatalf("expected theme change, got %#v", evt.Data)
	}
}

func TestWatcherReportsReloadErrors(t *testing.T) {
	store := &fakeReloader{err: errors.New("decode failed")}
	w := NewWatcher(Options{Store: store, Interval: 5 * time.Millisecond})
	defer func() {
		w.Stop()
		w.Wait()
	}()
	evt := receive(t, w)
	if evt.Err == nil {
		t.Fatalf("expected error event")
	}
}

func TestWatcherTargetEmitsTransitions(t *testing.T) {
	var mu sync.Mutex
	states := []bool{true, true, false}
	withStubPaneExists(t, func(socket, target string) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(states) == 0 {
			return false, nil
		}
		next := states[0]
		states = states[1:]
		return next, nil
	})
	w := NewWatcher(Options{Target: "%1", Interval: 5 * time.Millisecond})
	defer func() {
		w.Stop()
		w.Wait()
	}()

	first := receive(t, w)
	if first.Kind != KindTarget || first.Data != true {
		t.Fatalf("expected initial target=true, got %+v", first)
	}
	second := receive(t, w)
	if second.Data != false {
		t.Fatalf("expected transition to false, got %+v", second)
	}
}

func TestWatcherWithoutPollersClosesChannel(t *testing.T) {
	w := NewWatcher(Options{})
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected channel to close")
	}
}
