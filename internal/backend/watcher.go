package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tmux-emoji-popup/internal/syncstore"
	"github.com/atomicstack/tmux-emoji-popup/internal/tmux"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	// KindStorage carries a syncstore.ChangeSet written by another process.
	KindStorage Kind = iota
	// KindTarget carries whether the insertion pane still exists.
	KindTarget
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Reloader is the part of a persistent store the watcher polls.
type Reloader interface {
	Reload() (syncstore.ChangeSet, error)
}

// Options configures a Watcher. A nil Store or blank Target disables the
// corresponding poller.
type Options struct {
	Store    Reloader
	Socket   string
	Target   string
	Interval time.Duration
}

var paneExists = tmux.PaneExists

// Watcher polls the sync store and the target pane at a fixed interval and
// publishes events.
type Watcher struct {
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts the pollers described by opts.
func NewWatcher(opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}

	if opts.Store != nil {
		w.startStoragePoller()
	}
	if opts.Target != "" {
		w.startTargetPoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. A poller blocked in its throttle returns at once;
// one inside a fetch exits once the fetch completes. Wait drains them.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startStoragePoller() {
	throttle := newThrottle(100 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindStorage, false, func(ctx context.Context) (interface{}, bool, error) {
		if !throttle.wait(ctx) {
			return nil, false, nil
		}
		changes, err := w.opts.Store.Reload()
		if err != nil {
			return nil, true, err
		}
		return changes, len(changes) > 0, nil
	})
}

func (w *Watcher) startTargetPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	var (
		known bool
		last  bool
	)
	w.wg.Add(1)
	go w.poll(KindTarget, true, func(ctx context.Context) (interface{}, bool, error) {
		if !throttle.wait(ctx) {
			return nil, false, nil
		}
		ok, err := paneExists(w.opts.Socket, w.opts.Target)
		if err != nil {
			ok = false
		}
		changed := !known || ok != last
		known, last = true, ok
		return ok, changed, err
	})
}

// poll runs fetch on every tick. Results are published only when fetch
// reports something worth sending. When immediate is set the first fetch runs
// before the first tick.
func (w *Watcher) poll(kind Kind, immediate bool, fetch func(context.Context) (interface{}, bool, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, send, err := fetch(w.ctx)
		if !send {
			return w.ctx.Err() == nil
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if immediate && !emit() {
		return
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
