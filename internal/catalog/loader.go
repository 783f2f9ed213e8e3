package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
)

// Sink receives fetched categories. MergeCategory must append the items and
// mark the label loaded in one step, and ignore labels already loaded.
type Sink interface {
	IsLoaded(label string) bool
	MergeCategory(label string, items []Item) bool
}

// DefaultConcurrency bounds parallel fetches in EnsureAllCategoriesLoaded.
const DefaultConcurrency = 4

var errNotArray = errors.New("payload is not a JSON array")

// Loader lazily fetches category data into a Sink.
type Loader struct {
	registry    *Registry
	source      Source
	sink        Sink
	group       singleflight.Group
	Concurrency int
}

// NewLoader wires a loader. A nil registry selects the built-in categories.
func NewLoader(registry *Registry, source Source, sink Sink) *Loader {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Loader{registry: registry, source: source, sink: sink, Concurrency: DefaultConcurrency}
}

// Registry returns the registry the loader resolves labels against.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// LoadCategory fetches and decodes one concrete category. Every returned item
// carries label as its category.
func (l *Loader) LoadCategory(ctx context.Context, label string) ([]Item, error) {
	locator, ok := l.registry.Locator(label)
	if !ok {
		return nil, &FetchError{Category: label, Err: errors.New("unknown category")}
	}
	events.Catalog.Fetch(label, l.source.Describe(locator))
	items, err := l.fetchItems(ctx, locator)
	if err != nil {
		return nil, &FetchError{Category: label, Locator: locator, Err: err}
	}
	for i := range items {
		items[i].Category = label
	}
	return items, nil
}

// EnsureCategoryLoaded fetches and merges label unless it is a pseudo
// category or already loaded. Failures are logged and leave the category
// unloaded so a later call can retry. Concurrent calls for one label share a
// single fetch.
func (l *Loader) EnsureCategoryLoaded(ctx context.Context, label string) {
	if label == All || label == Custom || label == "" {
		return
	}
	if l.sink.IsLoaded(label) {
		events.Catalog.Skip(label, "loaded")
		return
	}
	_, _, _ = l.group.Do(label, func() (interface{}, error) {
		if l.sink.IsLoaded(label) {
			return nil, nil
		}
		items, err := l.LoadCategory(ctx, label)
		if err != nil {
			logging.Error(err)
			events.Catalog.LoadFailed(label, err)
			return nil, nil
		}
		if l.sink.MergeCategory(label, items) {
			events.Catalog.Loaded(label, len(items))
		}
		return nil, nil
	})
}

// EnsureAllCategoriesLoaded loads every concrete category not yet loaded and
// waits until each attempt has settled.
func (l *Loader) EnsureAllCategoriesLoaded(ctx context.Context) {
	var pending []string
	for _, label := range l.registry.Concrete() {
		if !l.sink.IsLoaded(label) {
			pending = append(pending, label)
		}
	}
	if len(pending) == 0 {
		return
	}
	var g errgroup.Group
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for _, label := range pending {
		g.Go(func() error {
			l.EnsureCategoryLoaded(ctx, label)
			return nil
		})
	}
	_ = g.Wait()
	loaded := 0
	for _, label := range pending {
		if l.sink.IsLoaded(label) {
			loaded++
		}
	}
	events.Catalog.Settled(len(pending), loaded)
}

// LoadKaomoji fetches the kaomoji list.
func (l *Loader) LoadKaomoji(ctx context.Context) ([]Item, error) {
	events.Catalog.Fetch("kaomoji", l.source.Describe(KaomojiLocator))
	items, err := l.fetchItems(ctx, KaomojiLocator)
	if err != nil {
		return nil, &FetchError{Category: "kaomoji", Locator: KaomojiLocator, Err: err}
	}
	for i := range items {
		items[i].Category = ""
	}
	events.Catalog.Loaded("kaomoji", len(items))
	return items, nil
}

func (l *Loader) fetchItems(ctx context.Context, locator string) ([]Item, error) {
	data, err := l.source.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	return decodeItems(data)
}

func decodeItems(data []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}
	var items []Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = items[i].Normalize()
	}
	return items, nil
}
