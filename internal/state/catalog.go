// Package state owns the in-memory item collections and preference mirrors
// shared by the loader, the renderer and the UI.
package state

import (
	"sort"
	"sync"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
)

// CatalogStore holds built-in items. Emoji are append-only; a category is
// marked loaded in the same critical section that merges its items.
type CatalogStore interface {
	Emojis() []catalog.Item
	Kaomoji() []catalog.Item
	SetKaomoji([]catalog.Item)
	IsLoaded(label string) bool
	LoadedCategories() []string
	MergeCategory(label string, items []catalog.Item) bool
}

type catalogStore struct {
	mu      sync.RWMutex
	emojis  []catalog.Item
	kaomoji []catalog.Item
	loaded  map[string]struct{}
}

// NewCatalogStore returns an empty store.
func NewCatalogStore() CatalogStore {
	return &catalogStore{loaded: make(map[string]struct{})}
}

func (s *catalogStore) Emojis() []catalog.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.Item(nil), s.emojis...)
}

func (s *catalogStore) Kaomoji() []catalog.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.Item(nil), s.kaomoji...)
}

func (s *catalogStore) SetKaomoji(items []catalog.Item) {
	s.mu.Lock()
	s.kaomoji = catalog.CloneItems(items)
	s.mu.Unlock()
}

func (s *catalogStore) IsLoaded(label string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loaded[label]
	return ok
}

func (s *catalogStore) LoadedCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.loaded))
	for label := range s.loaded {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// MergeCategory appends items and marks label loaded. It returns false and
// leaves the store untouched when label was already loaded.
func (s *catalogStore) MergeCategory(label string, items []catalog.Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loaded[label]; ok {
		return false
	}
	s.emojis = append(s.emojis, catalog.CloneItems(items)...)
	s.loaded[label] = struct{}{}
	return true
}
