// Package syncstore is the key-value store preferences are persisted to,
// along with the one-time migration from the legacy local store.
package syncstore

import (
	"context"
	"reflect"
	"sort"
	"sync"
)

// Persisted keys.
const (
	KeyFavorites          = "favorites"
	KeyRecent             = "recent"
	KeyTheme              = "theme"
	KeyLanguage           = "language"
	KeyCustomEmojis       = "customEmojis"
	KeyCustomKaomoji      = "customKaomoji"
	KeySkinTonePreference = "skinTonePreference"
	KeyEmojiSkinTones     = "emojiSkinTones"
)

// Keys lists every key the popup reads at startup.
var Keys = []string{
	KeyFavorites,
	KeyRecent,
	KeyTheme,
	KeyLanguage,
	KeyCustomEmojis,
	KeyCustomKaomoji,
	KeySkinTonePreference,
	KeyEmojiSkinTones,
}

// Values maps keys to arbitrary decoded values.
type Values map[string]interface{}

// Store gets and sets named values. Get omits keys that have never been set.
type Store interface {
	Get(ctx context.Context, keys ...string) (Values, error)
	Set(ctx context.Context, values Values) error
}

// Change describes one key that changed outside this process.
type Change struct {
	OldValue interface{}
	NewValue interface{}
}

// ChangeSet groups the changes observed in one notification.
type ChangeSet map[string]Change

// Keys returns the changed keys in sorted order.
func (c ChangeSet) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key changed.
func (c ChangeSet) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Diff compares two snapshots and reports every key whose value differs.
func Diff(prev, next Values) ChangeSet {
	changes := ChangeSet{}
	for k, nv := range next {
		ov, ok := prev[k]
		if !ok || !reflect.DeepEqual(ov, nv) {
			changes[k] = Change{OldValue: ov, NewValue: nv}
		}
	}
	for k, ov := range prev {
		if _, ok := next[k]; !ok {
			changes[k] = Change{OldValue: ov}
		}
	}
	return changes
}

func pick(data Values, keys []string) Values {
	out := make(Values, len(keys))
	if len(keys) == 0 {
		for k, v := range data {
			out[k] = v
		}
		return out
	}
	for _, k := range keys {
		if v, ok := data[k]; ok {
			out[k] = v
		}
	}
	return out
}

// MemoryStore keeps values in memory. Err, when set, fails every call.
type MemoryStore struct {
	mu   sync.Mutex
	data Values
	Err  error
}

// NewMemoryStore returns a store seeded with initial.
func NewMemoryStore(initial Values) *MemoryStore {
	data := Values{}
	for k, v := range initial {
		data[k] = v
	}
	return &MemoryStore{data: data}
}

func (m *MemoryStore) Get(ctx context.Context, keys ...string) (Values, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return pick(m.data, keys), nil
}

func (m *MemoryStore) Set(ctx context.Context, values Values) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for k, v := range values {
		m.data[k] = v
	}
	return nil
}

// Fail makes subsequent calls return err. A nil err restores the store.
func (m *MemoryStore) Fail(err error) {
	m.mu.Lock()
	m.Err = err
	m.mu.Unlock()
}
