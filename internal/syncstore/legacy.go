package syncstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
)

// MigratedFlag marks the legacy store as already copied.
const MigratedFlag = "__migrated_to_sync__"

const defaultLegacyPath = "~/.config/emoji-popup/local.json"

// DefaultLegacyPath returns the default legacy store location.
func DefaultLegacyPath() string {
	return defaultLegacyPath
}

// Legacy is the flat string store earlier versions wrote preferences to.
type Legacy interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MapLegacy is an in-memory Legacy.
type MapLegacy map[string]string

func (m MapLegacy) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapLegacy) Set(key, value string) error {
	m[key] = value
	return nil
}

// LegacyFile is a JSON object of string values on disk.
type LegacyFile struct {
	path string
	mu   sync.Mutex
}

// OpenLegacy resolves the legacy file path. The file need not exist.
func OpenLegacy(path string) (*LegacyFile, error) {
	resolved, err := resolvePath(path, defaultLegacyPath)
	if err != nil {
		return nil, fmt.Errorf("resolve legacy path: %w", err)
	}
	return &LegacyFile{path: resolved}, nil
}

func (l *LegacyFile) read() (map[string]string, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode legacy store: %w", err)
	}
	return values, nil
}

func (l *LegacyFile) Get(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	values, err := l.read()
	if err != nil {
		logging.Error(err)
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (l *LegacyFile) Set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	values, err := l.read()
	if err != nil {
		values = map[string]string{}
	}
	values[key] = value
	encoded, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(l.path, encoded)
}

// Migrate copies legacy favorites, recent items, theme and custom items into
// store once. Nothing is copied after MigratedFlag has been set, and the flag
// is only set once the copy succeeded.
func Migrate(ctx context.Context, legacy Legacy, store Store) error {
	if flag, _ := legacy.Get(MigratedFlag); flag == "1" {
		return nil
	}
	payload := Values{}
	for _, key := range []string{KeyFavorites, KeyRecent, KeyCustomEmojis, KeyCustomKaomoji} {
		raw, ok := legacy.Get(key)
		if !ok || raw == "" {
			continue
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			logging.Errorf("skip legacy %s: %w", key, err)
			continue
		}
		payload[key] = decoded
	}
	if theme, ok := legacy.Get(KeyTheme); ok && theme != "" {
		payload[KeyTheme] = theme
	}
	if len(payload) > 0 {
		if err := store.Set(ctx, payload); err != nil {
			return fmt.Errorf("migrate legacy store: %w", err)
		}
		keys := make([]string, 0, len(payload))
		for k := range payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		events.Storage.Migrated(keys)
	}
	return legacy.Set(MigratedFlag, "1")
}
