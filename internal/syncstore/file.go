package syncstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultStorePath = "~/.config/emoji-popup/sync.toml"

// DefaultPath returns the default sync store location.
func DefaultPath() string {
	return defaultStorePath
}

// FileStore persists values as a TOML document. Several popups may share the
// file; Reload picks up writes made by other processes.
type FileStore struct {
	path string

	mu      sync.Mutex
	data    Values
	modTime time.Time
	size    int64
	// external changes picked up by Set, handed out by the next Reload
	pending ChangeSet
}

// OpenFile resolves path and reads the current document if it exists. A
// corrupt document is treated as empty so the popup still starts.
func OpenFile(path string) (*FileStore, error) {
	resolved, err := resolvePath(path, defaultStorePath)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	s := &FileStore{path: resolved, data: Values{}}
	if _, err := s.reloadLocked(); err != nil {
		return s, err
	}
	return s, nil
}

// Path returns the resolved file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, keys ...string) (Values, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return pick(s.data, keys), nil
}

// Set re-reads the document, merges values over it key by key and rewrites
// the file. Keys written by other processes since the last Reload survive and
// are reported by the next Reload.
func (s *FileStore) Set(ctx context.Context, values Values) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	external, err := s.reloadLocked()
	if err != nil {
		var decodeErr *toml.DecodeError
		if !errors.As(err, &decodeErr) {
			return err
		}
	}
	s.pending = mergeChanges(s.pending, external)

	next := make(Values, len(s.data)+len(values))
	for k, v := range s.data {
		next[k] = v
	}
	for k, v := range values {
		next[k] = v
	}
	encoded, err := toml.Marshal(map[string]interface{}(next))
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := writeAtomic(s.path, encoded); err != nil {
		return err
	}
	decoded := Values{}
	if err := toml.Unmarshal(encoded, &decoded); err != nil {
		return fmt.Errorf("decode store: %w", err)
	}
	// keys this call wrote supersede whatever another process left there
	for k := range values {
		delete(s.pending, k)
	}
	s.data = decoded
	s.stat()
	return nil
}

// Reload re-reads the file when it changed on disk and reports the keys whose
// values differ from the last known state, including changes Set merged in.
func (s *FileStore) Reload() (ChangeSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changes, err := s.reloadLocked()
	changes = mergeChanges(s.pending, changes)
	s.pending = nil
	if len(changes) == 0 {
		return nil, err
	}
	return changes, err
}

// mergeChanges folds later into earlier, keeping the oldest OldValue per key.
func mergeChanges(earlier, later ChangeSet) ChangeSet {
	if len(later) == 0 {
		return earlier
	}
	if earlier == nil {
		earlier = ChangeSet{}
	}
	for k, change := range later {
		if prev, ok := earlier[k]; ok {
			change.OldValue = prev.OldValue
		}
		if reflect.DeepEqual(change.OldValue, change.NewValue) {
			delete(earlier, k)
			continue
		}
		earlier[k] = change
	}
	return earlier
}

func (s *FileStore) reloadLocked() (ChangeSet, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat store: %w", err)
	}
	if info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return nil, nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	s.modTime = info.ModTime()
	s.size = info.Size()
	next := Values{}
	if err := toml.Unmarshal(raw, &next); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", s.path, err)
	}
	changes := Diff(s.data, next)
	s.data = next
	if len(changes) == 0 {
		return nil, nil
	}
	return changes, nil
}

func (s *FileStore) stat() {
	if info, err := os.Stat(s.path); err == nil {
		s.modTime = info.ModTime()
		s.size = info.Size()
	}
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".sync-*.toml")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func resolvePath(path, fallback string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = fallback
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
