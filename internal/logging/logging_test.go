package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withLogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "popup.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := withLogFile(t)
	SetTraceEnabled(false)
	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, got err=%v", err)
	}
}

func TestTraceWritesJSONLines(t *testing.T) {
	path := withLogFile(t)
	SetTraceEnabled(true)
	Trace("filter.append", map[string]interface{}{"filter": "cat"})
	Trace("render", nil)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var events []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry struct {
			Event   string                 `json:"event"`
			Payload map[string]interface{} `json:"payload"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("decode line %q: %v", scanner.Text(), err)
		}
		events = append(events, entry.Event)
		if entry.Event == "filter.append" && entry.Payload["filter"] != "cat" {
			t.Fatalf("expected payload filter cat, got %v", entry.Payload)
		}
	}
	if strings.Join(events, ",") != "filter.append,render" {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestErrorAppendsMessage(t *testing.T) {
	path := withLogFile(t)
	Error(nil)
	Error(errors.New("boom"))
	Errorf("load %s: %w", "표정", errors.New("offline"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "boom") || !strings.Contains(text, "load 표정: offline") {
		t.Fatalf("expected both errors in log, got %q", text)
	}
}

func TestConfigureEmptyRestoresDefault(t *testing.T) {
	withLogFile(t)
	Configure("  ")
	if Path() != DefaultPath() {
		t.Fatalf("expected default path, got %q", Path())
	}
}

func TestDefaultPathHonoursStateHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	want := filepath.Join(dir, "emoji-popup", "emoji-popup.log")
	if got := DefaultPath(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTraceEntriesCarryPID(t *testing.T) {
	path := withLogFile(t)
	SetTraceEnabled(true)
	Trace("app.start", nil)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		PID int `json:"pid"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.PID != os.Getpid() {
		t.Fatalf("expected pid %d, got %d", os.Getpid(), entry.PID)
	}
}
