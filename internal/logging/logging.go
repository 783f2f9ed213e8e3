// Package logging appends error lines and, when enabled, JSON trace entries
// to a single file shared by every popup instance.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const logFileName = "emoji-popup.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = DefaultPath()

	pid = os.Getpid()
)

// DefaultPath places the log under $XDG_STATE_HOME, falling back to
// ~/.local/state and finally the working directory.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "emoji-popup", logFileName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "emoji-popup", logFileName)
	}
	return logFileName
}

// appendTo opens the active log for a single write.
func appendTo(write func(io.Writer) error) {
	mu.Lock()
	path := logPath
	mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if os.IsNotExist(err) {
		if merr := os.MkdirAll(filepath.Dir(path), 0o755); merr == nil {
			f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}

// Error appends err to the log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	line := fmt.Sprintf("%s [%d] %v\n", time.Now().Format("2006/01/02 15:04:05"), pid, err)
	appendTo(func(w io.Writer) error {
		_, werr := io.WriteString(w, line)
		return werr
	})
}

// Errorf formats and logs an error in one step.
func Errorf(format string, args ...interface{}) {
	Error(fmt.Errorf(format, args...))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace currently writes entries.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	PID     int         `json:"pid"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends a JSON line to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := traceEntry{Time: time.Now().UTC(), PID: pid, Event: event, Payload: payload}
	appendTo(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination. Empty values fall back to DefaultPath.
// Missing directories are created; if that fails the working directory is
// used instead.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		path = logFileName
	}
	logPath = path
}

// Path returns the active log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}
