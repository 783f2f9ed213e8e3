package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// TestSession names the session StartTmuxServer creates. Its only pane runs
// cat so text sent to it is echoed back.
const TestSession = "emoji-popup-test"

var errNoPane = errors.New("pane not found")

// RequireTmux skips the calling test when tmux is not on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// StartTmuxServer runs a private tmux server with verbose logging in a fresh
// directory. It returns the socket path, a function that stops the server,
// and the directory holding the server logs.
func StartTmuxServer(t *testing.T) (string, func(), string) {
	t.Helper()
	RequireTmux(t)
	dir, err := os.MkdirTemp("/tmp", "emoji-popup-*")
	if err != nil {
		t.Fatalf("create tmux dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socket := filepath.Join(dir, "tmux.sock")
	start := tmuxCommand(socket, "-f", "/dev/null", "-vv",
		"new-session", "-d", "-x", "80", "-y", "24", "-s", TestSession, "cat")
	// -vv writes tmux-server-<pid>.log into the working directory
	start.Dir = dir
	if err := start.Run(); err != nil {
		t.Skipf("skipping: tmux server did not start: %v", err)
	}

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := killServer(ctx, socket); err != nil {
			t.Logf("kill via control client failed (%v), using kill-server", err)
			_ = tmuxCommand(socket, "kill-server").Run()
		}
	}
	return socket, stop, dir
}

// AssertNoServerCrash fails the test when a server log in logDir records an
// unexpected exit.
func AssertNoServerCrash(t *testing.T, logDir string) {
	t.Helper()
	if logDir == "" {
		return
	}
	logs, _ := filepath.Glob(filepath.Join(logDir, "tmux-server-*.log"))
	for _, path := range logs {
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if strings.Contains(string(content), "server exited unexpectedly") {
			t.Fatalf("tmux server crashed, see %s", path)
		}
	}
}

// FirstPane returns the id of the first pane in session, e.g. "%0".
func FirstPane(t *testing.T, socketPath, session string) string {
	t.Helper()
	out, err := tmuxCommand(socketPath, "list-panes", "-t", session, "-F", "#{pane_id}").Output()
	if err != nil {
		t.Fatalf("list-panes failed: %v", err)
	}
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		t.Fatalf("session %s has no panes", session)
	}
	return fields[0]
}

// WaitForPane polls target until its contents satisfy match or ctx expires.
func WaitForPane(t *testing.T, ctx context.Context, socketPath, target string, match func(string) bool) string {
	t.Helper()
	var last string
	for {
		out, err := capturePane(socketPath, target)
		switch {
		case err == nil:
			last = out
			if match(out) {
				return out
			}
		case !errors.Is(err, errNoPane):
			t.Fatalf("capture %s: %v", target, err)
		}
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for pane %s; last capture:\n%s", target, last)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// capturePane returns the visible text of target. tmux exits 1 while a
// pane it was asked about does not exist yet.
func capturePane(socket, target string) (string, error) {
	out, err := tmuxCommand(socket, "capture-pane", "-p", "-t", target).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return "", errNoPane
	}
	if err != nil {
		return "", fmt.Errorf("capture-pane: %w", err)
	}
	return string(out), nil
}

// tmuxCommand targets socket and hides any tmux session the test runs inside.
func tmuxCommand(socket string, args ...string) *exec.Cmd {
	cmd := exec.Command("tmux", append([]string{"-S", socket}, args...)...)
	env := []string{"TMUX=", "TMUX_TMPDIR=" + filepath.Dir(socket)}
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "TMUX=") && !strings.HasPrefix(kv, "TMUX_TMPDIR=") {
			env = append(env, kv)
		}
	}
	cmd.Env = env
	return cmd
}

func killServer(ctx context.Context, socket string) error {
	client, err := gotmux.NewTmuxWithOptions(socket, gotmux.WithContext(ctx))
	if err != nil {
		return err
	}
	defer client.Close()
	return client.KillServer()
}
