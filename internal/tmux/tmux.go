package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ErrNoPane reports a pane target that tmux does not know.
type ErrNoPane struct {
	Target string
}

func (e *ErrNoPane) Error() string {
	if e.Target == "" {
		return "no target pane"
	}
	return fmt.Sprintf("pane %s not found", e.Target)
}

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

// ResolveSocketPath picks the tmux socket: the flag, then EMOJI_POPUP_SOCKET,
// then the socket named in $TMUX, then the default per-user socket.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("EMOJI_POPUP_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// ListPanes returns every pane on the server.
func ListPanes(socketPath string) ([]Pane, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, err
	}
	panes, err := client.ListAllPanes()
	if err != nil {
		return nil, err
	}
	out := make([]Pane, 0, len(panes))
	for _, p := range panes {
		if p == nil {
			continue
		}
		out = append(out, Pane{
			ID:      p.Id,
			Title:   p.Title,
			Command: p.CurrentCommand,
			Width:   p.Width,
			Height:  p.Height,
			Active:  p.Active,
		})
	}
	return out, nil
}

// PaneExists reports whether target names a live pane.
func PaneExists(socketPath, target string) (bool, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return false, nil
	}
	panes, err := ListPanes(socketPath)
	if err != nil {
		return false, err
	}
	for _, p := range panes {
		if p.ID == target {
			return true, nil
		}
	}
	return false, nil
}

// CurrentPane resolves the pane that launched the popup. TMUX_PANE wins when
// set; otherwise the server is asked for the active pane.
func CurrentPane(socketPath string) (string, error) {
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		return pane, nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return "", err
	}
	id, err := client.DisplayMessage("", "#{pane_id}")
	if err != nil {
		return "", err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &ErrNoPane{}
	}
	return id, nil
}

// SendText types text into target literally, without interpreting key names.
func SendText(socketPath, target, text string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return &ErrNoPane{}
	}
	if text == "" {
		return nil
	}
	args := append(baseArgs(socketPath), "send-keys", "-t", target, "-l", "--", text)
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("send-keys to %s: %w", target, err)
	}
	return nil
}

// DisplayNotice shows a short message on the client's status line.
func DisplayNotice(socketPath, target, message string) error {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	args := baseArgs(socketPath)
	args = append(args, "display-message", "-d", "2000")
	if t := strings.TrimSpace(target); t != "" {
		args = append(args, "-t", t)
	}
	args = append(args, message)
	return runExecCommand("tmux", args...).Run()
}
