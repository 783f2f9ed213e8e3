package tmux

import (
	"os/exec"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Pane is the subset of pane state insertion needs.
type Pane struct {
	ID      string
	Title   string
	Command string
	Width   int
	Height  int
	Active  bool
}

type tmuxClient interface {
	ListAllPanes() ([]*gotmux.Pane, error)
	DisplayMessage(target, format string) (string, error)
	Close() error
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

var (
	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string

	newTmux = func(socketPath string) (tmuxClient, error) {
		clientMu.Lock()
		defer clientMu.Unlock()
		if cachedClient != nil && cachedSocket == socketPath {
			return cachedClient, nil
		}
		if cachedClient != nil {
			_ = cachedClient.Close()
			cachedClient = nil
		}
		var (
			client *gotmux.Tmux
			err    error
		)
		if socketPath != "" {
			client, err = gotmux.NewTmux(socketPath)
		} else {
			client, err = gotmux.DefaultTmux()
		}
		if err != nil {
			return nil, err
		}
		cachedClient = client
		cachedSocket = socketPath
		return client, nil
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}
)

// Shutdown closes the cached control-mode connection.
func Shutdown() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil {
		_ = cachedClient.Close()
	}
	cachedClient = nil
	cachedSocket = ""
}
