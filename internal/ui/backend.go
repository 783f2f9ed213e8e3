package ui

import (
	"github.com/atomicstack/tmux-emoji-popup/internal/backend"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent folds a storage change or a target pane update into the
// model. Storage changes written by another popup re-render the grid.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		logging.Error(evt.Err)
		if evt.Kind != backend.KindTarget {
			return nil
		}
	}

	res := m.dispatcher.Handle(evt)
	if res.ThemeChanged {
		m.applyTheme()
	}
	if res.TargetChanged {
		m.targetLost = !res.TargetAvailable
	}
	var cmd tea.Cmd
	if res.NeedRender || res.LanguageChanged {
		cmd = m.refresh()
	}
	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
	return cmd
}

// hasBackendIssue reports the most recent poll error still in effect.
func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
