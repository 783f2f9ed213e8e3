package ui

import (
	"time"

	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	tabBarRow      = 0
	categoryBarRow = 1
)

// scrollTickMsg flushes wheel input accumulated since the last frame.
type scrollTickMsg struct {
	token uint64
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		return m.queueScroll(-wheelStep)
	case tea.MouseButtonWheelDown:
		return m.queueScroll(wheelStep)
	}
	if ev.Action != tea.MouseActionPress || m.loading {
		return nil
	}
	switch ev.Y {
	case tabBarRow:
		_, spans := m.tabBar()
		if key, ok := segmentAt(spans, ev.X); ok {
			return m.selectTab(render.Tab(key))
		}
		return nil
	case categoryBarRow:
		_, spans := m.categoryBar()
		if key, ok := segmentAt(spans, ev.X); ok {
			return m.selectCategory(key)
		}
		return nil
	}
	idx, ok := m.cellAt(ev.X, ev.Y)
	if !ok {
		return nil
	}
	m.focus(idx)
	switch ev.Button {
	case tea.MouseButtonLeft:
		if onStarColumn(ev.X, m.cellWidth) {
			return m.toggleFavorite()
		}
		return m.copyFocused()
	case tea.MouseButtonRight:
		return m.openToneSelector()
	}
	return nil
}

// onStarColumn reports whether x falls on the leading favorite column of a
// cell.
func onStarColumn(x, cellWidth int) bool {
	return cellWidth > 0 && x%cellWidth == 0
}

func segmentAt(spans []barSegment, x int) (string, bool) {
	for _, s := range spans {
		if x >= s.start && x < s.end {
			return s.key, true
		}
	}
	return "", false
}

// cellAt maps a screen position to an item index.
func (m *Model) cellAt(x, y int) (int, bool) {
	row := y - headerRows
	if row < 0 || row >= m.gridHeight() || x < 0 || m.cellWidth <= 0 {
		return -1, false
	}
	return m.level.IndexAt(row, x/m.cellWidth, m.scrollConfig())
}

// queueScroll coalesces wheel events so one frame applies their sum.
func (m *Model) queueScroll(delta int) tea.Cmd {
	m.pendingScroll += delta
	m.scrollToken++
	token := m.scrollToken
	return tea.Tick(scrollDebounce, func(time.Time) tea.Msg {
		return scrollTickMsg{token: token}
	})
}

func (m *Model) handleScrollTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(scrollTickMsg)
	if !ok || tick.token != m.scrollToken {
		return nil
	}
	delta := m.pendingScroll
	m.pendingScroll = 0
	if delta == 0 {
		return nil
	}
	if !m.level.ScrollBy(delta*itemHeight, m.scrollConfig()) {
		return nil
	}
	m.relayout()
	events.UI.Scroll(m.level.ScrollOffset)
	return nil
}
