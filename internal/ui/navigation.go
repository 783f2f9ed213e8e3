package ui

import (
	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		events.App.Exit("quit")
		return tea.Quit
	}
	if m.loading {
		return nil
	}
	m.clearInfo()
	k := m.keys
	switch {
	case key.Matches(keyMsg, k.Back):
		return m.handleEscapeKey()
	case key.Matches(keyMsg, k.Help):
		m.showFullHelp = !m.showFullHelp
		return nil
	case key.Matches(keyMsg, k.Up):
		return m.moveCursor(m.level.MoveCursorUp)
	case key.Matches(keyMsg, k.Down):
		return m.moveCursor(m.level.MoveCursorDown)
	case key.Matches(keyMsg, k.Left):
		return m.moveCursor(m.level.MoveCursorLeft)
	case key.Matches(keyMsg, k.Right):
		return m.moveCursor(m.level.MoveCursorRight)
	case key.Matches(keyMsg, k.PageUp):
		return m.moveCursor(func() bool { return m.level.MoveCursorPageUp(m.gridHeight()) })
	case key.Matches(keyMsg, k.PageDown):
		return m.moveCursor(func() bool { return m.level.MoveCursorPageDown(m.gridHeight()) })
	case key.Matches(keyMsg, k.Home):
		return m.moveCursor(m.level.MoveCursorHome)
	case key.Matches(keyMsg, k.End):
		return m.moveCursor(m.level.MoveCursorEnd)
	case key.Matches(keyMsg, k.Copy):
		return m.copyFocused()
	case key.Matches(keyMsg, k.Favorite):
		return m.toggleFavorite()
	case key.Matches(keyMsg, k.SkinTone):
		return m.openToneSelector()
	case key.Matches(keyMsg, k.NextTab):
		return m.cycleTab(1)
	case key.Matches(keyMsg, k.PrevTab):
		return m.cycleTab(-1)
	case key.Matches(keyMsg, k.NextCategory):
		return m.cycleCategory(1)
	case key.Matches(keyMsg, k.PrevCategory):
		return m.cycleCategory(-1)
	case key.Matches(keyMsg, k.AddCustom):
		return m.openCustomForm(false)
	case key.Matches(keyMsg, k.EditCustom):
		return m.openCustomForm(true)
	case key.Matches(keyMsg, k.DeleteCustom):
		return m.openDeleteConfirm()
	case key.Matches(keyMsg, k.ClearQuery):
		_, cmd := m.clearQuery()
		return cmd
	case key.Matches(keyMsg, k.Theme):
		return m.toggleThemeCmd()
	case key.Matches(keyMsg, k.Language):
		return m.toggleLanguageCmd()
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	return nil
}

// handleEscapeKey closes the help overlay, then clears the query, then quits.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.showFullHelp {
		m.showFullHelp = false
		return nil
	}
	if handled, cmd := m.clearQuery(); handled {
		return cmd
	}
	events.App.Exit("escape")
	return tea.Quit
}

func (m *Model) moveCursor(move func() bool) tea.Cmd {
	if !move() {
		return nil
	}
	m.relayout()
	events.UI.Focus(m.level.Cursor)
	return nil
}

func (m *Model) focus(index int) {
	if index < 0 || index >= len(m.level.Items) || index == m.level.Cursor {
		return
	}
	m.level.Cursor = index
	m.relayout()
	events.UI.Focus(index)
}

func (m *Model) selectTab(tab render.Tab) tea.Cmd {
	if !m.level.SwitchTab(string(tab), catalog.All) {
		return nil
	}
	events.UI.Tab(string(tab))
	m.errMsg = ""
	return m.refresh()
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	tabs := render.Tabs
	idx := 0
	for i, t := range tabs {
		if t == m.tab() {
			idx = i
			break
		}
	}
	next := (idx + delta + len(tabs)) % len(tabs)
	return m.selectTab(tabs[next])
}

// categories returns the category bar entries of the active tab. Favorites
// and recent views have none.
func (m *Model) categories() []string {
	switch m.tab() {
	case render.TabEmoji:
		return m.registry.Categories(false)
	case render.TabKaomoji:
		return m.registry.Categories(true)
	}
	return nil
}

func (m *Model) selectCategory(label string) tea.Cmd {
	if !m.level.SetCategory(label) {
		return nil
	}
	events.UI.Category(m.level.Tab, label)
	return m.refresh()
}

func (m *Model) cycleCategory(delta int) tea.Cmd {
	cats := m.categories()
	if len(cats) == 0 {
		return nil
	}
	idx := 0
	for i, c := range cats {
		if c == m.level.Category {
			idx = i
			break
		}
	}
	next := (idx + delta + len(cats)) % len(cats)
	return m.selectCategory(cats[next])
}

func (m *Model) copyFocused() tea.Cmd {
	cell, ok := m.focusedCell()
	if !ok {
		return nil
	}
	return m.copyCmd(cell.Copy())
}

func (m *Model) toggleFavorite() tea.Cmd {
	cell, ok := m.focusedCell()
	if !ok {
		return nil
	}
	return m.toggleFavoriteCmd(cell.Item.Char)
}

// isKaomojiCell reports whether the focused cell belongs to the kaomoji
// lists, which decides which custom list an edit or delete touches.
func (m *Model) isKaomojiCell(cell render.Cell) bool {
	if cell.Kaomoji {
		return true
	}
	return m.tab() == render.TabKaomoji
}
