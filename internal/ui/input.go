package ui

import (
	"unicode"

	"github.com/atomicstack/tmux-emoji-popup/internal/i18n"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.level.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// queryChanged resets transient messages and re-renders for the new query.
func (m *Model) queryChanged() tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	return m.refresh()
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.loading {
		return false, nil
	}
	current := m.level
	view := current.Tab
	switch msg.String() {
	case "ctrl+u":
		return m.clearQuery()
	case "ctrl+w":
		before := current.FilterCursorPos()
		if !current.DeleteFilterWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.WordBackspace(view, current.Filter)
		return true, m.queryChanged()
	case "ctrl+a":
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorStart() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(view, current.FilterCursor)
		return true, nil
	case "ctrl+e":
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorEnd() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(view, current.FilterCursor)
		return true, nil
	case "alt+b":
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(view, current.FilterCursor)
		return true, nil
	case "alt+f":
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorWordForward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(view, current.FilterCursor)
		return true, nil
	case "alt+left":
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(view, current.FilterCursor)
		return true, nil
	case "alt+right":
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorRuneForward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(view, current.FilterCursor)
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
			if unicode.IsSpace(r) && len(msg.Runes) == 1 {
				// the dedicated space handler manages single spaces
				return false, nil
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	}
	return false, nil
}

func (m *Model) clearQuery() (bool, tea.Cmd) {
	current := m.level
	if current.Filter == "" {
		return false, nil
	}
	before := current.FilterCursorPos()
	current.ClearFilter()
	m.noteFilterCursorChange(before)
	events.Filter.Cleared(current.Tab)
	return true, m.queryChanged()
}

func (m *Model) appendToFilter(text string) (bool, tea.Cmd) {
	if text == "" {
		return false, nil
	}
	current := m.level
	before := current.FilterCursorPos()
	if !current.InsertFilterText(text) {
		return false, nil
	}
	m.noteFilterCursorChange(before)
	events.Filter.Append(current.Tab, current.Filter)
	return true, m.queryChanged()
}

func (m *Model) removeFilterRune() (bool, tea.Cmd) {
	current := m.level
	before := current.FilterCursorPos()
	if !current.DeleteFilterRuneBackward() {
		return false, nil
	}
	m.noteFilterCursorChange(before)
	events.Filter.Backspace(current.Tab, current.Filter)
	return true, m.queryChanged()
}

func (m *Model) filterPrompt() (string, *lipgloss.Style) {
	current := m.level
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := current.Filter
	if text == "" {
		runes := []rune(i18n.T(m.language(), "search.placeholder"))
		var caretRune, rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest), styles.FilterPlaceholder
	}
	runes := []rune(text)
	pos := current.FilterCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	caret := m.renderFilterCursor(caretRune)
	return prompt + before + caret + after, styles.Filter
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
