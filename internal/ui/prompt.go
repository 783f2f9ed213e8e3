package ui

import (
	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises opening a modal: pending status is cleared and the
// action decides which surface takes focus. An action that opens nothing
// leaves the grid focused.
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	m.showFullHelp = false
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

// openCustomForm opens the add form, or the edit form for the focused custom
// item when edit is set.
func (m *Model) openCustomForm(edit bool) tea.Cmd {
	return m.withPrompt(func() promptResult {
		lang := m.language()
		if !edit {
			kaomoji := m.tab() == render.TabKaomoji
			category := m.level.Category
			if category == catalog.All {
				category = catalog.Custom
			}
			m.form = newCustomForm(m.registry, kaomoji, category, lang, m.staticCursor)
			m.mode = ModeForm
			return promptResult{Cmd: m.form.char.Focus()}
		}
		cell, ok := m.focusedCell()
		if !ok || !cell.Custom {
			return promptResult{}
		}
		m.form = newEditForm(m.registry, cell.Item, m.isKaomojiCell(cell), lang, m.staticCursor)
		m.mode = ModeForm
		return promptResult{Cmd: m.form.char.Focus()}
	})
}

func (m *Model) openDeleteConfirm() tea.Cmd {
	return m.withPrompt(func() promptResult {
		cell, ok := m.focusedCell()
		if !ok || !cell.Custom {
			return promptResult{}
		}
		m.confirm = &deleteConfirm{char: cell.Item.Char, kaomoji: m.isKaomojiCell(cell), lang: m.language()}
		m.mode = ModeConfirm
		return promptResult{}
	})
}

// openToneSelector opens the selector for the focused glyph. Glyphs without
// tone support are ignored.
func (m *Model) openToneSelector() tea.Cmd {
	return m.withPrompt(func() promptResult {
		cell, ok := m.focusedCell()
		if !ok || !cell.SkinTone {
			return promptResult{}
		}
		m.tones = newToneSelector(cell.Item.Char, cell.Tone, m.language())
		m.mode = ModeSkinTone
		return promptResult{}
	})
}
