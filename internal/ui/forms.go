package ui

import (
	"strings"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/i18n"
	"github.com/atomicstack/tmux-emoji-popup/internal/prefs"
	"github.com/atomicstack/tmux-emoji-popup/internal/skintone"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldChar = iota
	fieldTags
	fieldCategory
	fieldCount
)

// customForm adds or edits a user-defined emoji or kaomoji.
type customForm struct {
	char       textinput.Model
	tags       textinput.Model
	categories []string
	category   int
	focus      int
	err        string
	item       catalog.Item
	oldChar    string
	kaomoji    bool
	lang       string
}

func newFormInput(placeholder string, limit int, static bool) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	if static {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	return ti
}

func newCustomForm(reg *catalog.Registry, kaomoji bool, category, lang string, static bool) *customForm {
	inputKey := "modal.input.emoji"
	categories := reg.CategoryOrder()
	if kaomoji {
		inputKey = "modal.input.kaomoji"
		categories = reg.KaomojiCategories()
	}
	f := &customForm{
		char:       newFormInput(i18n.T(lang, inputKey), 64, static),
		tags:       newFormInput(i18n.T(lang, "modal.input.tags"), 256, static),
		categories: categories,
		kaomoji:    kaomoji,
		lang:       lang,
	}
	f.selectCategory(category)
	f.char.Focus()
	return f
}

// newEditForm prefills the form from an existing custom item. The custom
// marker and a kaomoji's category tag are re-added on save, so they are not
// shown as editable tags.
func newEditForm(reg *catalog.Registry, item catalog.Item, kaomoji bool, lang string, static bool) *customForm {
	category := item.Category
	tags := make([]string, 0, len(item.Tags))
	for _, tag := range item.Tags {
		if tag == catalog.CustomMarker {
			continue
		}
		tags = append(tags, tag)
	}
	if kaomoji {
		category = catalog.Custom
		if len(tags) > 0 && containsString(reg.KaomojiCategories(), tags[0]) {
			category, tags = tags[0], tags[1:]
		}
	}
	f := newCustomForm(reg, kaomoji, category, lang, static)
	f.oldChar = item.Char
	f.char.SetValue(item.Char)
	f.char.CursorEnd()
	f.tags.SetValue(strings.Join(tags, ", "))
	return f
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (f *customForm) selectCategory(label string) {
	f.category = len(f.categories) - 1
	for i, c := range f.categories {
		if c == label {
			f.category = i
			return
		}
	}
}

func (f *customForm) Category() string {
	if len(f.categories) == 0 {
		return catalog.Custom
	}
	return f.categories[f.category]
}

func (f *customForm) Title() string {
	switch {
	case f.oldChar != "":
		return i18n.T(f.lang, "modal.title.edit")
	case f.kaomoji:
		return i18n.T(f.lang, "modal.title.kaomoji")
	}
	return i18n.T(f.lang, "modal.title.emoji")
}

func (f *customForm) setFocus(field int) tea.Cmd {
	f.focus = (field + fieldCount) % fieldCount
	f.char.Blur()
	f.tags.Blur()
	switch f.focus {
	case fieldChar:
		return f.char.Focus()
	case fieldTags:
		return f.tags.Focus()
	}
	return nil
}

func (f *customForm) cycleCategory(delta int) {
	if len(f.categories) == 0 {
		return
	}
	f.category = (f.category + delta + len(f.categories)) % len(f.categories)
}

// Update returns the follow-up command, whether the form was submitted and
// whether it was cancelled.
func (f *customForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return nil, false, true
		case "enter":
			item, err := prefs.BuildCustomItem(f.char.Value(), f.tags.Value(), f.Category(), f.kaomoji)
			if err != nil {
				f.err = i18n.T(f.lang, "modal.error.empty")
				return f.setFocus(fieldChar), false, false
			}
			f.err = ""
			f.item = item
			return nil, true, false
		case "tab", "down":
			return f.setFocus(f.focus + 1), false, false
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1), false, false
		}
		if f.focus == fieldCategory {
			switch keyMsg.String() {
			case "left":
				f.cycleCategory(-1)
			case "right", " ":
				f.cycleCategory(1)
			}
			return nil, false, false
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldChar:
		f.char, cmd = f.char.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok && strings.TrimSpace(f.char.Value()) != "" {
			f.err = ""
		}
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	}
	return cmd, false, false
}

func (f *customForm) View() string {
	label := func(field int, key string) string {
		text := i18n.T(f.lang, key)
		if f.focus == field {
			return styles.ModalTitle.Render("› " + text)
		}
		return styles.Info.Render("  " + text)
	}
	category := i18n.CategoryName(f.Category(), f.kaomoji, f.lang)
	categoryLine := "  ‹ " + category + " ›"
	if f.focus == fieldCategory {
		categoryLine = styles.ActiveCategory.Render(categoryLine)
	}
	lines := []string{
		styles.ModalTitle.Render(f.Title()),
		"",
		label(fieldChar, "modal.input.emoji"),
		"  " + f.char.View(),
		label(fieldTags, "modal.input.tags"),
		"  " + f.tags.View(),
		label(fieldCategory, "modal.input.category"),
		categoryLine,
	}
	if f.kaomoji {
		lines[2] = label(fieldChar, "modal.input.kaomoji")
	}
	if f.err != "" {
		lines = append(lines, "", styles.Error.Render(f.err))
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Button.Render(i18n.T(f.lang, "modal.button.cancel")),
		" ",
		styles.ActiveButton.Render(i18n.T(f.lang, "modal.button.save")),
	)
	lines = append(lines, "", buttons, styles.Footer.Render(i18n.T(f.lang, "modal.hint")))
	return strings.Join(lines, "\n")
}

// deleteConfirm asks before a custom item is removed.
type deleteConfirm struct {
	char    string
	kaomoji bool
	lang    string
}

// Update returns whether the deletion was confirmed and whether the prompt
// was dismissed.
func (d *deleteConfirm) Update(msg tea.KeyMsg) (bool, bool) {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		return true, false
	case "n", "esc":
		return false, true
	}
	return false, false
}

func (d *deleteConfirm) View() string {
	return strings.Join([]string{
		styles.ModalTitle.Render(d.char),
		"",
		i18n.T(d.lang, "modal.delete.confirm"),
	}, "\n")
}

// toneSelector previews every skin tone on one glyph.
type toneSelector struct {
	base    string
	options []skintone.Option
	index   int
	lang    string
}

func newToneSelector(char string, current skintone.Tone, lang string) *toneSelector {
	base := skintone.Strip(char)
	s := &toneSelector{base: base, options: skintone.Options(base, lang), lang: lang}
	for i, opt := range s.options {
		if opt.Tone == current {
			s.index = i
			break
		}
	}
	return s
}

func (s *toneSelector) Selected() skintone.Tone {
	if len(s.options) == 0 {
		return skintone.Default
	}
	return s.options[s.index].Tone
}

func (s *toneSelector) move(delta int) {
	if len(s.options) == 0 {
		return
	}
	s.index = (s.index + delta + len(s.options)) % len(s.options)
}

func (s *toneSelector) View() string {
	cells := make([]string, 0, len(s.options))
	for i, opt := range s.options {
		style := styles.Button
		if i == s.index {
			style = styles.ActiveButton
		}
		cells = append(cells, style.Render(opt.Glyph))
	}
	name := ""
	if len(s.options) > 0 {
		name = s.options[s.index].Name
	}
	return strings.Join([]string{
		styles.ModalTitle.Render(i18n.T(s.lang, "skintone.title")),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
		styles.Info.Render(name),
		"",
		styles.Footer.Render(i18n.T(s.lang, "skintone.hint")),
	}, "\n")
}

func (m *Model) closeModal() {
	m.form = nil
	m.confirm = nil
	m.tones = nil
	m.mode = ModeGrid
}

// modalInput splits messages for an open modal: keys go to the modal, mouse
// events are dropped and everything else continues to the model's handlers.
func (m *Model) modalInput(msg tea.Msg) (tea.KeyMsg, bool, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return msg, false, false
		}
		return msg, true, true
	case tea.MouseMsg:
		return tea.KeyMsg{}, false, true
	}
	return tea.KeyMsg{}, false, false
}

func (m *Model) handleCustomForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.form == nil {
		m.closeModal()
		return false, nil
	}
	keyMsg, isKey, handled := m.modalInput(msg)
	if !isKey {
		if handled {
			return true, nil
		}
		cmd, _, _ := m.form.Update(msg)
		return false, cmd
	}
	cmd, done, cancel := m.form.Update(keyMsg)
	switch {
	case cancel:
		m.closeModal()
		return true, cmd
	case done:
		form := m.form
		m.closeModal()
		return true, m.saveCustomCmd(form.kaomoji, form.oldChar, form.item)
	}
	return true, cmd
}

func (m *Model) handleDeleteConfirm(msg tea.Msg) (bool, tea.Cmd) {
	if m.confirm == nil {
		m.closeModal()
		return false, nil
	}
	keyMsg, isKey, handled := m.modalInput(msg)
	if !isKey {
		return handled, nil
	}
	confirmed, dismissed := m.confirm.Update(keyMsg)
	switch {
	case confirmed:
		confirm := m.confirm
		m.closeModal()
		return true, m.deleteCustomCmd(confirm.kaomoji, confirm.char)
	case dismissed:
		m.closeModal()
	}
	return true, nil
}

func (m *Model) handleToneSelector(msg tea.Msg) (bool, tea.Cmd) {
	if m.tones == nil {
		m.closeModal()
		return false, nil
	}
	keyMsg, isKey, handled := m.modalInput(msg)
	if !isKey {
		return handled, nil
	}
	switch keyMsg.String() {
	case "left", "up", "shift+tab":
		m.tones.move(-1)
	case "right", "down", "tab":
		m.tones.move(1)
	case "enter":
		sel := m.tones
		m.closeModal()
		return true, m.pickToneCmd(sel.base, sel.Selected())
	case "d":
		sel := m.tones
		m.closeModal()
		return true, m.defaultToneCmd(sel.Selected())
	case "esc":
		m.closeModal()
	}
	return true, nil
}

// modalView renders the open modal, or "" when the grid has focus.
func (m *Model) modalView() string {
	var body string
	switch {
	case m.mode == ModeForm && m.form != nil:
		body = m.form.View()
	case m.mode == ModeConfirm && m.confirm != nil:
		body = m.confirm.View()
	case m.mode == ModeSkinTone && m.tones != nil:
		body = m.tones.View()
	default:
		return ""
	}
	return styles.Modal.Render(body)
}
