package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	Copy         key.Binding
	Favorite     key.Binding
	SkinTone     key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	AddCustom    key.Binding
	EditCustom   key.Binding
	DeleteCustom key.Binding
	ClearQuery   key.Binding
	Theme        key.Binding
	Language     key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:         key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:         key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:        key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:         key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:          key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Copy:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy")),
		Favorite:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("^f", "favorite")),
		SkinTone:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^t", "skin tone")),
		NextTab:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^n", "next tab")),
		PrevTab:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("^p", "prev tab")),
		NextCategory: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		PrevCategory: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev category")),
		AddCustom:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("^o", "add")),
		EditCustom:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "edit")),
		DeleteCustom: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("^d", "delete")),
		ClearQuery:   key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("^k", "clear search")),
		Theme:        key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "theme")),
		Language:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("^l", "language")),
		Help:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Favorite, k.NextCategory, k.NextTab, k.Help, k.Back}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Copy, k.Favorite, k.SkinTone, k.ClearQuery},
		{k.NextTab, k.PrevTab, k.NextCategory, k.PrevCategory},
		{k.AddCustom, k.EditCustom, k.DeleteCustom},
		{k.Theme, k.Language, k.Help, k.Back, k.Quit},
	}
}
