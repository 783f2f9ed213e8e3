package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading           *lipgloss.Style
	Cell              *lipgloss.Style
	FocusedCell       *lipgloss.Style
	Kaomoji           *lipgloss.Style
	FavoriteOn        *lipgloss.Style
	FavoriteOff       *lipgloss.Style
	Affordance        *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Tab               *lipgloss.Style
	ActiveTab         *lipgloss.Style
	Category          *lipgloss.Style
	ActiveCategory    *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	Tooltip           *lipgloss.Style
	Match             *lipgloss.Style
	ScrollTrack       *lipgloss.Style
	ScrollThumb       *lipgloss.Style
	Modal             *lipgloss.Style
	ModalTitle        *lipgloss.Style
	Button            *lipgloss.Style
	ActiveButton      *lipgloss.Style
}

// palette holds the colour slots a theme varies.
type palette struct {
	fg, dim, faint, accent, accentFg, focusBg, warn, err, ok string
}

var (
	darkPalette = palette{
		fg: "252", dim: "245", faint: "238", accent: "33", accentFg: "0",
		focusBg: "238", warn: "220", err: "196", ok: "34",
	}
	lightPalette = palette{
		fg: "235", dim: "242", faint: "252", accent: "25", accentFg: "255",
		focusBg: "254", warn: "172", err: "160", ok: "28",
	}

	darkStyles  = build(darkPalette)
	lightStyles = build(lightPalette)
)

func build(p palette) Styles {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Styles{
		Loading:           ptr(lipgloss.NewStyle().Foreground(c(p.accent)).Italic(true)),
		Cell:              ptr(lipgloss.NewStyle().Foreground(c(p.fg))),
		FocusedCell:       ptr(lipgloss.NewStyle().Foreground(c(p.fg)).Background(c(p.focusBg)).Bold(true)),
		Kaomoji:           ptr(lipgloss.NewStyle().Foreground(c(p.fg))),
		FavoriteOn:        ptr(lipgloss.NewStyle().Foreground(c(p.warn))),
		FavoriteOff:       ptr(lipgloss.NewStyle().Foreground(c(p.faint))),
		Affordance:        ptr(lipgloss.NewStyle().Foreground(c(p.dim))),
		Error:             ptr(lipgloss.NewStyle().Foreground(c(p.err)).Bold(true)),
		Info:              ptr(lipgloss.NewStyle().Foreground(c(p.dim))),
		Header:            ptr(lipgloss.NewStyle().Foreground(c(p.dim)).Bold(true)),
		Tab:               ptr(lipgloss.NewStyle().Foreground(c(p.dim)).Padding(0, 1)),
		ActiveTab:         ptr(lipgloss.NewStyle().Foreground(c(p.accentFg)).Background(c(p.accent)).Bold(true).Padding(0, 1)),
		Category:          ptr(lipgloss.NewStyle().Foreground(c(p.dim))),
		ActiveCategory:    ptr(lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true).Underline(true)),
		Footer:            ptr(lipgloss.NewStyle().Foreground(c(p.dim))),
		Filter:            ptr(lipgloss.NewStyle().Foreground(c(p.fg))),
		FilterPrompt:      ptr(lipgloss.NewStyle().Foreground(c(p.ok)).Bold(true)),
		FilterPlaceholder: ptr(lipgloss.NewStyle().Foreground(c(p.dim))),
		Cursor:            ptr(lipgloss.NewStyle().Foreground(c(p.accentFg)).Background(c(p.accent)).Blink(true)),
		Tooltip:           ptr(lipgloss.NewStyle().Foreground(c(p.dim))),
		Match:             ptr(lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true)),
		ScrollTrack:       ptr(lipgloss.NewStyle().Foreground(c(p.faint))),
		ScrollThumb:       ptr(lipgloss.NewStyle().Foreground(c(p.accent))),
		Modal:             ptr(lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c(p.accent)).Padding(0, 1)),
		ModalTitle:        ptr(lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true)),
		Button:            ptr(lipgloss.NewStyle().Foreground(c(p.dim)).Padding(0, 1)),
		ActiveButton:      ptr(lipgloss.NewStyle().Foreground(c(p.accentFg)).Background(c(p.accent)).Padding(0, 1)),
	}
}

// Default exposes the dark style set.
func Default() *Styles {
	return &darkStyles
}

// For returns the style set for a theme name. Unknown names use the dark set.
func For(name string) *Styles {
	if name == "light" {
		return &lightStyles
	}
	return &darkStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
