package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/i18n"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	barSeparator   = " "
	scrollThumb    = "┃"
	scrollTrack    = "│"
	tooltipDivider = "  "
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text already carries ANSI styling; truncate ANSI-aware
}

// barSegment is the column span of one clickable bar entry after the bar has
// been shifted to keep the active entry visible.
type barSegment struct {
	key   string
	start int
	end   int
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, m.gridHeight()+headerRows+statusRows+1)
	tabs, _ := m.tabBar()
	cats, _ := m.categoryBar()
	prompt, _ := m.filterPrompt()
	lines = append(lines,
		styledLine{text: tabs, raw: true},
		styledLine{text: cats, raw: true},
		styledLine{text: prompt, raw: true},
	)
	for _, row := range m.bodyLines() {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	lines = append(lines,
		styledLine{text: m.tooltipLine(), raw: true},
		m.statusLine(),
	)
	if m.showFooter {
		lines = append(lines, styledLine{text: m.help.View(m.keys), raw: true})
	}
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) tabBar() (string, []barSegment) {
	lang := m.language()
	parts := make([]string, 0, len(render.Tabs))
	keys := make([]string, 0, len(render.Tabs))
	active := -1
	for i, tab := range render.Tabs {
		style := styles.Tab
		if tab == m.tab() {
			style = styles.ActiveTab
			active = i
		}
		parts = append(parts, style.Render(i18n.T(lang, "tab."+string(tab))))
		keys = append(keys, string(tab))
	}
	return m.layoutBar(parts, keys, active)
}

// categoryBar lists the categories of the emoji and kaomoji tabs. Favorites
// and recent views show their item count instead.
func (m *Model) categoryBar() (string, []barSegment) {
	cats := m.categories()
	if len(cats) == 0 {
		label := i18n.T(m.language(), "tab."+string(m.tab()))
		return styles.Header.Render(fmt.Sprintf("%s %d", label, len(m.level.Items))), nil
	}
	kaomoji := m.tab() == render.TabKaomoji
	lang := m.language()
	parts := make([]string, 0, len(cats))
	active := -1
	for i, label := range cats {
		style := styles.Category
		if label == m.level.Category {
			style = styles.ActiveCategory
			active = i
		}
		parts = append(parts, style.Render(i18n.CategoryName(label, kaomoji, lang)))
	}
	return m.layoutBar(parts, cats, active)
}

// layoutBar joins rendered entries and, when the bar is wider than the
// window, shifts it left so the active entry stays on screen.
func (m *Model) layoutBar(parts, keys []string, active int) (string, []barSegment) {
	spans := make([]barSegment, 0, len(parts))
	col := 0
	for i, part := range parts {
		if i > 0 {
			col += ansi.StringWidth(barSeparator)
		}
		w := ansi.StringWidth(part)
		spans = append(spans, barSegment{key: keys[i], start: col, end: col + w})
		col += w
	}
	line := strings.Join(parts, barSeparator)
	if m.width <= 0 || col <= m.width || active < 0 {
		return line, spans
	}
	shift := 0
	if end := spans[active].end; end > m.width {
		shift = end - m.width
	}
	if shift == 0 {
		return line, spans
	}
	for i := range spans {
		spans[i].start -= shift
		spans[i].end -= shift
	}
	return ansi.Cut(line, shift, shift+m.width), spans
}

// bodyLines fills the grid area with exactly gridHeight rows.
func (m *Model) bodyLines() []string {
	height := m.gridHeight()
	var rows []string
	switch {
	case m.mode != ModeGrid:
		modal := m.modalView()
		if m.width > 0 {
			modal = lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, modal)
		}
		rows = strings.Split(modal, "\n")
	case m.showFullHelp:
		rows = strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n")
	case m.grid.Len() == 0:
		lang := m.language()
		msg := styles.Info.Render(i18n.T(lang, "grid.empty"))
		if m.loadingData {
			msg = styles.Loading.Render(i18n.T(lang, "grid.loading"))
		}
		rows = []string{msg}
	default:
		rows = m.gridRows(height)
	}
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

func (m *Model) gridRows(height int) []string {
	all := m.grid.Rows()
	skip := (m.grid.Offset - m.grid.Range.OffsetY) / itemHeight
	if skip < 0 {
		skip = 0
	}
	width := m.grid.Columns * m.cellWidth
	sb := m.grid.Scrollbar
	out := make([]string, 0, height)
	for r := 0; r < height; r++ {
		var b strings.Builder
		if idx := skip + r; idx < len(all) {
			for _, cell := range all[idx] {
				b.WriteString(m.renderCell(cell))
			}
		}
		line := b.String()
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		if sb.Visible() {
			if r >= sb.Offset && r < sb.Offset+sb.Length {
				line += " " + styles.ScrollThumb.Render(scrollThumb)
			} else {
				line += " " + styles.ScrollTrack.Render(scrollTrack)
			}
		}
		out = append(out, line)
	}
	return out
}

// renderCell draws the favorite column followed by the glyph.
func (m *Model) renderCell(cell render.Cell) string {
	body := render.Fit(cell.Glyph, m.cellWidth-1)
	if cell.Index == m.level.Cursor {
		return styles.FocusedCell.Render(cell.Marker() + body)
	}
	marker := cell.Marker()
	if cell.Favorite {
		marker = styles.FavoriteOn.Render(marker)
	}
	if cell.Kaomoji {
		return marker + styles.Kaomoji.Render(body)
	}
	return marker + styles.Cell.Render(body)
}

// tooltipLine describes the focused item: favorite state, glyph, tags with
// query matches highlighted, custom affordances and the applied tone.
func (m *Model) tooltipLine() string {
	if m.mode != ModeGrid {
		return ""
	}
	cell, ok := m.focusedCell()
	if !ok {
		return ""
	}
	star := styles.FavoriteOff.Render(cell.Star())
	if cell.Favorite {
		star = styles.FavoriteOn.Render(cell.Star())
	}
	parts := []string{star + " " + cell.Glyph}
	tags := make([]string, 0, len(cell.Tooltip))
	for i, segs := range cell.Tooltip {
		if i < len(cell.Item.Tags) && cell.Item.Tags[i] == catalog.CustomMarker {
			continue
		}
		var b strings.Builder
		for _, seg := range segs {
			if seg.Match {
				b.WriteString(styles.Match.Render(seg.Text))
			} else {
				b.WriteString(styles.Tooltip.Render(seg.Text))
			}
		}
		tags = append(tags, b.String())
	}
	if len(tags) > 0 {
		parts = append(parts, strings.Join(tags, styles.Tooltip.Render(", ")))
	}
	if aff := cell.Affordances(); len(aff) > 0 {
		parts = append(parts, styles.Affordance.Render(strings.Join(aff, " ")))
	}
	if cell.SkinTone {
		parts = append(parts, styles.Affordance.Render(cell.Tone.Name(m.language())))
	}
	return strings.Join(parts, tooltipDivider)
}

func (m *Model) statusLine() styledLine {
	lang := m.language()
	if m.loading {
		label := m.pendingLabel
		if label == "" {
			label = "…"
		}
		return styledLine{text: i18n.T(lang, "grid.loading") + " " + label, style: styles.Loading}
	}
	if m.errMsg != "" {
		return styledLine{text: m.errMsg, style: styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	if m.targetLost {
		return styledLine{text: i18n.T(lang, "status.target"), style: styles.Error}
	}
	if warn, msg := m.hasBackendIssue(); warn {
		return styledLine{text: msg, style: styles.Error}
	}
	p := m.prefs.Preferences()
	hint := fmt.Sprintf("%s  %s · %s",
		i18n.T(lang, "hint.click"),
		i18n.T(lang, "theme."+string(p.Theme())),
		i18n.T(lang, "language.current"))
	return styledLine{text: hint, style: styles.Footer}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.relayout()
	return nil
}

func (m *Model) setInfo(message string) {
	m.setInfoFor(message, infoTTL)
}

func (m *Model) setInfoFor(message string, ttl time.Duration) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(ttl)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if ansi.StringWidth(text) > width {
				text = ansi.Truncate(text, width, "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
