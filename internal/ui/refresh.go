package ui

import (
	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
	"github.com/atomicstack/tmux-emoji-popup/internal/skintone"
	"github.com/atomicstack/tmux-emoji-popup/internal/virtualscroll"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) tab() render.Tab {
	return render.Tab(m.level.Tab)
}

func (m *Model) request() render.Request {
	return render.Request{Tab: m.tab(), Category: m.level.Category, Query: m.level.Query()}
}

func (m *Model) sources() render.Sources {
	p := m.prefs.Preferences()
	return render.Sources{
		Emojis:        m.catalog.Emojis(),
		Kaomoji:       m.catalog.Kaomoji(),
		CustomEmojis:  p.CustomEmojis(),
		CustomKaomoji: p.CustomKaomoji(),
		Favorites:     p.Favorites(),
		Recent:        p.Recent(),
	}
}

// refresh starts a new render: the grid is rebuilt from what is loaded now,
// and any categories the view still needs are fetched in the background.
// Only the completion carrying the latest token triggers the follow-up
// rebuild.
func (m *Model) refresh() tea.Cmd {
	m.renderToken++
	token := m.renderToken
	m.rebuild()
	req := m.request()
	var retry tea.Cmd
	if req.Tab == render.TabKaomoji && !m.kaomojiLoaded {
		retry = m.loadKaomojiCmd()
	}
	plan := render.PlanLoads(req.Tab, req.Category, req.Query)
	if plan.Empty() || m.planSatisfied(plan) {
		m.loadingData = false
		return retry
	}
	m.loadingData = true
	loader, ctx := m.loader, m.ctx
	return tea.Batch(retry, func() tea.Msg {
		if plan.All {
			loader.EnsureAllCategoriesLoaded(ctx)
		} else {
			loader.EnsureCategoryLoaded(ctx, plan.Category)
		}
		return renderReadyMsg{token: token}
	})
}

func (m *Model) planSatisfied(plan render.Plan) bool {
	if !plan.All {
		return m.catalog.IsLoaded(plan.Category)
	}
	for _, label := range m.registry.Concrete() {
		if !m.catalog.IsLoaded(label) {
			return false
		}
	}
	return true
}

func (m *Model) handleRenderReadyMsg(msg tea.Msg) tea.Cmd {
	ready, ok := msg.(renderReadyMsg)
	if !ok {
		return nil
	}
	if ready.token != m.renderToken {
		events.UI.StaleRender(ready.token, m.renderToken)
		return nil
	}
	m.loadingData = false
	m.rebuild()
	return nil
}

// rebuild recomputes the filtered list and lays out the visible window.
func (m *Model) rebuild() {
	req := m.request()
	src := m.sources()
	items := render.List(m.registry, req, src)
	m.level.UpdateItems(items)
	p := m.prefs.Preferences()
	m.amb = render.NewAmbient(src, skintone.Tone(p.SkinTonePreference()), p.ItemSkinTones(), req.Query)
	m.relayout()
}

// relayout recomputes only the visible window of the current list.
func (m *Model) relayout() {
	geo := m.geometry()
	m.level.Columns = geo.Columns
	m.level.EnsureCursorVisible(geo.Scroll)
	m.grid = render.Window(m.request(), m.level.Items, m.amb, m.level.ScrollOffset, geo)
	m.level.ScrollOffset = m.grid.Offset
	events.UI.Render(m.renderToken, m.grid.Len(), m.grid.Range.Start, m.grid.Range.End)
}

func (m *Model) geometry() render.Geometry {
	tab := m.tab()
	wide := tab == render.TabKaomoji
	if tab == render.TabFavorites || tab == render.TabRecent {
		wide = hasWideItems(m.level.Items)
	}
	m.cellWidth = render.CellWidth(tab)
	if wide {
		m.cellWidth = render.KaomojiCellWidth
	}
	return render.Geometry{
		Columns: render.FitColumns(tab, m.gridWidth(), wide),
		Scroll:  m.scrollConfig(),
	}
}

// hasWideItems reports whether any item is wider than a single emoji glyph,
// which puts a favorites or recent view into the kaomoji layout.
func hasWideItems(items []catalog.Item) bool {
	for _, it := range items {
		if render.GlyphWidth(it.Char) > 2 {
			return true
		}
	}
	return false
}

func (m *Model) scrollConfig() virtualscroll.Config {
	return virtualscroll.Config{
		ItemHeight:      itemHeight,
		ContainerHeight: m.gridHeight() * itemHeight,
		Overscan:        scrollOverscan,
	}
}

func (m *Model) gridHeight() int {
	if m.height <= 0 {
		return defaultGridRows
	}
	used := headerRows + statusRows
	if m.showFooter {
		used++
	}
	if rows := m.height - used; rows > 0 {
		return rows
	}
	return 1
}

func (m *Model) gridWidth() int {
	if m.width <= 0 {
		return 0
	}
	if w := m.width - gridRightPadding; w > 0 {
		return w
	}
	return 1
}

// focusedCell decorates the focused item.
func (m *Model) focusedCell() (render.Cell, bool) {
	item, ok := m.level.Current()
	if !ok {
		return render.Cell{}, false
	}
	return render.Decorate(item, m.level.Cursor, m.amb), true
}
