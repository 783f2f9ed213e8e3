package render

import (
	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/virtualscroll"
)

// Default column counts.
const (
	EmojiColumns   = 8
	KaomojiColumns = 3
)

// Geometry is the space available to the grid.
type Geometry struct {
	Columns int
	Scroll  virtualscroll.Config
}

// Grid is the render model of one frame.
type Grid struct {
	Request       Request
	Items         []catalog.Item
	Cells         []Cell
	Columns       int
	Offset        int
	Range         virtualscroll.Range
	TotalHeight   int
	PaddingBottom int
	Scrollbar     virtualscroll.Scrollbar
}

// Len is the size of the full filtered list.
func (g Grid) Len() int {
	return len(g.Items)
}

// Rows chunks the materialised cells by column count.
func (g Grid) Rows() [][]Cell {
	if g.Columns <= 0 {
		return nil
	}
	var rows [][]Cell
	for i := 0; i < len(g.Cells); i += g.Columns {
		end := i + g.Columns
		if end > len(g.Cells) {
			end = len(g.Cells)
		}
		rows = append(rows, g.Cells[i:end])
	}
	return rows
}

// Row returns the row holding item index.
func (g Grid) Row(index int) int {
	if g.Columns <= 0 || index < 0 {
		return 0
	}
	return index / g.Columns
}

// Build runs the full pipeline: list, virtual window, decoration of the
// window only.
func Build(reg *catalog.Registry, req Request, src Sources, amb Ambient, offset int, geo Geometry) Grid {
	return Window(req, List(reg, req, src), amb, offset, geo)
}

// Window lays out an already filtered list. Only the items inside the
// visible range are decorated.
func Window(req Request, items []catalog.Item, amb Ambient, offset int, geo Geometry) Grid {
	cols := geo.Columns
	if cols <= 0 {
		cols = DefaultColumns(req.Tab)
	}
	cfg := geo.Scroll
	offset = virtualscroll.ClampOffset(offset, len(items), cols, cfg)
	r := virtualscroll.CalculateVisibleRange(offset, len(items), cols, cfg)
	cells := make([]Cell, 0, r.End-r.Start)
	for i := r.Start; i < r.End; i++ {
		cells = append(cells, Decorate(items[i], i, amb))
	}
	return Grid{
		Request:       req,
		Items:         items,
		Cells:         cells,
		Columns:       cols,
		Offset:        offset,
		Range:         r,
		TotalHeight:   virtualscroll.CalculateTotalHeight(len(items), cols, cfg.ItemHeight),
		PaddingBottom: virtualscroll.PaddingBottom(len(items), cols, cfg, r),
		Scrollbar:     virtualscroll.CalculateScrollbar(offset, len(items), cols, cfg),
	}
}

// DefaultColumns is the column count of a tab before width fitting.
func DefaultColumns(tab Tab) int {
	if tab == TabKaomoji {
		return KaomojiColumns
	}
	return EmojiColumns
}
