package state

import "github.com/atomicstack/tmux-emoji-popup/internal/virtualscroll"

func (l *Level) columns() int {
	if l.Columns < 1 {
		return 1
	}
	return l.Columns
}

// MoveCursorBy moves focus by delta cells, clamped to the list.
func (l *Level) MoveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clampInt(l.Cursor+delta, 0, len(l.Items)-1)
	return l.Cursor != old
}

// MoveCursorLeft focuses the previous cell.
func (l *Level) MoveCursorLeft() bool {
	return l.MoveCursorBy(-1)
}

// MoveCursorRight focuses the next cell.
func (l *Level) MoveCursorRight() bool {
	return l.MoveCursorBy(1)
}

// MoveCursorUp focuses the cell one row above. Nothing happens on the first
// row.
func (l *Level) MoveCursorUp() bool {
	if l.Cursor-l.columns() < 0 {
		return false
	}
	return l.MoveCursorBy(-l.columns())
}

// MoveCursorDown focuses the cell one row below. From the row above a short
// last row, focus lands on the last item.
func (l *Level) MoveCursorDown() bool {
	cols := l.columns()
	if l.Cursor/cols >= (len(l.Items)-1)/cols {
		return false
	}
	return l.MoveCursorBy(cols)
}

// MoveCursorHome focuses the first cell.
func (l *Level) MoveCursorHome() bool {
	return l.MoveCursorBy(-len(l.Items))
}

// MoveCursorEnd focuses the last cell.
func (l *Level) MoveCursorEnd() bool {
	return l.MoveCursorBy(len(l.Items))
}

// MoveCursorPageUp moves focus up by rows rows.
func (l *Level) MoveCursorPageUp(rows int) bool {
	return l.MoveCursorBy(-pageRows(rows) * l.columns())
}

// MoveCursorPageDown moves focus down by rows rows.
func (l *Level) MoveCursorPageDown(rows int) bool {
	return l.MoveCursorBy(pageRows(rows) * l.columns())
}

func pageRows(rows int) int {
	if rows < 1 {
		return 1
	}
	return rows
}

// EnsureCursorVisible scrolls the least distance that shows the focused row.
func (l *Level) EnsureCursorVisible(cfg virtualscroll.Config) {
	l.clampCursor()
	row := l.Cursor / l.columns()
	l.ScrollOffset = virtualscroll.OffsetForRow(l.ScrollOffset, row, cfg)
	l.ScrollOffset = virtualscroll.ClampOffset(l.ScrollOffset, len(l.Items), l.columns(), cfg)
}

// ScrollBy moves the viewport by delta height units and pulls focus into the
// visible rows, keeping its column.
func (l *Level) ScrollBy(delta int, cfg virtualscroll.Config) bool {
	old := l.ScrollOffset
	l.ScrollOffset = virtualscroll.ClampOffset(l.ScrollOffset+delta, len(l.Items), l.columns(), cfg)
	if l.ScrollOffset == old {
		return false
	}
	l.keepCursorInView(cfg)
	return true
}

func (l *Level) keepCursorInView(cfg virtualscroll.Config) {
	if cfg.ItemHeight <= 0 || len(l.Items) == 0 {
		return
	}
	cols := l.columns()
	first := ceilDiv(l.ScrollOffset, cfg.ItemHeight)
	last := (l.ScrollOffset+cfg.ContainerHeight)/cfg.ItemHeight - 1
	if last < first {
		last = first
	}
	row, col := l.Cursor/cols, l.Cursor%cols
	switch {
	case row < first:
		row = first
	case row > last:
		row = last
	default:
		return
	}
	l.Cursor = row*cols + col
	l.clampCursor()
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// IndexAt maps a visible grid position to an item index. row counts from the
// top of the viewport.
func (l *Level) IndexAt(row, col int, cfg virtualscroll.Config) (int, bool) {
	cols := l.columns()
	if cfg.ItemHeight <= 0 || row < 0 || col < 0 || col >= cols {
		return -1, false
	}
	idx := (l.ScrollOffset/cfg.ItemHeight+row/cfg.ItemHeight)*cols + col
	if idx >= len(l.Items) {
		return -1, false
	}
	return idx, true
}
