package render

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell widths in terminal columns, including the gap to the next cell.
const (
	EmojiCellWidth   = 5
	KaomojiCellWidth = 18
)

// CellWidth returns the terminal width reserved for one cell of tab.
func CellWidth(tab Tab) int {
	if tab == TabKaomoji {
		return KaomojiCellWidth
	}
	return EmojiCellWidth
}

// FitColumns shrinks the tab's default column count to what width can hold.
// Kaomoji views, or favorites and recent views containing kaomoji, use the
// wider cell.
func FitColumns(tab Tab, width int, wide bool) int {
	cols := DefaultColumns(tab)
	cw := CellWidth(tab)
	if wide {
		cw = KaomojiCellWidth
		cols = KaomojiColumns
	}
	if width <= 0 {
		return cols
	}
	fit := width / cw
	if fit < 1 {
		fit = 1
	}
	if fit < cols {
		return fit
	}
	return cols
}

// GlyphWidth measures an emoji grapheme cluster, treating joiner sequences as
// a single glyph.
func GlyphWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Fit truncates s to width columns and pads it on the right.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if GlyphWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	pad := width - GlyphWidth(s)
	if pad > 0 {
		s += runewidth.FillRight("", pad)
	}
	return s
}
