package table

import (
	"strings"

	"github.com/rivo/uniseg"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Painter decorates a padded cell, typically with colour escapes. It receives
// the column index and must not change the visible width.
type Painter func(column int, cell string) string

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatPainted(rows, alignments, nil)
}

// FormatPainted pads like Format and then passes every cell through paint.
// Trailing padding of the last column is dropped.
func FormatPainted(rows [][]string, alignments []Alignment, paint Painter) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if width := cellWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - cellWidth(cell)
			if c == len(row)-1 && !alignedRight(alignments, c) {
				pad = 0
			}
			var padded strings.Builder
			if alignedRight(alignments, c) {
				writeSpaces(&padded, pad)
				padded.WriteString(cell)
			} else {
				padded.WriteString(cell)
				writeSpaces(&padded, pad)
			}
			text := padded.String()
			if paint != nil {
				text = paint(c, text)
			}
			b.WriteString(text)
		}
		out[i] = b.String()
	}
	return out
}

func alignedRight(alignments []Alignment, column int) bool {
	return column < len(alignments) && alignments[column] == AlignRight
}

// cellWidth counts terminal columns so emoji and joiner sequences line up.
func cellWidth(text string) int {
	return uniseg.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
