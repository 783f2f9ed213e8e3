package table

import (
	"strings"
	"testing"
)

func TestFormatAlignsWideGlyphs(t *testing.T) {
	rows := [][]string{
		{"😀", "Smileys", "smile"},
		{"(^_^)", "Joy", "happy"},
	}
	lines := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignLeft})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	first := strings.Index(lines[0], "Smileys")
	second := strings.Index(lines[1], "Joy")
	// compare visible prefix widths, not byte offsets
	if got, want := cellWidth(lines[0][:first]), cellWidth(lines[1][:second]); got != want {
		t.Fatalf("expected second column at the same column, got %d and %d", got, want)
	}
	if strings.HasSuffix(lines[1], " ") {
		t.Fatalf("expected no trailing padding, got %q", lines[1])
	}
}

func TestFormatRightAlign(t *testing.T) {
	lines := Format([][]string{{"a", "1"}, {"b", "100"}}, []Alignment{AlignLeft, AlignRight})
	if lines[0] != "a    1" {
		t.Fatalf("expected right aligned count, got %q", lines[0])
	}
	if lines[1] != "b  100" {
		t.Fatalf("expected %q, got %q", "b  100", lines[1])
	}
}

func TestFormatPaintedSeesColumns(t *testing.T) {
	var columns []int
	lines := FormatPainted([][]string{{"x", "y"}}, nil, func(col int, cell string) string {
		columns = append(columns, col)
		return "<" + cell + ">"
	})
	if lines[0] != "<x>  <y>" {
		t.Fatalf("expected painted cells, got %q", lines[0])
	}
	if len(columns) != 2 || columns[0] != 0 || columns[1] != 1 {
		t.Fatalf("expected columns [0 1], got %v", columns)
	}
}

func TestFormatEmpty(t *testing.T) {
	if lines := Format(nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
