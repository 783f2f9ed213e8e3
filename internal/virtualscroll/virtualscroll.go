// Package virtualscroll computes which rows of a fixed-height grid need to be
// materialised for a given scroll offset.
package virtualscroll

// Config describes grid geometry. Heights share one unit: pixels in a
// browser, terminal rows here.
type Config struct {
	ItemHeight      int
	ContainerHeight int
	Overscan        int
}

// Range is the half-open item window [Start, End) with OffsetY the height of
// the skipped leading rows.
type Range struct {
	Start   int
	End     int
	OffsetY int
}

// Rows returns the number of materialised rows for the given column count.
func (r Range) Rows(columns int) int {
	if columns <= 0 || r.End <= r.Start {
		return 0
	}
	return ceilDiv(r.End-r.Start, columns)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return a/b + boolToInt(a%b != 0)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// TotalRows returns ceil(totalItems / columns).
func TotalRows(totalItems, columns int) int {
	if columns <= 0 {
		return 0
	}
	return ceilDiv(totalItems, columns)
}

// CalculateVisibleRange returns the window of items to render. Rows are
// expanded by Overscan on both sides and clamped to the available rows.
// Invalid geometry yields an empty range.
func CalculateVisibleRange(scrollOffset, totalItems, columns int, cfg Config) Range {
	if totalItems <= 0 || columns <= 0 || cfg.ItemHeight <= 0 {
		return Range{}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	overscan := cfg.Overscan
	if overscan < 0 {
		overscan = 0
	}
	visibleRows := ceilDiv(cfg.ContainerHeight, cfg.ItemHeight)
	totalRows := TotalRows(totalItems, columns)
	startRow := scrollOffset / cfg.ItemHeight
	if startRow > totalRows {
		startRow = totalRows
	}

	renderStart := 0
	if startRow > overscan {
		renderStart = startRow - overscan
	}
	if renderStart*columns > totalItems {
		renderStart = totalItems / columns
	}
	// additions stay below totalRows so huge heights or overscan cannot wrap
	renderEnd := totalRows
	if visibleRows < totalRows-startRow {
		renderEnd = startRow + visibleRows
		if overscan < totalRows-renderEnd {
			renderEnd += overscan
		} else {
			renderEnd = totalRows
		}
	}
	if renderEnd < renderStart {
		renderEnd = renderStart
	}

	start := renderStart * columns
	if start > totalItems {
		start = totalItems
	}
	end := totalItems
	if renderEnd < totalRows {
		end = renderEnd * columns
	}
	return Range{Start: start, End: end, OffsetY: renderStart * cfg.ItemHeight}
}

// CalculateTotalHeight returns the full content height of the grid.
func CalculateTotalHeight(totalItems, columns, itemHeight int) int {
	if itemHeight <= 0 {
		return 0
	}
	return TotalRows(totalItems, columns) * itemHeight
}

// PaddingBottom is the trailing space that keeps the scroll extent equal to
// the full content height.
func PaddingBottom(totalItems, columns int, cfg Config, r Range) int {
	total := CalculateTotalHeight(totalItems, columns, cfg.ItemHeight)
	pad := total - r.OffsetY - r.Rows(columns)*cfg.ItemHeight
	if pad < 0 {
		return 0
	}
	return pad
}

// MaxOffset is the largest scroll offset that still fills the container.
func MaxOffset(totalItems, columns int, cfg Config) int {
	max := CalculateTotalHeight(totalItems, columns, cfg.ItemHeight) - cfg.ContainerHeight
	if max < 0 {
		return 0
	}
	return max
}

// ClampOffset bounds offset to [0, MaxOffset].
func ClampOffset(offset, totalItems, columns int, cfg Config) int {
	if offset < 0 {
		return 0
	}
	if max := MaxOffset(totalItems, columns, cfg); offset > max {
		return max
	}
	return offset
}

// OffsetForRow returns the smallest scroll change that brings row into view.
func OffsetForRow(offset, row int, cfg Config) int {
	if cfg.ItemHeight <= 0 {
		return offset
	}
	top := row * cfg.ItemHeight
	bottom := top + cfg.ItemHeight
	if top < offset {
		return top
	}
	if bottom > offset+cfg.ContainerHeight {
		next := bottom - cfg.ContainerHeight
		if next < 0 {
			return 0
		}
		return next
	}
	return offset
}

// Scrollbar is the thumb position and length inside a track of the
// container's height.
type Scrollbar struct {
	Track  int
	Offset int
	Length int
}

// Visible reports whether the content overflows the track.
func (s Scrollbar) Visible() bool {
	return s.Track > 0 && s.Length < s.Track
}

// CalculateScrollbar sizes a scrollbar thumb proportional to the visible
// share of the content.
func CalculateScrollbar(offset, totalItems, columns int, cfg Config) Scrollbar {
	track := cfg.ContainerHeight
	total := CalculateTotalHeight(totalItems, columns, cfg.ItemHeight)
	if track <= 0 || total <= track {
		return Scrollbar{Track: track, Length: track}
	}
	length := track * track / total
	if length < 1 {
		length = 1
	}
	maxOffset := total - track
	offset = ClampOffset(offset, totalItems, columns, cfg)
	pos := 0
	if maxOffset > 0 {
		pos = offset * (track - length) / maxOffset
	}
	return Scrollbar{Track: track, Offset: pos, Length: length}
}
