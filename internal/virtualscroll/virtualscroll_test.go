package virtualscroll

import (
	"math"
	"testing"
)

func TestCalculateVisibleRangeExample(t *testing.T) {
	cfg := Config{ItemHeight: 60, ContainerHeight: 200, Overscan: 1}
	r := CalculateVisibleRange(120, 100, 8, cfg)
	// start row floor(120/60)-1 = 1, end row 2+ceil(200/60)+1 = 7
	if r.Start != 8 {
		t.Fatalf("expected start 8, got %d", r.Start)
	}
	if r.End != 56 {
		t.Fatalf("expected end 56, got %d", r.End)
	}
	if r.OffsetY != 60 {
		t.Fatalf("expected offsetY 60, got %d", r.OffsetY)
	}
}

func TestCalculateVisibleRangeClampsToTotal(t *testing.T) {
	cfg := Config{ItemHeight: 50, ContainerHeight: 200, Overscan: 2}
	r := CalculateVisibleRange(10_000, 30, 8, cfg)
	if r.Start > r.End || r.End != 30 {
		t.Fatalf("expected window clamped to total, got %+v", r)
	}
	if r.OffsetY != (r.Start/8)*50 {
		t.Fatalf("expected offset aligned to start row, got %+v", r)
	}
}

func TestCalculateVisibleRangeInvariants(t *testing.T) {
	cfgs := []Config{
		{ItemHeight: 1, ContainerHeight: 10, Overscan: 2},
		{ItemHeight: 46, ContainerHeight: 200, Overscan: 2},
		{ItemHeight: 50, ContainerHeight: 0, Overscan: 0},
		{ItemHeight: 7, ContainerHeight: 33, Overscan: 5},
	}
	for _, cfg := range cfgs {
		for total := 0; total < 60; total += 7 {
			for cols := 1; cols <= 9; cols += 2 {
				for offset := -10; offset < 600; offset += 37 {
					r := CalculateVisibleRange(offset, total, cols, cfg)
					if r.Start < 0 || r.Start > r.End || r.End > total {
						t.Fatalf("bad range %+v for total=%d cols=%d offset=%d cfg=%+v", r, total, cols, offset, cfg)
					}
					if total > 0 && r.OffsetY != (r.Start/cols)*cfg.ItemHeight {
						t.Fatalf("offset %d not aligned to start %d (cols=%d cfg=%+v)", r.OffsetY, r.Start, cols, cfg)
					}
					if r.OffsetY < 0 || r.OffsetY%cfg.ItemHeight != 0 {
						t.Fatalf("offset %d is not a non-negative multiple of %d", r.OffsetY, cfg.ItemHeight)
					}
				}
			}
		}
	}
}

func TestCalculateVisibleRangeExtremeValues(t *testing.T) {
	cases := []struct {
		offset, total, cols int
		cfg                 Config
	}{
		{math.MaxInt, 100, 8, Config{ItemHeight: 1, ContainerHeight: 10}},
		{math.MaxInt, 100, 8, Config{ItemHeight: 1, ContainerHeight: 10, Overscan: 3}},
		{math.MaxInt - 5, 97, 8, Config{ItemHeight: 3, ContainerHeight: 10, Overscan: 2}},
		{0, 100, 8, Config{ItemHeight: 1, ContainerHeight: math.MaxInt, Overscan: math.MaxInt}},
		{50, 100, 8, Config{ItemHeight: 1, ContainerHeight: 4, Overscan: math.MaxInt}},
	}
	for _, tc := range cases {
		r := CalculateVisibleRange(tc.offset, tc.total, tc.cols, tc.cfg)
		if r.Start < 0 || r.Start > r.End || r.End > tc.total {
			t.Fatalf("bad range %+v for offset=%d total=%d cols=%d cfg=%+v", r, tc.offset, tc.total, tc.cols, tc.cfg)
		}
		if r.OffsetY != (r.Start/tc.cols)*tc.cfg.ItemHeight {
			t.Fatalf("offset %d not aligned to start %d (cfg=%+v)", r.OffsetY, r.Start, tc.cfg)
		}
	}
	r := CalculateVisibleRange(math.MaxInt, 100, 8, Config{ItemHeight: 1, ContainerHeight: 10})
	if r.Start != 96 || r.End != 100 {
		t.Fatalf("expected the last partial row [96,100), got %+v", r)
	}
}

func TestCalculateVisibleRangeInvalidGeometry(t *testing.T) {
	if r := CalculateVisibleRange(0, 10, 0, Config{ItemHeight: 1}); r != (Range{}) {
		t.Fatalf("expected empty range for zero columns, got %+v", r)
	}
	if r := CalculateVisibleRange(0, 10, 3, Config{}); r != (Range{}) {
		t.Fatalf("expected empty range for zero height, got %+v", r)
	}
}

func TestCalculateTotalHeight(t *testing.T) {
	for n := 0; n < 40; n++ {
		for c := 1; c < 10; c++ {
			for h := 1; h < 4; h++ {
				want := ((n + c - 1) / c) * h
				if got := CalculateTotalHeight(n, c, h); got != want {
					t.Fatalf("n=%d c=%d h=%d: expected %d, got %d", n, c, h, want, got)
				}
			}
		}
	}
}

func TestPaddingBottomPreservesExtent(t *testing.T) {
	cfg := Config{ItemHeight: 2, ContainerHeight: 6, Overscan: 1}
	total, cols := 45, 4
	for offset := 0; offset <= MaxOffset(total, cols, cfg); offset++ {
		r := CalculateVisibleRange(offset, total, cols, cfg)
		pad := PaddingBottom(total, cols, cfg, r)
		extent := r.OffsetY + r.Rows(cols)*cfg.ItemHeight + pad
		if extent != CalculateTotalHeight(total, cols, cfg.ItemHeight) {
			t.Fatalf("offset %d: extent %d does not match total height", offset, extent)
		}
	}
}

func TestClampAndOffsetForRow(t *testing.T) {
	cfg := Config{ItemHeight: 1, ContainerHeight: 5}
	if got := ClampOffset(100, 20, 2, cfg); got != 5 {
		t.Fatalf("expected max offset 5, got %d", got)
	}
	if got := ClampOffset(-3, 20, 2, cfg); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := OffsetForRow(0, 7, cfg); got != 3 {
		t.Fatalf("expected scroll to 3, got %d", got)
	}
	if got := OffsetForRow(4, 2, cfg); got != 2 {
		t.Fatalf("expected scroll up to 2, got %d", got)
	}
	if got := OffsetForRow(2, 4, cfg); got != 2 {
		t.Fatalf("expected offset unchanged, got %d", got)
	}
}

func TestCalculateScrollbar(t *testing.T) {
	cfg := Config{ItemHeight: 1, ContainerHeight: 10}
	if sb := CalculateScrollbar(0, 10, 2, cfg); sb.Visible() {
		t.Fatalf("expected no scrollbar when content fits, got %+v", sb)
	}
	sb := CalculateScrollbar(30, 80, 2, cfg)
	if !sb.Visible() || sb.Length != 2 {
		t.Fatalf("expected visible thumb of 2, got %+v", sb)
	}
	if sb.Offset+sb.Length != sb.Track {
		t.Fatalf("expected thumb at bottom for max offset, got %+v", sb)
	}
}
