package render

import (
	"reflect"
	"testing"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/skintone"
	"github.com/atomicstack/tmux-emoji-popup/internal/virtualscroll"
)

func chars(items []catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Char)
	}
	return out
}

func fixtureSources() Sources {
	return Sources{
		Emojis: []catalog.Item{
			{Char: "😀", Tags: []string{"smile", "웃음"}, Category: "표정"},
			{Char: "👍", Tags: []string{"thumbs", "좋아요"}, Category: "손"},
			{Char: "❤️", Tags: []string{"heart"}, Category: "하트"},
			{Char: "😂", Tags: []string{"laugh"}, Category: "표정"},
		},
		Kaomoji: []catalog.Item{
			{Char: "(^_^)", Tags: []string{"기쁨", "smile"}},
			{Char: "(T_T)", Tags: []string{"슬픔", "cry"}},
		},
		CustomEmojis: []catalog.Item{
			{Char: "🦄", Tags: []string{"unicorn", catalog.CustomMarker}, Category: catalog.Custom},
			{Char: "😀", Tags: []string{"duplicate", catalog.CustomMarker}, Category: catalog.Custom},
		},
		CustomKaomoji: []catalog.Item{
			{Char: "(=^.^=)", Tags: []string{"cat", catalog.Custom}},
		},
	}
}

func TestBaseListEmojiAppendsCustom(t *testing.T) {
	src := fixtureSources()
	got := chars(BaseList(TabEmoji, src))
	want := []string{"😀", "👍", "❤️", "😂", "🦄", "😀"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBaseListFavoritesDedupesFirstWins(t *testing.T) {
	src := fixtureSources()
	src.Favorites = []string{"(=^.^=)", "😀", "missing"}
	got := BaseList(TabFavorites, src)
	if !reflect.DeepEqual(chars(got), []string{"😀", "(=^.^=)"}) {
		t.Fatalf("unexpected favorites %v", chars(got))
	}
	if got[0].Category != "표정" {
		t.Fatalf("expected catalog entry to win over custom duplicate, got %+v", got[0])
	}
}

func TestBaseListRecentKeepsRecencyOrder(t *testing.T) {
	src := fixtureSources()
	src.Recent = []string{"(T_T)", "🦄", "gone", "😀"}
	got := chars(BaseList(TabRecent, src))
	want := []string{"(T_T)", "🦄", "😀"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPlanLoads(t *testing.T) {
	cases := []struct {
		tab      Tab
		category string
		query    string
		want     Plan
	}{
		{TabFavorites, "", "", Plan{All: true}},
		{TabRecent, "", "", Plan{All: true}},
		{TabEmoji, catalog.All, "", Plan{All: true}},
		{TabEmoji, "손", "thumb", Plan{All: true}},
		{TabEmoji, "손", "", Plan{Category: "손"}},
		{TabEmoji, catalog.Custom, "", Plan{}},
		{TabKaomoji, "기쁨", "x", Plan{}},
	}
	for _, tc := range cases {
		if got := PlanLoads(tc.tab, tc.category, tc.query); got != tc.want {
			t.Fatalf("%s/%s/%q: expected %+v, got %+v", tc.tab, tc.category, tc.query, tc.want, got)
		}
	}
	if !PlanLoads(TabKaomoji, "", "").Empty() {
		t.Fatalf("expected kaomoji plan to be empty")
	}
}

func TestListEmojiCategorySortsByChar(t *testing.T) {
	src := fixtureSources()
	got := chars(List(nil, Request{Tab: TabEmoji, Category: "표정"}, src))
	want := []string{"😀", "😂"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestListEmojiAllUsesRegistryOrder(t *testing.T) {
	src := fixtureSources()
	src.CustomEmojis = nil
	got := chars(List(nil, Request{Tab: TabEmoji, Category: catalog.All}, src))
	want := []string{"😀", "😂", "👍", "❤️"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestListKaomojiFiltersByTag(t *testing.T) {
	src := fixtureSources()
	got := chars(List(nil, Request{Tab: TabKaomoji, Category: "기쁨"}, src))
	if !reflect.DeepEqual(got, []string{"(^_^)"}) {
		t.Fatalf("unexpected kaomoji list %v", got)
	}
	custom := chars(List(nil, Request{Tab: TabKaomoji, Category: catalog.Custom}, src))
	if !reflect.DeepEqual(custom, []string{"(=^.^=)"}) {
		t.Fatalf("unexpected custom kaomoji list %v", custom)
	}
}

func TestListFavoritesAppliesQueryOnly(t *testing.T) {
	src := fixtureSources()
	src.Favorites = []string{"👍", "(^_^)", "😀"}
	got := chars(List(nil, Request{Tab: TabFavorites, Category: "손", Query: "SMILE"}, src))
	want := []string{"😀", "(^_^)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDecorateAppliesToneToCapableEmojiOnly(t *testing.T) {
	src := fixtureSources()
	src.Favorites = []string{"👍"}
	amb := NewAmbient(src, skintone.Medium, map[string]string{}, "")

	thumbs := Decorate(src.Emojis[1], 1, amb)
	if !thumbs.SkinTone || thumbs.Glyph != "👍"+string(skintone.Medium) {
		t.Fatalf("expected toned thumbs, got %+v", thumbs)
	}
	if thumbs.Star() != StarOn {
		t.Fatalf("expected favorite star, got %q", thumbs.Star())
	}

	smile := Decorate(src.Emojis[0], 0, amb)
	if smile.SkinTone || smile.Glyph != "😀" || smile.Star() != StarOff {
		t.Fatalf("unexpected smile cell %+v", smile)
	}

	kao := Decorate(src.Kaomoji[0], 0, amb)
	if !kao.Kaomoji || kao.SkinTone {
		t.Fatalf("expected kaomoji without tone, got %+v", kao)
	}
}

func TestDecorateOverrideWinsOverPreference(t *testing.T) {
	src := fixtureSources()
	amb := NewAmbient(src, skintone.Light, map[string]string{"👍": string(skintone.Dark)}, "")
	cell := Decorate(src.Emojis[1], 0, amb)
	if cell.Tone != skintone.Dark || cell.Copy() != "👍"+string(skintone.Dark) {
		t.Fatalf("expected override tone, got %+v", cell)
	}
}

func TestDecorateCustomAffordancesAndHighlight(t *testing.T) {
	src := fixtureSources()
	amb := NewAmbient(src, skintone.Default, nil, "uni")
	cell := Decorate(src.CustomEmojis[0], 4, amb)
	if !cell.Custom || len(cell.Affordances()) != 2 {
		t.Fatalf("expected custom affordances, got %+v", cell)
	}
	if len(cell.Tooltip) != 2 {
		t.Fatalf("expected one tooltip line per tag, got %d", len(cell.Tooltip))
	}
	var matched bool
	for _, seg := range cell.Tooltip[0] {
		if seg.Match && seg.Text == "uni" {
			matched = true
		}
	}
	if !matched {
		t.Fatalf("expected highlighted segment in %+v", cell.Tooltip[0])
	}
	if plain := Decorate(src.Emojis[0], 0, amb); plain.Affordances() != nil {
		t.Fatalf("expected no affordances for catalog item")
	}
}

func manyEmoji(n int) Sources {
	items := make([]catalog.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, catalog.Item{Char: string(rune(0x1F600 + i)), Tags: []string{}, Category: "표정"})
	}
	return Sources{Emojis: items}
}

func TestBuildWindowsAndDecoratesVisibleOnly(t *testing.T) {
	src := manyEmoji(80)
	cfg := virtualscroll.Config{ItemHeight: 1, ContainerHeight: 3, Overscan: 1}
	req := Request{Tab: TabEmoji, Category: "표정"}
	grid := Build(nil, req, src, NewAmbient(src, skintone.Default, nil, ""), 4, Geometry{Columns: 8, Scroll: cfg})

	if grid.Len() != 80 || grid.Columns != 8 {
		t.Fatalf("unexpected grid size %d/%d", grid.Len(), grid.Columns)
	}
	if grid.Range.Start != 24 || grid.Range.End != 64 {
		t.Fatalf("expected window [24,64), got %+v", grid.Range)
	}
	if len(grid.Cells) != 40 || grid.Cells[0].Index != 24 {
		t.Fatalf("expected 40 decorated cells from 24, got %d", len(grid.Cells))
	}
	if rows := grid.Rows(); len(rows) != 5 || len(rows[4]) != 8 {
		t.Fatalf("unexpected rows %d", len(rows))
	}
	if grid.TotalHeight != 10 || grid.Range.OffsetY+5+grid.PaddingBottom != grid.TotalHeight {
		t.Fatalf("padding does not preserve height: %+v pad=%d", grid.Range, grid.PaddingBottom)
	}
	if grid.Row(63) != 7 {
		t.Fatalf("expected row 7, got %d", grid.Row(63))
	}
}

func TestBuildClampsOffset(t *testing.T) {
	src := manyEmoji(10)
	cfg := virtualscroll.Config{ItemHeight: 1, ContainerHeight: 5, Overscan: 2}
	grid := Build(nil, Request{Tab: TabEmoji, Category: catalog.All}, src, Ambient{}, 99, Geometry{Scroll: cfg})
	if grid.Offset != 0 || grid.Columns != EmojiColumns {
		t.Fatalf("expected clamped offset 0 and default columns, got %d/%d", grid.Offset, grid.Columns)
	}
	if len(grid.Cells) != 10 {
		t.Fatalf("expected all cells, got %d", len(grid.Cells))
	}
}

func TestWindowKeepsGivenOrder(t *testing.T) {
	items := []catalog.Item{{Char: "b"}, {Char: "a"}, {Char: "c"}}
	cfg := virtualscroll.Config{ItemHeight: 1, ContainerHeight: 1}
	grid := Window(Request{Tab: TabKaomoji}, items, Ambient{}, 0, Geometry{Scroll: cfg})
	if grid.Columns != KaomojiColumns {
		t.Fatalf("expected kaomoji columns, got %d", grid.Columns)
	}
	if got := chars(grid.Items); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("expected input order, got %v", got)
	}
}

func TestFitColumns(t *testing.T) {
	if got := FitColumns(TabEmoji, 100, false); got != EmojiColumns {
		t.Fatalf("expected %d, got %d", EmojiColumns, got)
	}
	if got := FitColumns(TabEmoji, 12, false); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := FitColumns(TabFavorites, 100, true); got != KaomojiColumns {
		t.Fatalf("expected %d, got %d", KaomojiColumns, got)
	}
	if got := FitColumns(TabKaomoji, 3, false); got != 1 {
		t.Fatalf("expected at least one column, got %d", got)
	}
}

func TestFitPadsAndTruncates(t *testing.T) {
	if got := Fit("ab", 4); got != "ab  " {
		t.Fatalf("expected padded text, got %q", got)
	}
	got := Fit("(^_^)/ 행복 합니다", 8)
	if w := GlyphWidth(got); w != 8 {
		t.Fatalf("expected width 8, got %d (%q)", w, got)
	}
	if GlyphWidth("👩‍💻") != 2 {
		t.Fatalf("expected joined glyph width 2")
	}
}

func TestParseTab(t *testing.T) {
	if ParseTab(" Kaomoji ") != TabKaomoji || ParseTab("nope") != TabEmoji {
		t.Fatalf("unexpected tab parsing")
	}
}
