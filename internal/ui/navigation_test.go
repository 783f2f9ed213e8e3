package ui

import (
	"testing"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
	tea "github.com/charmbracelet/bubbletea"
)

func TestArrowKeysMoveThroughGrid(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	if m.level.Columns != 8 {
		t.Fatalf("expected 8 columns, got %d", m.level.Columns)
	}
	env.key(tea.KeyDown)
	if m.level.Cursor != 8 {
		t.Fatalf("expected down to move one row, got %d", m.level.Cursor)
	}
	env.key(tea.KeyRight)
	if m.level.Cursor != 9 {
		t.Fatalf("expected right to move one cell, got %d", m.level.Cursor)
	}
	env.key(tea.KeyUp)
	if m.level.Cursor != 1 {
		t.Fatalf("expected up to move one row, got %d", m.level.Cursor)
	}
	env.key(tea.KeyEnd)
	if m.level.Cursor != len(m.level.Items)-1 {
		t.Fatalf("expected end to focus last item, got %d", m.level.Cursor)
	}
	env.key(tea.KeyHome)
	if m.level.Cursor != 0 {
		t.Fatalf("expected home to focus first item, got %d", m.level.Cursor)
	}
}

func TestTabCycling(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyTab)
	if m.level.Category == catalog.All {
		t.Fatalf("expected category to change before switching tabs")
	}
	env.key(tea.KeyCtrlN)
	if m.tab() != render.TabKaomoji {
		t.Fatalf("expected kaomoji tab, got %s", m.tab())
	}
	if m.level.Category != catalog.All {
		t.Fatalf("expected tab switch to reset category, got %q", m.level.Category)
	}
	if len(m.level.Items) != 2 {
		t.Fatalf("expected 2 kaomoji, got %d", len(m.level.Items))
	}
	env.key(tea.KeyCtrlP)
	env.key(tea.KeyCtrlP)
	if m.tab() != render.TabRecent {
		t.Fatalf("expected prev tab to wrap to recent, got %s", m.tab())
	}
}

func TestCategoryCycling(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyTab)
	if m.level.Category != "표정" {
		t.Fatalf("expected first concrete category, got %q", m.level.Category)
	}
	if len(m.level.Items) != 2 {
		t.Fatalf("expected 2 emotion emoji, got %d", len(m.level.Items))
	}
	env.key(tea.KeyShiftTab)
	env.key(tea.KeyShiftTab)
	if m.level.Category != catalog.Custom {
		t.Fatalf("expected shift+tab to wrap to custom, got %q", m.level.Category)
	}
	if len(m.level.Items) != 0 {
		t.Fatalf("expected no custom items, got %d", len(m.level.Items))
	}
}

func TestKaomojiCategoryFiltersByTag(t *testing.T) {
	env := newTestEnv(t, Options{Tab: "kaomoji"})
	m := env.model()
	env.key(tea.KeyTab)
	if m.level.Category != "기쁨" {
		t.Fatalf("expected first kaomoji category, got %q", m.level.Category)
	}
	if len(m.level.Items) != 1 || m.level.Items[0].Char != "(＾▽＾)" {
		t.Fatalf("expected the joyful kaomoji, got %+v", m.level.Items)
	}
}

func TestFavoritesTabHasNoCategories(t *testing.T) {
	env := newTestEnv(t, Options{Tab: "favorites"})
	m := env.model()
	env.key(tea.KeyTab)
	if m.level.Category != catalog.All {
		t.Fatalf("expected category to stay All, got %q", m.level.Category)
	}
}

func TestEscapeClearsQueryThenQuits(t *testing.T) {
	env := newTestEnv(t, Options{Query: "dog"})
	m := env.model()
	env.key(tea.KeyEsc)
	if m.level.Filter != "" {
		t.Fatalf("expected escape to clear query, got %q", m.level.Filter)
	}
	if env.harness.Quit() {
		t.Fatalf("expected first escape not to quit")
	}
	env.key(tea.KeyEsc)
	if !env.harness.Quit() {
		t.Fatalf("expected second escape to quit")
	}
}

func TestEscapeClosesHelpFirst(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyF1)
	if !m.showFullHelp {
		t.Fatalf("expected help to open")
	}
	env.key(tea.KeyEsc)
	if m.showFullHelp || env.harness.Quit() {
		t.Fatalf("expected escape to close help without quitting")
	}
}

func TestLoadingBlocksKeysExceptQuit(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	m.loading = true
	env.key(tea.KeyDown)
	if m.level.Cursor != 0 {
		t.Fatalf("expected navigation to be blocked while loading, got %d", m.level.Cursor)
	}
	env.key(tea.KeyCtrlC)
	if !env.harness.Quit() {
		t.Fatalf("expected ctrl+c to quit while loading")
	}
}
