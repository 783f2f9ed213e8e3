package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTypingFiltersAndFocusesBestMatch(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.typeText("wave")
	if m.level.Filter != "wave" {
		t.Fatalf("expected query to be typed, got %q", m.level.Filter)
	}
	if len(m.level.Items) != 1 || m.level.Items[0].Char != "👋" {
		t.Fatalf("expected only the waving hand, got %+v", m.level.Items)
	}
	env.key(tea.KeyBackspace)
	if m.level.Filter != "wav" {
		t.Fatalf("expected backspace to drop a rune, got %q", m.level.Filter)
	}
}

func TestQueryMatchesAcrossCategories(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.typeText("high five")
	if len(m.level.Items) != 1 || m.level.Items[0].Char != "✋" {
		t.Fatalf("expected a tag containing a space to match, got %+v", m.level.Items)
	}
}

func TestSingleSpaceAppends(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.typeText("red")
	env.key(tea.KeySpace)
	env.typeText("heart")
	if m.level.Filter != "red heart" {
		t.Fatalf("expected spaced query, got %q", m.level.Filter)
	}
	if len(m.level.Items) != 1 {
		t.Fatalf("expected one heart, got %d", len(m.level.Items))
	}
}

func TestCtrlUClearsQuery(t *testing.T) {
	env := newTestEnv(t, Options{Query: "dog"})
	m := env.model()
	if len(m.level.Items) != 1 {
		t.Fatalf("expected initial query to filter, got %d", len(m.level.Items))
	}
	env.key(tea.KeyCtrlU)
	if m.level.Filter != "" || len(m.level.Items) != 11 {
		t.Fatalf("expected cleared query to restore the list, got %q with %d items", m.level.Filter, len(m.level.Items))
	}
}

func TestCtrlWDeletesWord(t *testing.T) {
	env := newTestEnv(t, Options{Query: "red heart"})
	m := env.model()
	env.key(tea.KeyCtrlW)
	if m.level.Filter != "red " {
		t.Fatalf("expected last word removed, got %q", m.level.Filter)
	}
}

func TestCaretMovementEditsInPlace(t *testing.T) {
	env := newTestEnv(t, Options{Query: "og"})
	m := env.model()
	env.key(tea.KeyCtrlA)
	if m.level.FilterCursorPos() != 0 {
		t.Fatalf("expected caret at start, got %d", m.level.FilterCursorPos())
	}
	env.typeText("d")
	if m.level.Filter != "dog" {
		t.Fatalf("expected insert at caret, got %q", m.level.Filter)
	}
	env.key(tea.KeyCtrlE)
	if m.level.FilterCursorPos() != 3 {
		t.Fatalf("expected caret at end, got %d", m.level.FilterCursorPos())
	}
}

func TestControlRunesIgnored(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'\x01'}})
	if m.level.Filter != "" {
		t.Fatalf("expected control rune to be ignored, got %q", m.level.Filter)
	}
}

func TestTypingClearsError(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	m.errMsg = "boom"
	env.typeText("a")
	if m.errMsg != "" {
		t.Fatalf("expected error to clear on query change")
	}
}
