// Package state holds the view state of the picker grid: the active tab and
// category, the search query and its caret, the focused cell, and the scroll
// offset.
package state

import (
	"strings"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
)

type refocus int

const (
	refocusNone refocus = iota
	refocusBestMatch
	refocusRestore
)

// Level is the state of one grid view.
type Level struct {
	Tab          string
	Category     string
	Items        []catalog.Item
	Filter       string
	FilterCursor int
	Cursor       int
	LastCursor   int
	Columns      int
	ScrollOffset int

	pending refocus
}

// NewLevel returns an empty grid state for tab and category.
func NewLevel(tab, category string) *Level {
	return &Level{Tab: tab, Category: category, LastCursor: -1, Columns: 1}
}

// SwitchTab moves to another tab. The category resets and focus returns to
// the first cell; the query is kept.
func (l *Level) SwitchTab(tab, category string) bool {
	if l.Tab == tab && l.Category == category {
		return false
	}
	l.Tab = tab
	l.Category = category
	l.resetPosition()
	return true
}

// SetCategory changes the category filter and scrolls back to the top.
func (l *Level) SetCategory(category string) bool {
	if l.Category == category {
		return false
	}
	l.Category = category
	l.resetPosition()
	return true
}

func (l *Level) resetPosition() {
	l.Cursor = 0
	l.LastCursor = -1
	l.ScrollOffset = 0
	l.pending = refocusNone
}

// SetFilter updates the query text and caret. Focus is resolved on the next
// UpdateItems: a fresh query focuses the best match, clearing the query
// restores the cell focused before searching.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	l.Filter = query
	l.FilterCursor = clampInt(cursor, 0, len([]rune(query)))
	switch {
	case trimmed != "":
		if prevTrimmed == "" {
			l.LastCursor = l.Cursor
		}
		l.pending = refocusBestMatch
	case prevTrimmed != "":
		l.pending = refocusRestore
	}
}

// Query returns the trimmed query.
func (l *Level) Query() string {
	return strings.TrimSpace(l.Filter)
}

// UpdateItems replaces the visible list and applies any pending focus change.
func (l *Level) UpdateItems(items []catalog.Item) {
	l.Items = items
	switch l.pending {
	case refocusBestMatch:
		if idx := catalog.BestMatchIndex(items, l.Filter); idx >= 0 {
			l.Cursor = idx
		} else {
			l.Cursor = 0
		}
	case refocusRestore:
		if l.LastCursor >= 0 && l.LastCursor < len(items) {
			l.Cursor = l.LastCursor
		} else {
			l.Cursor = 0
		}
		l.LastCursor = -1
	}
	l.pending = refocusNone
	l.clampCursor()
}

// Current returns the focused item.
func (l *Level) Current() (catalog.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return catalog.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the index of the item with char, or -1.
func (l *Level) IndexOf(char string) int {
	for i, it := range l.Items {
		if it.Char == char {
			return i
		}
	}
	return -1
}

func (l *Level) clampCursor() {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return
	}
	l.Cursor = clampInt(l.Cursor, 0, len(l.Items)-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
