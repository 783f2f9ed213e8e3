package state

import "unicode"

// FilterCursorPos returns the rune offset of the query caret.
func (l *Level) FilterCursorPos() int {
	return clampInt(l.FilterCursor, 0, len([]rune(l.Filter)))
}

func (l *Level) splice(from, to int, insert []rune) {
	runes := []rune(l.Filter)
	updated := make([]rune, 0, len(runes)-(to-from)+len(insert))
	updated = append(updated, runes[:from]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[to:]...)
	l.SetFilter(string(updated), from+len(insert))
}

// InsertFilterText inserts text at the caret.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := l.FilterCursorPos()
	l.splice(pos, pos, insert)
	return true
}

// DeleteFilterRuneBackward removes the rune before the caret.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(pos-1, pos, nil)
	return true
}

// DeleteFilterWordBackward removes the word before the caret along with any
// trailing spaces.
func (l *Level) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(wordStart([]rune(l.Filter), pos), pos, nil)
	return true
}

// ClearFilter empties the query.
func (l *Level) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("", 0)
	return true
}

func (l *Level) moveFilterCursor(to int) bool {
	to = clampInt(to, 0, len([]rune(l.Filter)))
	if to == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = to
	return true
}

// MoveFilterCursorStart moves the caret to the start.
func (l *Level) MoveFilterCursorStart() bool {
	return l.moveFilterCursor(0)
}

// MoveFilterCursorEnd moves the caret to the end.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveFilterCursor(len([]rune(l.Filter)))
}

// MoveFilterCursorWordBackward moves the caret to the previous word start.
func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveFilterCursor(wordStart([]rune(l.Filter), l.FilterCursorPos()))
}

// MoveFilterCursorWordForward moves the caret past the next word.
func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveFilterCursor(wordEnd([]rune(l.Filter), l.FilterCursorPos()))
}

// MoveFilterCursorRuneBackward moves the caret one rune left.
func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveFilterCursor(l.FilterCursorPos() - 1)
}

// MoveFilterCursorRuneForward moves the caret one rune right.
func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveFilterCursor(l.FilterCursorPos() + 1)
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

func wordEnd(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}
