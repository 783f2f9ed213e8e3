package render

import (
	"strings"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/skintone"
)

const (
	StarOn  = "⭐"
	StarOff = "☆"
	// CellStar marks favorites in the leading column of a grid cell.
	CellStar   = "★"
	EditMark   = "✏️"
	DeleteMark = "🗑️"
)

// Ambient is the preference state every cell decoration reads.
type Ambient struct {
	Favorites     map[string]struct{}
	SkinTone      skintone.Tone
	Overrides     map[string]string
	CustomEmojis  map[string]struct{}
	CustomKaomoji map[string]struct{}
	Kaomoji       map[string]struct{}
	Query         string
}

func charSet(items []catalog.Item) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it.Char] = struct{}{}
	}
	return set
}

// NewAmbient derives the decoration context from a source snapshot.
func NewAmbient(src Sources, tone skintone.Tone, overrides map[string]string, query string) Ambient {
	favs := make(map[string]struct{}, len(src.Favorites))
	for _, f := range src.Favorites {
		favs[f] = struct{}{}
	}
	kaomoji := charSet(src.Kaomoji)
	for c := range charSet(src.CustomKaomoji) {
		kaomoji[c] = struct{}{}
	}
	return Ambient{
		Favorites:     favs,
		SkinTone:      tone,
		Overrides:     overrides,
		CustomEmojis:  charSet(src.CustomEmojis),
		CustomKaomoji: charSet(src.CustomKaomoji),
		Kaomoji:       kaomoji,
		Query:         strings.TrimSpace(query),
	}
}

// Cell is the render model of one grid entry.
type Cell struct {
	Item     catalog.Item
	Index    int
	Glyph    string
	Favorite bool
	// SkinTone is set when the glyph accepts a tone and a selector may open.
	SkinTone bool
	Tone     skintone.Tone
	Custom   bool
	Kaomoji  bool
	Tooltip  [][]catalog.Segment
}

// Star returns the favorite indicator.
func (c Cell) Star() string {
	if c.Favorite {
		return StarOn
	}
	return StarOff
}

// Marker returns the one-column favorite indicator drawn before the glyph.
func (c Cell) Marker() string {
	if c.Favorite {
		return CellStar
	}
	return " "
}

// Copy returns the text placed on the clipboard when the cell is chosen.
func (c Cell) Copy() string {
	return c.Glyph
}

// Affordances lists the extra controls a custom item exposes.
func (c Cell) Affordances() []string {
	if !c.Custom {
		return nil
	}
	return []string{EditMark, DeleteMark}
}

// ToneFor resolves the tone for a base char: an override wins over the
// default preference.
func (a Ambient) ToneFor(char string) skintone.Tone {
	base := skintone.Strip(char)
	if tone, ok := a.Overrides[base]; ok {
		return skintone.Tone(tone)
	}
	return a.SkinTone
}

// Decorate builds the cell for item at index. Kaomoji never receive a skin
// tone.
func Decorate(item catalog.Item, index int, a Ambient) Cell {
	_, kaomoji := a.Kaomoji[item.Char]
	_, fav := a.Favorites[item.Char]
	_, customEmoji := a.CustomEmojis[item.Char]
	_, customKaomoji := a.CustomKaomoji[item.Char]
	cell := Cell{
		Item:     item,
		Index:    index,
		Glyph:    item.Char,
		Favorite: fav,
		Custom:   customEmoji || customKaomoji,
		Kaomoji:  kaomoji,
		Tooltip:  catalog.HighlightTags(item.Tags, a.Query),
	}
	if !kaomoji && skintone.Supports(item.Char) {
		cell.SkinTone = true
		cell.Tone = a.ToneFor(item.Char)
		cell.Glyph = skintone.Apply(item.Char, cell.Tone)
	}
	return cell
}
