// Package render turns the active tab, category, query and scroll position
// into a windowed grid model. It holds no state of its own; every call
// recomputes from the inputs.
package render

import (
	"strings"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
)

// Tab is a top-level view.
type Tab string

const (
	TabEmoji     Tab = "emoji"
	TabKaomoji   Tab = "kaomoji"
	TabFavorites Tab = "favorites"
	TabRecent    Tab = "recent"
)

// Tabs lists the views in display order.
var Tabs = []Tab{TabEmoji, TabKaomoji, TabFavorites, TabRecent}

// ParseTab maps a name to a Tab, defaulting to the emoji tab.
func ParseTab(name string) Tab {
	for _, t := range Tabs {
		if string(t) == strings.ToLower(strings.TrimSpace(name)) {
			return t
		}
	}
	return TabEmoji
}

// Sources is a snapshot of every item list a render may draw from.
type Sources struct {
	Emojis        []catalog.Item
	Kaomoji       []catalog.Item
	CustomEmojis  []catalog.Item
	CustomKaomoji []catalog.Item
	Favorites     []string
	Recent        []string
}

func (s Sources) all() []catalog.Item {
	out := make([]catalog.Item, 0, len(s.Emojis)+len(s.Kaomoji)+len(s.CustomEmojis)+len(s.CustomKaomoji))
	out = append(out, s.Emojis...)
	out = append(out, s.Kaomoji...)
	out = append(out, s.CustomEmojis...)
	return append(out, s.CustomKaomoji...)
}

// dedupe keeps the first item seen for each char.
func dedupe(items []catalog.Item) ([]catalog.Item, map[string]catalog.Item) {
	byChar := make(map[string]catalog.Item, len(items))
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if _, seen := byChar[it.Char]; seen {
			continue
		}
		byChar[it.Char] = it
		out = append(out, it)
	}
	return out, byChar
}

// BaseList resolves the unfiltered list for a tab. Favorites and recent views
// deduplicate by char across emoji, kaomoji, custom emoji and custom kaomoji,
// first occurrence wins. The recent view keeps recency order and drops chars
// that no source knows.
func BaseList(tab Tab, src Sources) []catalog.Item {
	switch tab {
	case TabKaomoji:
		return append(append([]catalog.Item(nil), src.Kaomoji...), src.CustomKaomoji...)
	case TabFavorites:
		favs := make(map[string]struct{}, len(src.Favorites))
		for _, f := range src.Favorites {
			favs[f] = struct{}{}
		}
		unique, _ := dedupe(src.all())
		out := make([]catalog.Item, 0, len(favs))
		for _, it := range unique {
			if _, ok := favs[it.Char]; ok {
				out = append(out, it)
			}
		}
		return out
	case TabRecent:
		_, byChar := dedupe(src.all())
		out := make([]catalog.Item, 0, len(src.Recent))
		for _, char := range src.Recent {
			if it, ok := byChar[char]; ok {
				out = append(out, it)
			}
		}
		return out
	default:
		return append(append([]catalog.Item(nil), src.Emojis...), src.CustomEmojis...)
	}
}

// Plan lists the category loads a render implies.
type Plan struct {
	All      bool
	Category string
}

// Empty reports whether nothing needs loading.
func (p Plan) Empty() bool {
	return !p.All && p.Category == ""
}

// PlanLoads decides which categories must be present before rendering.
// Favorites and recent need everything, as does the emoji tab when searching
// or showing All. Other emoji categories need only themselves; kaomoji and the
// custom category need nothing.
func PlanLoads(tab Tab, category, query string) Plan {
	switch tab {
	case TabFavorites, TabRecent:
		return Plan{All: true}
	case TabEmoji:
		if strings.TrimSpace(query) != "" || category == catalog.All || category == "" {
			return Plan{All: true}
		}
		if category == catalog.Custom {
			return Plan{}
		}
		return Plan{Category: category}
	}
	return Plan{}
}

// Request is the view state a render depends on.
type Request struct {
	Tab      Tab
	Category string
	Query    string
}

// List runs the filter pipeline for req. Favorites and recent views apply the
// text query only. Emoji views other than All are ordered by char.
func List(reg *catalog.Registry, req Request, src Sources) []catalog.Item {
	if reg == nil {
		reg = catalog.DefaultRegistry()
	}
	base := BaseList(req.Tab, src)
	switch req.Tab {
	case TabFavorites, TabRecent:
		return catalog.MatchQuery(req.Query, base)
	case TabKaomoji:
		return reg.FilterItems(req.Query, base, req.Category, true)
	default:
		list := reg.FilterItems(req.Query, base, req.Category, false)
		if req.Category != catalog.All && req.Category != "" {
			list = catalog.SortByChar(list)
		}
		return list
	}
}
