package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
)

var defaultRegistry = DefaultRegistry()

// FilterItems narrows items to the active category and query using the
// built-in category order.
func FilterItems(query string, items []Item, category string, kaomoji bool) []Item {
	return defaultRegistry.FilterItems(query, items, category, kaomoji)
}

// FilterItems narrows items to category and then to query. The input slice is
// never reordered.
//
// The custom pseudo category keeps only items tagged with a custom marker.
// Concrete categories match by tag in kaomoji mode and by the category field
// otherwise. All in emoji mode sorts by registry order, then by char.
func (r *Registry) FilterItems(query string, items []Item, category string, kaomoji bool) []Item {
	list := make([]Item, 0, len(items))
	switch {
	case category == Custom:
		for _, it := range items {
			if it.IsCustom() {
				list = append(list, it)
			}
		}
	case category != "" && category != All:
		for _, it := range items {
			if kaomoji && it.HasTag(category) || !kaomoji && it.Category == category {
				list = append(list, it)
			}
		}
	default:
		list = append(list, items...)
		if !kaomoji && category == All {
			sort.SliceStable(list, func(i, j int) bool {
				oi, oj := r.Order(list[i].Category), r.Order(list[j].Category)
				if oi != oj {
					return oi < oj
				}
				return list[i].Char < list[j].Char
			})
		}
	}
	return MatchQuery(query, list)
}

// MatchQuery keeps the items whose char or any tag contains query, ignoring
// case. A blank query keeps everything.
func MatchQuery(query string, items []Item) []Item {
	m := NewMatcher(query)
	if m.Empty() {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if m.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// SortByChar returns a copy of items ordered by char.
func SortByChar(items []Item) []Item {
	out := append([]Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

// Matcher tests items against a case-folded query.
type Matcher struct {
	folder cases.Caser
	query  string
}

// NewMatcher trims and folds query.
func NewMatcher(query string) *Matcher {
	m := &Matcher{folder: cases.Fold()}
	m.query = m.folder.String(strings.TrimSpace(query))
	return m
}

// Empty reports whether the matcher accepts every item.
func (m *Matcher) Empty() bool {
	return m.query == ""
}

// Match reports whether the item's char or one of its tags contains the query.
func (m *Matcher) Match(it Item) bool {
	if m.query == "" {
		return true
	}
	if strings.Contains(m.folder.String(it.Char), m.query) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(m.folder.String(tag), m.query) {
			return true
		}
	}
	return false
}

// Segment is a piece of tooltip text, flagged when it matches the query.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into segments, marking every case-insensitive
// occurrence of query.
func Highlight(text, query string) []Segment {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return []Segment{{Text: text}}
	}
	runes := []rune(text)
	n := utf8.RuneCountInString(query)
	var segments []Segment
	start := 0
	for i := 0; i+n <= len(runes); {
		if strings.EqualFold(string(runes[i:i+n]), query) {
			if i > start {
				segments = append(segments, Segment{Text: string(runes[start:i])})
			}
			segments = append(segments, Segment{Text: string(runes[i : i+n]), Match: true})
			i += n
			start = i
			continue
		}
		i++
	}
	if start < len(runes) {
		segments = append(segments, Segment{Text: string(runes[start:])})
	}
	return segments
}

// HighlightTags highlights query inside each tag.
func HighlightTags(tags []string, query string) [][]Segment {
	out := make([][]Segment, len(tags))
	for i, tag := range tags {
		out[i] = Highlight(tag, query)
	}
	return out
}

// BestMatchIndex picks the item a fresh query should focus: an exact tag
// match first, then a tag prefix, then the closest fuzzy match.
func BestMatchIndex(items []Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(items) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	for i, it := range items {
		if it.Char == trimmed {
			return i
		}
		for _, tag := range it.Tags {
			if strings.EqualFold(tag, trimmed) {
				return i
			}
		}
	}
	lower := strings.ToLower(trimmed)
	for i, it := range items {
		for _, tag := range it.Tags {
			if strings.HasPrefix(strings.ToLower(tag), lower) {
				return i
			}
		}
	}
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = strings.Join(it.Tags, " ")
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return 0
	}
	return best.OriginalIndex
}
