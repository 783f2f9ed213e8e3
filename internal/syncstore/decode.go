package syncstore

import "github.com/atomicstack/tmux-emoji-popup/internal/catalog"

// Strings converts a stored list of strings. Values of any other shape yield
// nil and false.
func Strings(v interface{}) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...), true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, e := range list {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// String converts a stored string value.
func String(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// StringMap converts a stored table of strings. Non-string entries are
// skipped.
func StringMap(v interface{}) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	case map[string]interface{}:
		out := make(map[string]string, len(m))
		for k, e := range m {
			if s, ok := e.(string); ok {
				out[k] = s
			}
		}
		return out, true
	}
	return nil, false
}

// Items converts a stored list of items. Entries without a string char are
// dropped; missing tags become an empty slice.
func Items(v interface{}) ([]catalog.Item, bool) {
	switch list := v.(type) {
	case []catalog.Item:
		return catalog.CloneItems(list), true
	case []map[string]interface{}:
		out := make([]catalog.Item, 0, len(list))
		for _, m := range list {
			if it, ok := itemFromMap(m); ok {
				out = append(out, it)
			}
		}
		return out, true
	case []interface{}:
		out := make([]catalog.Item, 0, len(list))
		for _, e := range list {
			m, ok := e.(map[string]interface{})
			if !ok {
				continue
			}
			if it, ok := itemFromMap(m); ok {
				out = append(out, it)
			}
		}
		return out, true
	}
	return nil, false
}

func itemFromMap(m map[string]interface{}) (catalog.Item, bool) {
	char, ok := m["char"].(string)
	if !ok || char == "" {
		return catalog.Item{}, false
	}
	it := catalog.Item{Char: char, Tags: []string{}}
	if tags, ok := Strings(m["tags"]); ok {
		it.Tags = tags
	}
	if cat, ok := m["category"].(string); ok {
		it.Category = cat
	}
	return it, true
}

// ItemsValue encodes items for storage.
func ItemsValue(items []catalog.Item) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		tags := it.Tags
		if tags == nil {
			tags = []string{}
		}
		entry := map[string]interface{}{"char": it.Char, "tags": append([]string{}, tags...)}
		if it.Category != "" {
			entry["category"] = it.Category
		}
		out = append(out, entry)
	}
	return out
}
