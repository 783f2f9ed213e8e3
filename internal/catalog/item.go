// Package catalog holds the emoji and kaomoji item model, the category
// registry, the filter engine and the lazy category loader.
package catalog

// Item is one emoji or kaomoji entry. Char is both what the grid shows and
// what gets copied.
type Item struct {
	Char     string   `json:"char" toml:"char"`
	Tags     []string `json:"tags" toml:"tags"`
	Category string   `json:"category,omitempty" toml:"category,omitempty"`
}

// HasTag reports whether tag is one of the item's tags.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsCustom reports whether the item carries one of the custom marker tags.
func (it Item) IsCustom() bool {
	return it.HasTag(Custom) || it.HasTag(CustomMarker)
}

// Normalize returns a copy with a non-nil tag slice.
func (it Item) Normalize() Item {
	if it.Tags == nil {
		it.Tags = []string{}
	}
	return it
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.Tags = append([]string{}, it.Tags...)
	return out
}

// CloneItems copies a slice of items so callers may mutate the result freely.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
