package catalog

// Pseudo categories and marker tags shared by every view.
const (
	All          = "전체"
	Custom       = "추가"
	CustomMarker = "custom"

	// unknownOrder sorts categories missing from the registry last.
	unknownOrder = 999
)

// Category describes a concrete emoji category backed by a data file.
type Category struct {
	Label   string
	Locator string
}

// Registry maps category labels to data locators and display order.
type Registry struct {
	emoji   []Category
	kaomoji []string
	order   map[string]int
	byLabel map[string]Category
}

// DefaultRegistry returns the built-in emoji and kaomoji categories.
func DefaultRegistry() *Registry {
	return NewRegistry([]Category{
		{Label: "표정", Locator: "data/emoji/emotion.json"},
		{Label: "손", Locator: "data/emoji/hands.json"},
		{Label: "하트", Locator: "data/emoji/hearts.json"},
		{Label: "동물", Locator: "data/emoji/animals.json"},
		{Label: "음식", Locator: "data/emoji/foods.json"},
		{Label: "사물", Locator: "data/emoji/objects.json"},
		{Label: "자연", Locator: "data/emoji/nature.json"},
		{Label: "기호", Locator: "data/emoji/symbols.json"},
		{Label: "기타", Locator: "data/emoji/events.json"},
	}, []string{"기쁨", "슬픔", "화남", "사랑", "응원", "당황", "무심", "피곤"})
}

// NewRegistry builds a registry from concrete emoji categories and kaomoji
// tag categories. The custom pseudo category is appended to both lists.
func NewRegistry(emoji []Category, kaomoji []string) *Registry {
	r := &Registry{
		emoji:   append([]Category(nil), emoji...),
		kaomoji: append([]string(nil), kaomoji...),
		order:   make(map[string]int, len(emoji)+1),
		byLabel: make(map[string]Category, len(emoji)),
	}
	for i, c := range r.emoji {
		r.order[c.Label] = i
		r.byLabel[c.Label] = c
	}
	r.order[Custom] = len(r.emoji)
	return r
}

// Concrete returns the labels of every fetchable emoji category in order.
func (r *Registry) Concrete() []string {
	out := make([]string, 0, len(r.emoji))
	for _, c := range r.emoji {
		out = append(out, c.Label)
	}
	return out
}

// CategoryOrder returns the concrete labels followed by the custom label.
func (r *Registry) CategoryOrder() []string {
	return append(r.Concrete(), Custom)
}

// KaomojiCategories returns the kaomoji tag categories followed by the custom
// label.
func (r *Registry) KaomojiCategories() []string {
	return append(append([]string(nil), r.kaomoji...), Custom)
}

// Categories returns the category bar entries for a tab, starting with All.
func (r *Registry) Categories(kaomoji bool) []string {
	if kaomoji {
		return append([]string{All}, r.KaomojiCategories()...)
	}
	return append([]string{All}, r.CategoryOrder()...)
}

// Locator returns the data path for a concrete category.
func (r *Registry) Locator(label string) (string, bool) {
	c, ok := r.byLabel[label]
	return c.Locator, ok
}

// Order returns the display position of a category. Unknown labels sort last.
func (r *Registry) Order(label string) int {
	if idx, ok := r.order[label]; ok {
		return idx
	}
	return unknownOrder
}

// KaomojiLocator is the data path of the kaomoji list.
const KaomojiLocator = "data/kaomoji.json"
