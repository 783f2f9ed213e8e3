// Package prefs applies preference mutations to the in-memory mirror and
// persists them to the sync store.
package prefs

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/i18n"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
	"github.com/atomicstack/tmux-emoji-popup/internal/skintone"
	"github.com/atomicstack/tmux-emoji-popup/internal/state"
	"github.com/atomicstack/tmux-emoji-popup/internal/syncstore"
)

// Service owns every preference mutation. Each method updates the mirror
// first and then writes the affected key.
type Service struct {
	store syncstore.Store
	prefs state.PreferenceStore

	// mu serialises read-modify-write sequences on the mirror.
	mu sync.Mutex

	// DetectLanguage supplies the language used when none is stored.
	DetectLanguage func() string
}

// New wires a service around store. A nil prefs allocates a fresh mirror.
func New(store syncstore.Store, prefs state.PreferenceStore) *Service {
	if prefs == nil {
		prefs = state.NewPreferenceStore()
	}
	return &Service{store: store, prefs: prefs, DetectLanguage: i18n.Detect}
}

// Preferences returns the in-memory mirror.
func (s *Service) Preferences() state.PreferenceStore {
	return s.prefs
}

func (s *Service) persist(ctx context.Context, op string, values syncstore.Values) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := s.store.Set(ctx, values); err != nil {
		serr := &StorageError{Op: op, Err: err}
		logging.Error(serr)
		events.Storage.Failed(op, err)
		return serr
	}
	events.Storage.Set(keys)
	return nil
}

// LoadFromSync fills the mirror from the store. Missing or malformed values
// fall back to defaults; a failed read leaves the defaults in place.
func (s *Service) LoadFromSync(ctx context.Context) error {
	values, err := s.store.Get(ctx, syncstore.Keys...)
	if err != nil {
		serr := &StorageError{Op: "get", Err: err}
		logging.Error(serr)
		s.applyValues(syncstore.Values{})
		return serr
	}
	s.applyValues(values)
	return nil
}

func (s *Service) applyValues(values syncstore.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	favs, _ := syncstore.Strings(values[syncstore.KeyFavorites])
	s.prefs.SetFavorites(favs)
	recent, _ := syncstore.Strings(values[syncstore.KeyRecent])
	s.prefs.SetRecent(recent)
	customEmojis, _ := syncstore.Items(values[syncstore.KeyCustomEmojis])
	s.prefs.SetCustomEmojis(customEmojis)
	customKaomoji, _ := syncstore.Items(values[syncstore.KeyCustomKaomoji])
	s.prefs.SetCustomKaomoji(customKaomoji)
	theme, _ := syncstore.String(values[syncstore.KeyTheme])
	s.prefs.SetTheme(state.Theme(theme))
	s.prefs.SetLanguage(state.Language(s.languageFrom(values[syncstore.KeyLanguage])))
	tone, _ := syncstore.String(values[syncstore.KeySkinTonePreference])
	if !skintone.Tone(tone).Valid() {
		tone = ""
	}
	s.prefs.SetSkinTonePreference(tone)
	tones, _ := syncstore.StringMap(values[syncstore.KeyEmojiSkinTones])
	s.prefs.SetItemSkinTones(tones)
}

func (s *Service) languageFrom(v interface{}) string {
	if raw, ok := syncstore.String(v); ok {
		if lang := i18n.Normalize(raw); lang != "" {
			return lang
		}
	}
	if s.DetectLanguage != nil {
		if lang := s.DetectLanguage(); lang != "" {
			return lang
		}
	}
	return i18n.Korean
}

// IsFavorite reports whether char is a favorite.
func (s *Service) IsFavorite(char string) bool {
	return s.prefs.IsFavorite(char)
}

// AddFavorite adds char to the favorites. Adding an existing favorite is a
// no-op.
func (s *Service) AddFavorite(ctx context.Context, char string) error {
	s.mu.Lock()
	if s.prefs.IsFavorite(char) {
		s.mu.Unlock()
		return nil
	}
	favs := append(s.prefs.Favorites(), char)
	s.prefs.SetFavorites(favs)
	s.mu.Unlock()
	return s.persist(ctx, "favorites", syncstore.Values{syncstore.KeyFavorites: favs})
}

// RemoveFavorite removes char from the favorites.
func (s *Service) RemoveFavorite(ctx context.Context, char string) error {
	s.mu.Lock()
	if !s.prefs.IsFavorite(char) {
		s.mu.Unlock()
		return nil
	}
	favs := removeString(s.prefs.Favorites(), char)
	s.prefs.SetFavorites(favs)
	s.mu.Unlock()
	return s.persist(ctx, "favorites", syncstore.Values{syncstore.KeyFavorites: favs})
}

// ToggleFavorite flips char's favorite state and returns the new state.
func (s *Service) ToggleFavorite(ctx context.Context, char string) (bool, error) {
	if s.prefs.IsFavorite(char) {
		return false, s.RemoveFavorite(ctx, char)
	}
	return true, s.AddFavorite(ctx, char)
}

// AddToRecent moves char, without skin tone modifiers, to the head of the
// recent list and trims the list to state.MaxRecent entries.
func (s *Service) AddToRecent(ctx context.Context, char string) error {
	base := skintone.Strip(char)
	if base == "" {
		return nil
	}
	s.mu.Lock()
	list := removeString(s.prefs.Recent(), base)
	list = append([]string{base}, list...)
	if len(list) > state.MaxRecent {
		list = list[:state.MaxRecent]
	}
	s.prefs.SetRecent(list)
	s.mu.Unlock()
	return s.persist(ctx, "recent", syncstore.Values{syncstore.KeyRecent: list})
}

// SaveCustomEmoji appends item to the custom emoji list.
func (s *Service) SaveCustomEmoji(ctx context.Context, item catalog.Item) error {
	return s.mutateCustom(ctx, false, func(list []catalog.Item) []catalog.Item {
		return append(list, item.Normalize())
	})
}

// SaveCustomKaomoji appends item to the custom kaomoji list. Kaomoji carry no
// category field.
func (s *Service) SaveCustomKaomoji(ctx context.Context, item catalog.Item) error {
	item.Category = ""
	return s.mutateCustom(ctx, true, func(list []catalog.Item) []catalog.Item {
		return append(list, item.Normalize())
	})
}

// UpdateCustom replaces the first custom entry whose char equals oldChar.
func (s *Service) UpdateCustom(ctx context.Context, kaomoji bool, oldChar string, item catalog.Item) error {
	if kaomoji {
		item.Category = ""
	}
	return s.mutateCustom(ctx, kaomoji, func(list []catalog.Item) []catalog.Item {
		for i, it := range list {
			if it.Char == oldChar {
				list[i] = item.Normalize()
				return list
			}
		}
		return list
	})
}

// DeleteCustom removes the first custom entry whose char equals char. Unknown
// chars leave the list unchanged and nothing is written.
func (s *Service) DeleteCustom(ctx context.Context, kaomoji bool, char string) error {
	s.mu.Lock()
	list := s.custom(kaomoji)
	idx := -1
	for i, it := range list {
		if it.Char == char {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	list = append(list[:idx], list[idx+1:]...)
	key := s.setCustom(kaomoji, list)
	s.mu.Unlock()
	return s.persist(ctx, key, syncstore.Values{key: syncstore.ItemsValue(list)})
}

// IsCustom reports whether char is one of the user's items.
func (s *Service) IsCustom(kaomoji bool, char string) bool {
	for _, it := range s.custom(kaomoji) {
		if it.Char == char {
			return true
		}
	}
	return false
}

func (s *Service) custom(kaomoji bool) []catalog.Item {
	if kaomoji {
		return s.prefs.CustomKaomoji()
	}
	return s.prefs.CustomEmojis()
}

func (s *Service) setCustom(kaomoji bool, list []catalog.Item) string {
	if kaomoji {
		s.prefs.SetCustomKaomoji(list)
		return syncstore.KeyCustomKaomoji
	}
	s.prefs.SetCustomEmojis(list)
	return syncstore.KeyCustomEmojis
}

func (s *Service) mutateCustom(ctx context.Context, kaomoji bool, fn func([]catalog.Item) []catalog.Item) error {
	s.mu.Lock()
	list := fn(s.custom(kaomoji))
	key := s.setCustom(kaomoji, list)
	s.mu.Unlock()
	return s.persist(ctx, key, syncstore.Values{key: syncstore.ItemsValue(list)})
}

// SetSkinTonePreference stores the default tone for capable glyphs.
func (s *Service) SetSkinTonePreference(ctx context.Context, tone skintone.Tone) error {
	s.prefs.SetSkinTonePreference(string(tone))
	return s.persist(ctx, "skinTonePreference", syncstore.Values{syncstore.KeySkinTonePreference: string(tone)})
}

// SetItemSkinTone overrides the tone of one glyph, keyed by its base char.
func (s *Service) SetItemSkinTone(ctx context.Context, char string, tone skintone.Tone) error {
	base := skintone.Strip(char)
	s.mu.Lock()
	tones := s.prefs.ItemSkinTones()
	tones[base] = string(tone)
	s.prefs.SetItemSkinTones(tones)
	s.mu.Unlock()
	return s.persist(ctx, "emojiSkinTones", syncstore.Values{syncstore.KeyEmojiSkinTones: tones})
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context) (state.Theme, error) {
	next := s.prefs.Theme().Toggle()
	s.prefs.SetTheme(next)
	return next, s.persist(ctx, "theme", syncstore.Values{syncstore.KeyTheme: string(next)})
}

// ToggleLanguage flips between Korean and English and returns the new
// language.
func (s *Service) ToggleLanguage(ctx context.Context) (state.Language, error) {
	next := s.prefs.Language().Toggle()
	s.prefs.SetLanguage(next)
	return next, s.persist(ctx, "language", syncstore.Values{syncstore.KeyLanguage: string(next)})
}

// Effects tells the caller what to refresh after external changes.
type Effects struct {
	NeedRender      bool
	ThemeChanged    bool
	LanguageChanged bool
}

// Any reports whether anything needs refreshing.
func (e Effects) Any() bool {
	return e.NeedRender || e.ThemeChanged || e.LanguageChanged
}

// ApplyChanges refreshes the mirror from changes made by another process.
// A theme change alone does not require the grid to be rebuilt.
func (s *Service) ApplyChanges(changes syncstore.ChangeSet) Effects {
	var fx Effects
	if len(changes) == 0 {
		return fx
	}
	events.Storage.Changed(changes.Keys())
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := changes[syncstore.KeyFavorites]; ok {
		favs, _ := syncstore.Strings(c.NewValue)
		s.prefs.SetFavorites(favs)
		fx.NeedRender = true
	}
	if c, ok := changes[syncstore.KeyRecent]; ok {
		recent, _ := syncstore.Strings(c.NewValue)
		s.prefs.SetRecent(recent)
		fx.NeedRender = true
	}
	if c, ok := changes[syncstore.KeyCustomEmojis]; ok {
		items, _ := syncstore.Items(c.NewValue)
		s.prefs.SetCustomEmojis(items)
		fx.NeedRender = true
	}
	if c, ok := changes[syncstore.KeyCustomKaomoji]; ok {
		items, _ := syncstore.Items(c.NewValue)
		s.prefs.SetCustomKaomoji(items)
		fx.NeedRender = true
	}
	if c, ok := changes[syncstore.KeyTheme]; ok {
		theme, _ := syncstore.String(c.NewValue)
		s.prefs.SetTheme(state.Theme(theme))
		fx.ThemeChanged = true
	}
	if c, ok := changes[syncstore.KeySkinTonePreference]; ok {
		tone, _ := syncstore.String(c.NewValue)
		if !skintone.Tone(tone).Valid() {
			tone = ""
		}
		s.prefs.SetSkinTonePreference(tone)
		fx.NeedRender = true
	}
	if c, ok := changes[syncstore.KeyEmojiSkinTones]; ok {
		tones, _ := syncstore.StringMap(c.NewValue)
		s.prefs.SetItemSkinTones(tones)
		fx.NeedRender = true
	}
	if c, ok := changes[syncstore.KeyLanguage]; ok {
		raw, _ := syncstore.String(c.NewValue)
		if lang := i18n.Normalize(raw); lang != "" {
			s.prefs.SetLanguage(state.Language(lang))
		}
		fx.LanguageChanged = true
		fx.NeedRender = true
	}
	return fx
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

// BuildCustomItem validates modal input. tagsCSV is split on commas with
// blanks dropped. A kaomoji saved under a concrete category gets that
// category as its first tag. Every custom item carries the custom marker tag
// so it is listed under the custom category.
func BuildCustomItem(char, tagsCSV, category string, kaomoji bool) (catalog.Item, error) {
	char = strings.TrimSpace(char)
	if char == "" {
		return catalog.Item{}, &ValidationError{Field: "char", Reason: "empty"}
	}
	category = strings.TrimSpace(category)
	if category == "" || category == catalog.All {
		category = catalog.Custom
	}
	tags := []string{}
	for _, part := range strings.Split(tagsCSV, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	item := catalog.Item{Char: char, Tags: tags}
	if kaomoji {
		if category != catalog.Custom && !item.HasTag(category) {
			item.Tags = append([]string{category}, item.Tags...)
		}
	} else {
		item.Category = category
	}
	if !item.IsCustom() {
		item.Tags = append(item.Tags, catalog.CustomMarker)
	}
	return item, nil
}
