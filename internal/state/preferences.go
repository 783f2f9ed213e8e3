package state

import (
	"sync"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
)

// Theme is the colour mode of the popup.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language selects the UI string table.
type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == LanguageEnglish {
		return LanguageKorean
	}
	return LanguageEnglish
}

// MaxRecent bounds the recent list.
const MaxRecent = 50

// PreferenceStore mirrors persisted preferences. Getters return copies.
type PreferenceStore interface {
	Favorites() []string
	IsFavorite(char string) bool
	SetFavorites([]string)
	Recent() []string
	SetRecent([]string)
	CustomEmojis() []catalog.Item
	SetCustomEmojis([]catalog.Item)
	CustomKaomoji() []catalog.Item
	SetCustomKaomoji([]catalog.Item)
	Theme() Theme
	SetTheme(Theme)
	Language() Language
	SetLanguage(Language)
	SkinTonePreference() string
	SetSkinTonePreference(string)
	ItemSkinTones() map[string]string
	ItemSkinTone(base string) (string, bool)
	SetItemSkinTones(map[string]string)
}

type preferenceStore struct {
	mu            sync.RWMutex
	favorites     []string
	favoriteSet   map[string]struct{}
	recent        []string
	customEmojis  []catalog.Item
	customKaomoji []catalog.Item
	theme         Theme
	language      Language
	skinTone      string
	itemSkinTones map[string]string
}

// NewPreferenceStore returns a store holding the defaults used before the sync
// store has been read.
func NewPreferenceStore() PreferenceStore {
	return &preferenceStore{
		favoriteSet:   map[string]struct{}{},
		theme:         ThemeLight,
		language:      LanguageKorean,
		itemSkinTones: map[string]string{},
	}
}

func (s *preferenceStore) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.favorites...)
}

func (s *preferenceStore) IsFavorite(char string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favoriteSet[char]
	return ok
}

// SetFavorites replaces the favorites, dropping duplicates but keeping the
// first occurrence's position.
func (s *preferenceStore) SetFavorites(favs []string) {
	set := make(map[string]struct{}, len(favs))
	list := make([]string, 0, len(favs))
	for _, f := range favs {
		if _, dup := set[f]; dup {
			continue
		}
		set[f] = struct{}{}
		list = append(list, f)
	}
	s.mu.Lock()
	s.favorites = list
	s.favoriteSet = set
	s.mu.Unlock()
}

func (s *preferenceStore) Recent() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.recent...)
}

func (s *preferenceStore) SetRecent(recent []string) {
	if len(recent) > MaxRecent {
		recent = recent[:MaxRecent]
	}
	s.mu.Lock()
	s.recent = append([]string{}, recent...)
	s.mu.Unlock()
}

func (s *preferenceStore) CustomEmojis() []catalog.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.CloneItems(s.customEmojis)
}

func (s *preferenceStore) SetCustomEmojis(items []catalog.Item) {
	s.mu.Lock()
	s.customEmojis = catalog.CloneItems(items)
	s.mu.Unlock()
}

func (s *preferenceStore) CustomKaomoji() []catalog.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.CloneItems(s.customKaomoji)
}

func (s *preferenceStore) SetCustomKaomoji(items []catalog.Item) {
	s.mu.Lock()
	s.customKaomoji = catalog.CloneItems(items)
	s.mu.Unlock()
}

func (s *preferenceStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *preferenceStore) SetTheme(t Theme) {
	if t != ThemeDark {
		t = ThemeLight
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
}

func (s *preferenceStore) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *preferenceStore) SetLanguage(l Language) {
	if l != LanguageEnglish {
		l = LanguageKorean
	}
	s.mu.Lock()
	s.language = l
	s.mu.Unlock()
}

func (s *preferenceStore) SkinTonePreference() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skinTone
}

func (s *preferenceStore) SetSkinTonePreference(tone string) {
	s.mu.Lock()
	s.skinTone = tone
	s.mu.Unlock()
}

func (s *preferenceStore) ItemSkinTones() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.itemSkinTones))
	for k, v := range s.itemSkinTones {
		out[k] = v
	}
	return out
}

func (s *preferenceStore) ItemSkinTone(base string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tone, ok := s.itemSkinTones[base]
	return tone, ok
}

func (s *preferenceStore) SetItemSkinTones(tones map[string]string) {
	dup := make(map[string]string, len(tones))
	for k, v := range tones {
		dup[k] = v
	}
	s.mu.Lock()
	s.itemSkinTones = dup
	s.mu.Unlock()
}
