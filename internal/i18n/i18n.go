// Package i18n resolves UI strings for the Korean and English tables.
package i18n

import (
	"sync"

	"github.com/Xuanwo/go-locale"
	"golang.org/x/text/language"
)

// Supported language codes.
const (
	Korean  = "ko"
	English = "en"
)

var tables = map[string]map[string]string{
	Korean: {
		"tab.emoji":     "Emoji",
		"tab.kaomoji":   "Kaomoji",
		"tab.favorites": "⭐",
		"tab.recent":    "최근에 사용한 이모티콘",

		"search.placeholder": "검색 (예: heart, happy, (웃음))",
		"search.label":       "검색",

		"category.all":     "전체",
		"category.emotion": "표정",
		"category.hands":   "손",
		"category.hearts":  "하트",
		"category.animals": "동물",
		"category.foods":   "음식",
		"category.objects": "사물",
		"category.nature":  "자연",
		"category.symbols": "기호",
		"category.events":  "기타",
		"category.custom":  "추가",

		"kaomoji.joy":         "기쁨",
		"kaomoji.sad":         "슬픔",
		"kaomoji.angry":       "화남",
		"kaomoji.love":        "사랑",
		"kaomoji.cheer":       "응원",
		"kaomoji.confused":    "당황",
		"kaomoji.indifferent": "무심",
		"kaomoji.tired":       "피곤",
		"kaomoji.custom":      "추가",

		"hint.click":   "Enter: 복사",
		"grid.empty":   "항목 없음",
		"grid.loading": "불러오는 중…",

		"modal.title.emoji":    "이모티콘 추가",
		"modal.title.kaomoji":  "이모티콘 추가",
		"modal.title.edit":     "이모티콘 수정",
		"modal.input.emoji":    "이모티콘 (예: 😊)",
		"modal.input.kaomoji":  "이모티콘 (예: (´• ω •`))",
		"modal.input.tags":     "태그 (쉼표로 구분, 예: 기쁨,웃음,happy)",
		"modal.input.category": "카테고리",
		"modal.button.cancel":  "취소",
		"modal.button.save":    "저장",
		"modal.error.empty":    "이모티콘을 입력하세요",
		"modal.delete.confirm": "삭제할까요? (y/n)",

		"toast.copied":     "복사됨",
		"toast.inserted":   "입력됨",
		"toast.favorite":   "즐겨찾기 추가",
		"toast.unfavorite": "즐겨찾기 제거",
		"toast.saved":      "저장됨",
		"toast.deleted":    "삭제됨",
		"toast.fallback":   "패널에 입력할 수 없어 클립보드에만 복사했습니다",
		"toast.storage":    "설정을 저장하지 못했습니다",

		"skintone.title":   "피부색",
		"skintone.default": "기본값으로 설정",
		"skintone.hint":    "Enter: 선택  d: 기본값  Esc: 닫기",

		"toast.tonedefault": "기본 스킨톤이 설정되었습니다",
		"status.target":     "대상 패널이 닫혀 클립보드에만 복사합니다",
		"modal.hint":        "Tab: 다음 칸  ←/→: 카테고리  Enter: 저장  Esc: 취소",

		"theme.light":      "라이트",
		"theme.dark":       "다크",
		"language.current": "KO",
	},
	English: {
		"tab.emoji":     "Emoji",
		"tab.kaomoji":   "Kaomoji",
		"tab.favorites": "⭐",
		"tab.recent":    "Recently Used",

		"search.placeholder": "Search (e.g., happy, smile)",
		"search.label":       "Search",

		"category.all":     "All",
		"category.emotion": "Mood",
		"category.hands":   "Hand",
		"category.hearts":  "Heart",
		"category.animals": "Pet",
		"category.foods":   "Food",
		"category.objects": "Item",
		"category.nature":  "Plant",
		"category.symbols": "Sign",
		"category.events":  "Event",
		"category.custom":  "Add",

		"kaomoji.joy":         "Joy",
		"kaomoji.sad":         "Sad",
		"kaomoji.angry":       "Angry",
		"kaomoji.love":        "Love",
		"kaomoji.cheer":       "Cheer",
		"kaomoji.confused":    "Panic",
		"kaomoji.indifferent": "Calm",
		"kaomoji.tired":       "Tired",
		"kaomoji.custom":      "Add",

		"hint.click":   "Enter: copy",
		"grid.empty":   "Nothing here",
		"grid.loading": "Loading…",

		"modal.title.emoji":    "Add Emoji",
		"modal.title.kaomoji":  "Add Kaomoji",
		"modal.title.edit":     "Edit Item",
		"modal.input.emoji":    "Emoji (e.g., 😊)",
		"modal.input.kaomoji":  "Kaomoji (e.g., (´• ω •`))",
		"modal.input.tags":     "Tags (comma-separated, e.g., joy,smile,happy)",
		"modal.input.category": "Category",
		"modal.button.cancel":  "Cancel",
		"modal.button.save":    "Save",
		"modal.error.empty":    "Enter an emoji first",
		"modal.delete.confirm": "Delete this item? (y/n)",

		"toast.copied":     "Copied",
		"toast.inserted":   "Inserted",
		"toast.favorite":   "Added to favorites",
		"toast.unfavorite": "Removed from favorites",
		"toast.saved":      "Saved",
		"toast.deleted":    "Deleted",
		"toast.fallback":   "Pane insertion unavailable, copied to clipboard only",
		"toast.storage":    "Could not save settings",

		"skintone.title":   "Skin tone",
		"skintone.default": "Set as default",
		"skintone.hint":    "Enter: pick  d: default  Esc: close",

		"toast.tonedefault": "Default skin tone set",
		"status.target":     "Target pane closed, copying to clipboard only",
		"modal.hint":        "Tab: next field  ←/→: category  Enter: save  Esc: cancel",

		"theme.light":      "Light",
		"theme.dark":       "Dark",
		"language.current": "EN",
	},
}

var categoryKeys = map[string]string{
	"전체": "category.all",
	"표정": "category.emotion",
	"손":  "category.hands",
	"하트": "category.hearts",
	"동물": "category.animals",
	"음식": "category.foods",
	"사물": "category.objects",
	"자연": "category.nature",
	"기호": "category.symbols",
	"기타": "category.events",
	"추가": "category.custom",
}

var kaomojiKeys = map[string]string{
	"전체": "category.all",
	"기쁨": "kaomoji.joy",
	"슬픔": "kaomoji.sad",
	"화남": "kaomoji.angry",
	"사랑": "kaomoji.love",
	"응원": "kaomoji.cheer",
	"당황": "kaomoji.confused",
	"무심": "kaomoji.indifferent",
	"피곤": "kaomoji.tired",
	"추가": "kaomoji.custom",
}

// T returns the string for key in lang. Unknown languages use Korean and
// unknown keys return the key itself.
func T(lang, key string) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[Korean]
	}
	if s, ok := table[key]; ok {
		return s
	}
	return key
}

// CategoryName returns the display name of a category label.
func CategoryName(label string, kaomoji bool, lang string) string {
	keys := categoryKeys
	if kaomoji {
		keys = kaomojiKeys
	}
	if key, ok := keys[label]; ok {
		return T(lang, key)
	}
	return label
}

// Normalize maps arbitrary input to a supported language code. Empty or
// unknown input yields "".
func Normalize(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	return match(tag)
}

var matcher = language.NewMatcher([]language.Tag{language.Korean, language.English})

func match(tag language.Tag) string {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return ""
	}
	if idx == 1 {
		return English
	}
	return Korean
}

var (
	detectOnce sync.Once
	detected   string

	detectLocale = locale.Detect
)

// Detect returns the language matching the OS locale, falling back to Korean.
func Detect() string {
	detectOnce.Do(func() {
		detected = Korean
		if tag, err := detectLocale(); err == nil {
			if lang := match(tag); lang != "" {
				detected = lang
			}
		}
	})
	return detected
}
