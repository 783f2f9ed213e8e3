package i18n

import (
	"errors"
	"sync"
	"testing"

	"golang.org/x/text/language"
)

func TestTFallbacks(t *testing.T) {
	if got := T(English, "tab.recent"); got != "Recently Used" {
		t.Fatalf("unexpected english string %q", got)
	}
	if got := T("fr", "tab.recent"); got != "최근에 사용한 이모티콘" {
		t.Fatalf("expected korean fallback, got %q", got)
	}
	if got := T(English, "missing.key"); got != "missing.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
}

func TestCategoryName(t *testing.T) {
	cases := []struct {
		label   string
		kaomoji bool
		lang    string
		want    string
	}{
		{"동물", false, English, "Pet"},
		{"추가", false, English, "Add"},
		{"당황", true, English, "Panic"},
		{"표정", false, Korean, "표정"},
		{"미지", false, English, "미지"},
	}
	for _, tc := range cases {
		if got := CategoryName(tc.label, tc.kaomoji, tc.lang); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.label, tc.want, got)
		}
	}
}

func TestTablesHaveSameKeys(t *testing.T) {
	for key := range tables[Korean] {
		if _, ok := tables[English][key]; !ok {
			t.Fatalf("english table missing %q", key)
		}
	}
	for key := range tables[English] {
		if _, ok := tables[Korean][key]; !ok {
			t.Fatalf("korean table missing %q", key)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{"en-GB": English, "ko_KR": Korean, "ko": Korean, "": ""}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func withDetect(t *testing.T, fn func() (language.Tag, error)) {
	t.Helper()
	prev := detectLocale
	detectLocale = fn
	detectOnce = sync.Once{}
	t.Cleanup(func() {
		detectLocale = prev
		detectOnce = sync.Once{}
	})
}

func TestDetect(t *testing.T) {
	withDetect(t, func() (language.Tag, error) { return language.AmericanEnglish, nil })
	if got := Detect(); got != English {
		t.Fatalf("expected english, got %q", got)
	}
}

func TestDetectFallsBackToKorean(t *testing.T) {
	withDetect(t, func() (language.Tag, error) { return language.Und, errors.New("no locale") })
	if got := Detect(); got != Korean {
		t.Fatalf("expected korean fallback, got %q", got)
	}
}
