// Package skintone applies and strips Fitzpatrick skin tone modifiers.
package skintone

import "strings"

// Tone is a skin tone modifier. The empty tone means the default yellow glyph.
type Tone string

const (
	Default     Tone = ""
	Light       Tone = "\U0001F3FB"
	MediumLight Tone = "\U0001F3FC"
	Medium      Tone = "\U0001F3FD"
	MediumDark  Tone = "\U0001F3FE"
	Dark        Tone = "\U0001F3FF"

	// Sample is the glyph previewed in the selector.
	Sample = "✋"

	zwj  = "\u200d"
	vs16 = '\ufe0f'
)

// Tones lists every tone in selector order.
var Tones = []Tone{Default, Light, MediumLight, Medium, MediumDark, Dark}

var names = map[Tone][2]string{
	Default:     {"기본", "Default"},
	Light:       {"밝음", "Light"},
	MediumLight: {"약간 밝음", "Med-Light"},
	Medium:      {"중간", "Medium"},
	MediumDark:  {"약간 어두움", "Med-Dark"},
	Dark:        {"어두움", "Dark"},
}

// Name returns the tone label for lang ("ko" or "en").
func (t Tone) Name(lang string) string {
	n, ok := names[t]
	if !ok {
		return string(t)
	}
	if lang == "en" {
		return n[1]
	}
	return n[0]
}

// Valid reports whether t is one of the known tones.
func (t Tone) Valid() bool {
	_, ok := names[t]
	return ok
}

var supported = map[rune]struct{}{}

func init() {
	for _, r := range []rune(
		// hands
		"👋🤚🖐✋🖖👌🤌🤏✌🤞🤟🤘🤙👈👉👆🖕👇☝👍👎✊👊🤛🤜👏🙌👐🤲🤝🙏💅🤳" +
			// body
			"💪🦵🦶👂🦻👃🧠🫀🫁🦷🦴👀👁" +
			// people
			"👶🧒👦👧🧑👨👩🧓👴👵" +
			// roles and activities
			"👮🕵💂🥷👷🤴👸👳👲🧕🤵👰🤰🤱👼🎅🤶🦸🦹🧙🧚🧛🧜🧝🧞🧟💆💇🚶🧍🧎🏃💃🕺🕴👯🧖🧗🏇⛷🏂🏌🏄🚣🏊⛹🏋🚴🚵🤸🤼🤽🤾🤹" +
			// gestures
			"🙍🙎🙅🙆💁🙋🧏🙇🤦🤷" +
			"🛀🛌👫👬👭") {
		supported[r] = struct{}{}
	}
}

func isModifier(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

func isSupported(r rune) bool {
	_, ok := supported[r]
	return ok
}

// Strip removes every skin tone modifier from s.
func Strip(s string) string {
	if !strings.ContainsFunc(s, isModifier) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isModifier(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Supports reports whether the first person or hand glyph of s accepts a
// skin tone.
func Supports(s string) bool {
	first, _, _ := strings.Cut(Strip(s), zwj)
	for _, r := range first {
		if isSupported(r) {
			return true
		}
	}
	return false
}

// Apply replaces any existing modifiers in s with tone. Each joined part whose
// leading glyph supports tones gets the modifier right after that glyph. The
// default tone only strips.
func Apply(s string, tone Tone) string {
	base := Strip(s)
	if tone == Default {
		return base
	}
	parts := strings.Split(base, zwj)
	for i, part := range parts {
		runes := []rune(part)
		if len(runes) == 0 || !isSupported(runes[0]) {
			continue
		}
		rest := runes[1:]
		if len(rest) > 0 && rest[0] == vs16 {
			rest = rest[1:]
		}
		parts[i] = string(runes[0]) + string(tone) + string(rest)
	}
	return strings.Join(parts, zwj)
}

// Current returns the first modifier found in s.
func Current(s string) Tone {
	for _, r := range s {
		if isModifier(r) {
			return Tone(string(r))
		}
	}
	return Default
}

// Option is one selector entry.
type Option struct {
	Tone  Tone
	Glyph string
	Name  string
}

// Options previews every tone on sample. An empty sample uses Sample.
func Options(sample, lang string) []Option {
	if sample == "" || !Supports(sample) {
		sample = Sample
	}
	out := make([]Option, 0, len(Tones))
	for _, t := range Tones {
		out = append(out, Option{Tone: t, Glyph: Apply(sample, t), Name: t.Name(lang)})
	}
	return out
}
