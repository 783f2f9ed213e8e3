package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"golang.org/x/term"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/format/table"
	"github.com/atomicstack/tmux-emoji-popup/internal/i18n"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/prefs"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
	"github.com/atomicstack/tmux-emoji-popup/internal/state"
)

var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintMatches writes one row per item matching cfg.Query on cfg.Tab:
// glyph, localized category and tags. Every category is loaded first so
// the output does not depend on what a previous popup fetched. Colour is
// used only when w is a terminal.
func PrintMatches(ctx context.Context, w io.Writer, cfg Config, svc *prefs.Service, loader *catalog.Loader, items state.CatalogStore) error {
	loader.EnsureAllCategoriesLoaded(ctx)
	if kaomoji, err := loader.LoadKaomoji(ctx); err != nil {
		logging.Error(err)
	} else {
		items.SetKaomoji(kaomoji)
	}

	p := svc.Preferences()
	src := render.Sources{
		Emojis:        items.Emojis(),
		Kaomoji:       items.Kaomoji(),
		CustomEmojis:  p.CustomEmojis(),
		CustomKaomoji: p.CustomKaomoji(),
		Favorites:     p.Favorites(),
		Recent:        p.Recent(),
	}
	req := render.Request{Tab: render.ParseTab(cfg.Tab), Category: catalog.All, Query: cfg.Query}
	matches := render.List(loader.Registry(), req, src)
	if len(matches) == 0 {
		return nil
	}

	lang := string(p.Language())
	reg := loader.Registry()
	rows := make([][]string, 0, len(matches))
	for _, it := range matches {
		rows = append(rows, []string{it.Char, categoryLabel(reg, it, lang), strings.Join(visibleTags(it), ", ")})
	}
	lines := table.FormatPainted(rows, nil, painter(isTerminal(w)))
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write matches: %w", err)
		}
	}
	return nil
}

func painter(colour bool) table.Painter {
	au := aurora.NewAurora(colour)
	return func(column int, cell string) string {
		switch column {
		case 0:
			return au.Bold(cell).String()
		case 1:
			return au.Cyan(cell).String()
		default:
			return au.Gray(12, cell).String()
		}
	}
}

// categoryLabel names the item's category. Kaomoji carry theirs as a tag.
func categoryLabel(reg *catalog.Registry, it catalog.Item, lang string) string {
	if it.Category != "" {
		return i18n.CategoryName(it.Category, false, lang)
	}
	for _, label := range reg.KaomojiCategories() {
		if it.HasTag(label) {
			return i18n.CategoryName(label, true, lang)
		}
	}
	if it.IsCustom() {
		return i18n.CategoryName(catalog.Custom, false, lang)
	}
	return "-"
}

func visibleTags(it catalog.Item) []string {
	out := make([]string, 0, len(it.Tags))
	for _, tag := range it.Tags {
		if tag == catalog.CustomMarker {
			continue
		}
		out = append(out, tag)
	}
	return out
}
