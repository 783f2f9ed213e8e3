package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/prefs"
	"github.com/atomicstack/tmux-emoji-popup/internal/state"
	"github.com/atomicstack/tmux-emoji-popup/internal/syncstore"
	"github.com/atomicstack/tmux-emoji-popup/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func fixtureFS() fstest.MapFS {
	file := func(body string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(body)} }
	return fstest.MapFS{
		"data/emoji/emotion.json": file(`[{"char":"😀","tags":["grinning","smile"]}]`),
		"data/emoji/hands.json":   file(`[{"char":"👋","tags":["wave"]}]`),
		"data/emoji/hearts.json":  file(`[{"char":"❤️","tags":["love"]}]`),
		"data/emoji/animals.json": file(`[{"char":"🐶","tags":["dog","puppy"]},{"char":"🐱","tags":["cat"]}]`),
		"data/emoji/foods.json":   file(`[]`),
		"data/emoji/objects.json": file(`[]`),
		"data/emoji/nature.json":  file(`[]`),
		"data/emoji/symbols.json": file(`[]`),
		"data/emoji/events.json":  file(`[]`),
		"data/kaomoji.json":       file(`[{"char":"(＾▽＾)","tags":["기쁨","happy"]}]`),
	}
}

func newPrinterDeps(t *testing.T, lang string) (*prefs.Service, *catalog.Loader, state.CatalogStore) {
	t.Helper()
	svc := prefs.New(syncstore.NewMemoryStore(nil), nil)
	svc.DetectLanguage = func() string { return lang }
	if err := svc.LoadFromSync(context.Background()); err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	items := state.NewCatalogStore()
	loader := catalog.NewLoader(nil, catalog.FSSource{FS: fixtureFS()}, items)
	return svc, loader, items
}

func TestPrintMatchesEmoji(t *testing.T) {
	svc, loader, items := newPrinterDeps(t, "en")
	var out bytes.Buffer
	cfg := Config{Tab: "emoji", Query: "dog"}
	if err := PrintMatches(context.Background(), &out, cfg, svc, loader, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 match, got %d: %q", len(lines), out.String())
	}
	for _, want := range []string{"🐶", "Pet", "dog, puppy"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("expected %q in %q", want, lines[0])
		}
	}
	if strings.Contains(lines[0], "\x1b[") {
		t.Fatalf("expected no colour when not writing to a terminal, got %q", lines[0])
	}
}

func TestPrintMatchesKaomojiCategory(t *testing.T) {
	svc, loader, items := newPrinterDeps(t, "en")
	var out bytes.Buffer
	if err := PrintMatches(context.Background(), &out, Config{Tab: "kaomoji", Query: "happy"}, svc, loader, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "(＾▽＾)") || !strings.Contains(out.String(), "Joy") {
		t.Fatalf("expected kaomoji with its category, got %q", out.String())
	}
}

func TestPrintMatchesIncludesCustomItems(t *testing.T) {
	svc, loader, items := newPrinterDeps(t, "ko")
	ctx := context.Background()
	item, err := prefs.BuildCustomItem("🦄", "unicorn", catalog.Custom, false)
	if err != nil {
		t.Fatalf("build custom item: %v", err)
	}
	if err := svc.SaveCustomEmoji(ctx, item); err != nil {
		t.Fatalf("save custom emoji: %v", err)
	}
	var out bytes.Buffer
	if err := PrintMatches(ctx, &out, Config{Query: "unicorn"}, svc, loader, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "🦄") {
		t.Fatalf("expected custom emoji in output, got %q", out.String())
	}
	if strings.Contains(out.String(), catalog.CustomMarker) {
		t.Fatalf("expected marker tag hidden, got %q", out.String())
	}
}

func TestPrintMatchesNoResults(t *testing.T) {
	svc, loader, items := newPrinterDeps(t, "en")
	var out bytes.Buffer
	if err := PrintMatches(context.Background(), &out, Config{Query: "zzz"}, svc, loader, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestPainterColoursOnlyWhenEnabled(t *testing.T) {
	if got := painter(false)(0, "x"); got != "x" {
		t.Fatalf("expected plain cell, got %q", got)
	}
	if got := painter(true)(1, "x"); !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected escape sequence, got %q", got)
	}
}

func TestOpenStoreEphemeral(t *testing.T) {
	store, reloader, err := openStore(context.Background(), Config{Ephemeral: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(*syncstore.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
	if reloader != nil {
		t.Fatalf("expected no reloader for an ephemeral store")
	}
}

func TestOpenStoreMigratesLegacy(t *testing.T) {
	dir := t.TempDir()
	legacyPath := filepath.Join(dir, "local.json")
	if err := os.WriteFile(legacyPath, []byte(`{"favorites":"[\"😀\"]","theme":"dark"}`), 0o600); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}
	cfg := Config{StorePath: filepath.Join(dir, "sync.toml"), LegacyPath: legacyPath}
	store, reloader, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloader == nil {
		t.Fatalf("expected file store to be polled")
	}
	values, err := store.Get(context.Background(), syncstore.KeyFavorites, syncstore.KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	favs, _ := syncstore.Strings(values[syncstore.KeyFavorites])
	if len(favs) != 1 || favs[0] != "😀" {
		t.Fatalf("expected migrated favorites, got %v", values[syncstore.KeyFavorites])
	}
	if values[syncstore.KeyTheme] != "dark" {
		t.Fatalf("expected migrated theme, got %v", values[syncstore.KeyTheme])
	}
	if _, err := os.Stat(cfg.StorePath); err != nil {
		t.Fatalf("expected store file written: %v", err)
	}
}

func TestResolveTarget(t *testing.T) {
	orig := currentPane
	defer func() { currentPane = orig }()

	calls := 0
	currentPane = func(string) (string, error) {
		calls++
		return "%7", nil
	}
	if got := resolveTarget("sock", Config{NoInsert: true}); got != "" {
		t.Fatalf("expected no target with -no-insert, got %q", got)
	}
	if got := resolveTarget("sock", Config{TargetPane: "%3"}); got != "%3" {
		t.Fatalf("expected explicit pane, got %q", got)
	}
	if calls != 0 {
		t.Fatalf("expected current pane lookup skipped, got %d calls", calls)
	}
	if got := resolveTarget("sock", Config{}); got != "%7" {
		t.Fatalf("expected current pane, got %q", got)
	}

	currentPane = func(string) (string, error) { return "", errors.New("no server") }
	if got := resolveTarget("sock", Config{}); got != "" {
		t.Fatalf("expected clipboard-only mode on lookup failure, got %q", got)
	}
}

func TestRunStartsProgram(t *testing.T) {
	origSocket, origRun := resolveSocket, runProgram
	defer func() { resolveSocket, runProgram = origSocket, origRun }()

	resolveSocket = func(flag string) (string, error) { return "/tmp/test-socket", nil }
	var started tea.Model
	runProgram = func(m tea.Model) error {
		started = m
		return tea.ErrProgramKilled
	}

	cfg := Config{Ephemeral: true, NoInsert: true, Tab: "kaomoji", Language: "en", PollInterval: time.Hour}
	if err := Run(cfg); err != nil {
		t.Fatalf("expected killed program to be treated as a clean exit, got %v", err)
	}
	if _, ok := started.(*ui.Model); !ok {
		t.Fatalf("expected ui model, got %T", started)
	}
}

func TestRunSocketError(t *testing.T) {
	origSocket := resolveSocket
	defer func() { resolveSocket = origSocket }()
	resolveSocket = func(string) (string, error) { return "", errors.New("no user") }

	err := Run(Config{Ephemeral: true, NoInsert: true})
	if err == nil || !strings.Contains(err.Error(), "resolve socket path") {
		t.Fatalf("expected socket error, got %v", err)
	}
}
