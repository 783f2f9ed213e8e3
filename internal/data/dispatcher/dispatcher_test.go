package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/tmux-emoji-popup/internal/backend"
	"github.com/atomicstack/tmux-emoji-popup/internal/prefs"
	"github.com/atomicstack/tmux-emoji-popup/internal/state"
	"github.com/atomicstack/tmux-emoji-popup/internal/syncstore"
)

func newDispatcher(t *testing.T) (*Dispatcher, *prefs.Service) {
	t.Helper()
	svc := prefs.New(syncstore.NewMemoryStore(nil), nil)
	svc.DetectLanguage = func() string { return "ko" }
	if err := svc.LoadFromSync(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(svc), svc
}

func TestHandleStorageFavorites(t *testing.T) {
	d, svc := newDispatcher(t)
	res := d.Handle(backend.Event{Kind: backend.KindStorage, Data: syncstore.ChangeSet{
		syncstore.KeyFavorites: {NewValue: []interface{}{"😀"}},
	}})
	if !res.NeedRender || res.ThemeChanged {
		t.Fatalf("expected render only, got %+v", res)
	}
	if !svc.IsFavorite("😀") {
		t.Fatalf("expected favorite to be applied")
	}
}

func TestHandleStorageThemeOnly(t *testing.T) {
	d, svc := newDispatcher(t)
	res := d.Handle(backend.Event{Kind: backend.KindStorage, Data: syncstore.ChangeSet{
		syncstore.KeyTheme: {OldValue: "light", NewValue: "dark"},
	}})
	if res.NeedRender || !res.ThemeChanged || !res.Updated() {
		t.Fatalf("expected theme-only result, got %+v", res)
	}
	if svc.Preferences().Theme() != state.ThemeDark {
		t.Fatalf("expected dark theme, got %v", svc.Preferences().Theme())
	}
}

func TestHandleStorageError(t *testing.T) {
	d, _ := newDispatcher(t)
	res := d.Handle(backend.Event{Kind: backend.KindStorage, Err: errors.New("bad toml")})
	if res.Updated() {
		t.Fatalf("expected no updates on error, got %+v", res)
	}
}

func TestHandleTarget(t *testing.T) {
	d, _ := newDispatcher(t)
	res := d.Handle(backend.Event{Kind: backend.KindTarget, Data: true})
	if !res.TargetChanged || !res.TargetAvailable {
		t.Fatalf("expected available target, got %+v", res)
	}
	res = d.Handle(backend.Event{Kind: backend.KindTarget, Data: false, Err: errors.New("no server")})
	if !res.TargetChanged || res.TargetAvailable {
		t.Fatalf("expected unavailable target, got %+v", res)
	}
}
