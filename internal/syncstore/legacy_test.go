package syncstore

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMigrateCopiesOnce(t *testing.T) {
	legacy := MapLegacy{
		KeyFavorites:     `["😀","🐶"]`,
		KeyRecent:        `["🐶"]`,
		KeyTheme:         "dark",
		KeyCustomKaomoji: `[{"char":"(o_o)","tags":["추가"]}]`,
	}
	store := NewMemoryStore(nil)
	ctx := context.Background()
	if err := Migrate(ctx, legacy, store); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	values, _ := store.Get(ctx)
	favs, _ := Strings(values[KeyFavorites])
	if !reflect.DeepEqual(favs, []string{"😀", "🐶"}) {
		t.Fatalf("unexpected favorites %v", values[KeyFavorites])
	}
	if values[KeyTheme] != "dark" {
		t.Fatalf("expected raw theme string, got %v", values[KeyTheme])
	}
	kaomoji, _ := Items(values[KeyCustomKaomoji])
	if len(kaomoji) != 1 || kaomoji[0].Char != "(o_o)" {
		t.Fatalf("unexpected custom kaomoji %v", values[KeyCustomKaomoji])
	}
	if legacy[MigratedFlag] != "1" {
		t.Fatalf("expected migration flag set")
	}

	legacy[KeyFavorites] = `["🍎"]`
	if err := Migrate(ctx, legacy, store); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	values, _ = store.Get(ctx, KeyFavorites)
	favs, _ = Strings(values[KeyFavorites])
	if !reflect.DeepEqual(favs, []string{"😀", "🐶"}) {
		t.Fatalf("expected second migration to be skipped, got %v", favs)
	}
}

func TestMigrateFailureLeavesFlagUnset(t *testing.T) {
	legacy := MapLegacy{KeyTheme: "dark"}
	store := NewMemoryStore(nil)
	store.Fail(errors.New("offline"))
	if err := Migrate(context.Background(), legacy, store); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := legacy[MigratedFlag]; ok {
		t.Fatalf("expected flag to stay unset after failure")
	}
}

func TestMigrateSkipsMalformedJSON(t *testing.T) {
	legacy := MapLegacy{KeyFavorites: "not json", KeyRecent: `["😀"]`}
	store := NewMemoryStore(nil)
	if err := Migrate(context.Background(), legacy, store); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	values, _ := store.Get(context.Background())
	if _, ok := values[KeyFavorites]; ok {
		t.Fatalf("expected malformed favorites skipped")
	}
	if _, ok := values[KeyRecent]; !ok {
		t.Fatalf("expected recent migrated")
	}
}

func TestLegacyFile(t *testing.T) {
	dir := t.TempDir()
	legacy, err := OpenLegacy(filepath.Join(dir, "local.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := legacy.Get(MigratedFlag); ok {
		t.Fatalf("expected missing file to be empty")
	}
	if err := legacy.Set(MigratedFlag, "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := legacy.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	again, _ := OpenLegacy(filepath.Join(dir, "local.json"))
	if v, _ := again.Get(MigratedFlag); v != "1" {
		t.Fatalf("expected persisted flag, got %q", v)
	}
	if v, _ := again.Get(KeyTheme); v != "dark" {
		t.Fatalf("expected persisted theme, got %q", v)
	}
}
