package kvstore

import (
	"errors"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := Open(Options{Backend: BackendSQLite, Path: filepath.Join(dir, "db", "kv.sqlite")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	pebbleStore, err := Open(Options{Backend: BackendPebble, Path: filepath.Join(dir, "pebble")})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	stores := map[string]Store{
		BackendMemory: NewMemory(),
		BackendSQLite: sqliteStore,
		BackendPebble: pebbleStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			if ok, err := store.Contains("k"); err != nil || ok {
				t.Fatalf("Contains on empty store = %v, %v", ok, err)
			}
			if _, err := store.Get("k"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := store.Set("k", []byte("one")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := store.Set("k", []byte("two")); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, err := store.Get("k")
			if err != nil || string(got) != "two" {
				t.Fatalf("Get = %q, %v", got, err)
			}
			if ok, err := store.Contains("k"); err != nil || !ok {
				t.Fatalf("Contains = %v, %v", ok, err)
			}
			if err := store.Remove("k"); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if err := store.Remove("k"); err != nil {
				t.Fatalf("Remove missing: %v", err)
			}
			if _, err := store.Get("k"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after remove, got %v", err)
			}
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.sqlite")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set("presets", []byte("[]")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, err := second.Get("presets")
	if err != nil || string(got) != "[]" {
		t.Fatalf("Get after reopen = %q, %v", got, err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(Options{Backend: "redis"}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
	if !ValidBackend("") || !ValidBackend(" SQLite ") || ValidBackend("redis") {
		t.Fatal("unexpected ValidBackend results")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	_ = m.Set("k", buf)
	buf[0] = 'z'
	got, _ := m.Get("k")
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %q", got)
	}
}
