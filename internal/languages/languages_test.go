package languages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleMap = `{"rust":{"name":"Rust","tag":"rs"},"csharp":{"name":"C#","url":"https://learn.microsoft.com/dotnet/csharp"}}`

func TestLoaderHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/langmap.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleMap))
	}))
	defer srv.Close()

	m, err := NewLoader(srv.URL+"/data/langmap.json", time.Second).LanguageMap(context.Background())
	if err != nil {
		t.Fatalf("LanguageMap: %v", err)
	}
	if m["csharp"].Name != "C#" || m["csharp"].Key != "csharp" {
		t.Fatalf("unexpected entry: %+v", m["csharp"])
	}

	if _, err := NewLoader(srv.URL+"/missing.json", time.Second).LanguageMap(context.Background()); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langmap.json")
	if err := os.WriteFile(path, []byte(sampleMap), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Loader{Location: path}.LanguageMap(context.Background())
	if err != nil {
		t.Fatalf("LanguageMap: %v", err)
	}
	if m["rust"].Tag != "rs" || m["rust"].Key != "rust" {
		t.Fatalf("unexpected entry: %+v", m["rust"])
	}
}

type failingSource struct{}

func (failingSource) LanguageMap(context.Context) (Map, error) {
	return nil, errors.New("boom")
}

func TestResolveFallsBackOnFailure(t *testing.T) {
	lookup := Resolve(context.Background(), failingSource{})
	if lookup.Available() {
		t.Fatal("expected no map")
	}
	info := lookup.Info("rust")
	if info.Name != "Rust" || info.Key != "rust" {
		t.Fatalf("fallback info = %+v", info)
	}
	if got := Resolve(context.Background(), nil).Info("go").Name; got != "Go" {
		t.Fatalf("nil source fallback = %q", got)
	}
}

func TestLookupPrefersMap(t *testing.T) {
	lookup := NewLookup(Map{"csharp": {Key: "csharp", Name: "C#"}})
	if got := lookup.Info("csharp").Name; got != "C#" {
		t.Fatalf("Info = %q", got)
	}
	if got := lookup.Info("zig").Name; got != "Zig" {
		t.Fatalf("missing key fallback = %q", got)
	}
	var nilLookup *Lookup
	if got := nilLookup.Info("").Name; got != "" {
		t.Fatalf("empty key = %q", got)
	}
}

func TestLoaderRequiresLocation(t *testing.T) {
	if _, err := (Loader{}).LanguageMap(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
