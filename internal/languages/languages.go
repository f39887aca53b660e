// internal/languages/languages.go
// Package languages resolves implementation keys to display information,
// falling back to a synthesized name when the language map is unavailable.
package languages

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mwiater/primeview/internal/logging"
	"github.com/mwiater/primeview/internal/util"
)

// Info describes one implementation language.
type Info struct {
	Key  string `json:"-"`
	Name string `json:"name"`
	Tag  string `json:"tag,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Map is keyed by implementation key.
type Map map[string]Info

// Source fetches the language map.
type Source interface {
	LanguageMap(ctx context.Context) (Map, error)
}

// Loader reads the map from a file path or an http(s) URL.
type Loader struct {
	Location string
	Client   *http.Client
}

// NewLoader returns a Loader with a client bounded by timeout.
func NewLoader(location string, timeout time.Duration) Loader {
	return Loader{Location: location, Client: &http.Client{Timeout: timeout}}
}

// LanguageMap fetches and decodes the map, setting each entry's Key.
func (l Loader) LanguageMap(ctx context.Context) (Map, error) {
	location := strings.TrimSpace(l.Location)
	if location == "" {
		return nil, fmt.Errorf("languages: no language map configured")
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		data, err = l.fetch(ctx, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("languages: load %s: %w", location, err)
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("languages: decode %s: %w", location, err)
	}
	for key, info := range m {
		info.Key = key
		m[key] = info
	}
	return m, nil
}

func (l Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Lookup answers display-info queries. A nil map is allowed.
type Lookup struct {
	languages Map
}

// NewLookup wraps m.
func NewLookup(m Map) *Lookup {
	return &Lookup{languages: m}
}

// Resolve fetches the map from src and degrades a failure to an empty lookup.
func Resolve(ctx context.Context, src Source) *Lookup {
	if src == nil {
		return NewLookup(nil)
	}
	m, err := src.LanguageMap(ctx)
	if err != nil {
		logging.LogEvent("language map unavailable, using fallback names: %v", err)
		return NewLookup(nil)
	}
	return NewLookup(m)
}

// Available reports whether a language map was loaded.
func (l *Lookup) Available() bool {
	return l != nil && l.languages != nil
}

// Info returns the entry for key, or one named after the capitalized key.
func (l *Lookup) Info(key string) Info {
	if l != nil {
		if info, ok := l.languages[key]; ok {
			return info
		}
	}
	return Info{Key: key, Name: util.Capitalize(key)}
}
