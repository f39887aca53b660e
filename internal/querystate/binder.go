// internal/querystate/binder.go
// Package querystate keeps a declared set of view fields synchronized with the
// query string of a location, seeding first-time values from a fallback store.
package querystate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mwiater/primeview/internal/kvstore"
	"github.com/mwiater/primeview/internal/logging"
)

// rememberPrefix namespaces remembered field values in the fallback store.
const rememberPrefix = "QueryString."

// ErrDuplicateKey is returned by New when two fields share a query key.
var ErrDuplicateKey = errors.New("querystate: duplicate query key")

// Navigator exposes the current location and replaces it without adding a
// history entry.
type Navigator interface {
	URI() string
	ReplaceURI(uri string)
}

// Binder owns the ordered field table.
type Binder struct {
	fields   []Field
	fallback kvstore.Store
}

// New validates the field table. fallback may be nil.
func New(fallback kvstore.Store, fields ...Field) (*Binder, error) {
	seen := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			return nil, fmt.Errorf("querystate: field %q has no key", f.Name)
		}
		if f.get == nil || f.set == nil {
			return nil, fmt.Errorf("querystate: field %q has no accessors", f.Name)
		}
		if other, ok := seen[f.Key]; ok {
			return nil, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateKey, f.Key, other, f.Name)
		}
		seen[f.Key] = f.Name
	}
	return &Binder{fields: fields, fallback: fallback}, nil
}

// Fields returns the declared fields in order.
func (b *Binder) Fields() []Field {
	out := make([]Field, len(b.fields))
	copy(out, b.fields)
	return out
}

// Load seeds every field from the navigator's current query string.
func (b *Binder) Load(nav Navigator) {
	b.Seed(parseQuery(nav.URI()))
}

// Seed sets every field from values. A key absent from values takes the
// remembered value from the fallback store, then the declared default.
func (b *Binder) Seed(values url.Values) {
	for _, f := range b.fields {
		if vs, ok := values[f.Key]; ok && len(vs) > 0 {
			f.apply(vs[0])
			continue
		}
		if remembered, ok := b.remembered(f); ok {
			f.apply(remembered)
			continue
		}
		f.apply(f.Default)
	}
}

// Query renders the bound fields in declaration order, omitting fields at
// their default value.
func (b *Binder) Query() string {
	var parts []string
	for _, f := range b.fields {
		value := f.get()
		if value == f.Default {
			continue
		}
		parts = append(parts, url.QueryEscape(f.Key)+"="+url.QueryEscape(value))
	}
	return strings.Join(parts, "&")
}

// URI returns base with its query replaced by the bound fields.
func (b *Binder) URI(base string) string {
	path := base
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if q := b.Query(); q != "" {
		return path + "?" + q
	}
	return path
}

// Sync rewrites the navigator's location from the bound fields when it
// differs, and saves remembered fields. It reports whether the location changed.
func (b *Binder) Sync(nav Navigator) bool {
	b.remember()

	current := nav.URI()
	next := b.URI(current)
	if next == current {
		return false
	}
	logging.LogTransition("querystate", current, next)
	nav.ReplaceURI(next)
	return true
}

func (b *Binder) remembered(f Field) (string, bool) {
	if !f.Remember || b.fallback == nil {
		return "", false
	}
	raw, err := b.fallback.Get(rememberPrefix + f.Key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			logging.LogEvent("querystate: read remembered %s: %v", f.Key, err)
		}
		return "", false
	}
	return string(raw), true
}

func (b *Binder) remember() {
	if b.fallback == nil {
		return
	}
	for _, f := range b.fields {
		if !f.Remember {
			continue
		}
		if err := b.fallback.Set(rememberPrefix+f.Key, []byte(f.get())); err != nil {
			logging.LogEvent("querystate: remember %s: %v", f.Key, err)
		}
	}
}

// parseQuery extracts query values from uri, keeping whatever parses.
func parseQuery(uri string) url.Values {
	raw := uri
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	} else {
		return url.Values{}
	}
	if i := strings.Index(raw, "#"); i >= 0 {
		raw = raw[:i]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		logging.LogDebug("querystate: partial query %q: %v", raw, err)
	}
	return values
}
