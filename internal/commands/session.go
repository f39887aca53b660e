package primeview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/primeview/internal/appconfig"
	"github.com/mwiater/primeview/internal/kvstore"
	"github.com/mwiater/primeview/internal/languages"
	"github.com/mwiater/primeview/internal/reports"
	"github.com/mwiater/primeview/internal/reportview"
)

// defaultLocation is the report page opened when no location is given.
const defaultLocation = "/report"

// openStore opens the configured preset store, creating its directory.
func openStore(cfg appconfig.Config) (kvstore.Store, error) {
	backend, path := cfg.StoreBackendOrDefault(), cfg.StorePathOrDefault()
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
	}
	store, err := kvstore.Open(kvstore.Options{Backend: backend, Path: path})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	return store, nil
}

// openPage loads a report page at uri. With withData set the page reads the
// report and the language map; otherwise it only decodes the location.
func openPage(ctx context.Context, cfg appconfig.Config, uri string, store kvstore.Store, withData bool) (*reportview.Memory, error) {
	opts := reportview.Options{Store: store}
	if withData {
		opts.Reports = reports.DirReader{Dir: cfg.ReportsDirOrDefault()}
		opts.Languages = languages.NewLoader(cfg.LanguageMapLocation(), cfg.RequestTimeout())
	}

	page, err := reportview.NewMemory(normalizeLocation(uri), cfg.PageSizeOrDefault(), opts)
	if err != nil {
		return nil, err
	}
	page.SetParameters()
	page.Initialize(ctx)
	page.AfterRender()
	return page, nil
}

// normalizeLocation accepts a full location, a bare query or nothing.
func normalizeLocation(uri string) string {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return defaultLocation
	case strings.HasPrefix(uri, "?"):
		return defaultLocation + uri
	case !strings.Contains(uri, "/") && strings.Contains(uri, "="):
		return defaultLocation + "?" + uri
	}
	return uri
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
