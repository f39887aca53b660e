// internal/reports/reader.go
// Package reports loads benchmark reports and orders their results.
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mwiater/primeview/internal/logging"
)

// ErrNotFound is returned when no report exists for an id.
var ErrNotFound = errors.New("reports: report not found")

// Reader fetches a report by id.
type Reader interface {
	GetReport(ctx context.Context, id string) (*Report, error)
}

// DirReader reads "<id>.json" files from a directory.
type DirReader struct {
	Dir string
}

// GetReport loads the report with the given id. An empty id selects the most
// recent report in the directory.
func (d DirReader) GetReport(ctx context.Context, id string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		ids, err := d.List()
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, ErrNotFound
		}
		id = ids[len(ids)-1]
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}

	path := filepath.Join(d.Dir, id+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reports: read %s: %w", path, err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("reports: decode %s: %w", path, err)
	}
	if report.ID == "" {
		report.ID = id
	}
	return &report, nil
}

// List returns the report ids in the directory, sorted.
func (d DirReader) List() ([]string, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("reports: list %s: %w", d.Dir, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Fetch loads a report and degrades any failure to a nil report.
func Fetch(ctx context.Context, r Reader, id string) *Report {
	if r == nil {
		return nil
	}
	report, err := r.GetReport(ctx, id)
	if err != nil {
		logging.LogEvent("report %q unavailable: %v", id, err)
		return nil
	}
	return report
}
