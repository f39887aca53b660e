// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/primeview/internal/kvstore"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad covers a valid file, invalid JSON, an unknown store backend and a
// missing file.
func TestLoad(t *testing.T) {
	dir := t.TempDir()

	valid := writeConfig(t, dir, "valid.json", `{"reportsDir": "reports", "storeBackend": "pebble", "pageSize": 5}`)
	cfg, err := Load(valid)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.ConfigPath != valid || cfg.ReportsDirOrDefault() != "reports" || cfg.PageSizeOrDefault() != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.StorePathOrDefault() != filepath.Join("data", "primeview.pebble") {
		t.Fatalf("store path = %q", cfg.StorePathOrDefault())
	}

	if _, err := Load(writeConfig(t, dir, "broken.json", `{ "reportsDir": `)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	_, err = Load(writeConfig(t, dir, "backend.json", `{"storeBackend": "redis"}`))
	if !errors.Is(err, kvstore.ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "nonexistent.json")); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout())
	}
	if cfg.LogFilePath() != "primeview.log" {
		t.Fatalf("LogFilePath = %q", cfg.LogFilePath())
	}
	if cfg.StoreBackendOrDefault() != kvstore.BackendSQLite {
		t.Fatalf("backend = %q", cfg.StoreBackendOrDefault())
	}
	if cfg.StorePathOrDefault() != filepath.Join("data", "primeview.db") {
		t.Fatalf("store path = %q", cfg.StorePathOrDefault())
	}
	if cfg.PageSizeOrDefault() != 20 || cfg.LanguageMapLocation() != "data/langmap.json" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	memory := Config{StoreBackend: "Memory"}
	if memory.StoreBackendOrDefault() != kvstore.BackendMemory || memory.StorePathOrDefault() != "" {
		t.Fatalf("memory backend resolved to %q at %q", memory.StoreBackendOrDefault(), memory.StorePathOrDefault())
	}
	if err := (Config{PageSize: -1}).Validate(); err == nil {
		t.Fatal("expected negative page size to fail")
	}
}

func TestLoadDefaultPathAndLegacyFallback(t *testing.T) {
	dir := t.TempDir()
	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "no configuration file found") {
		t.Fatalf("expected missing config error, got %v", err)
	}

	writeConfig(t, dir, legacyConfigPath, `{"timeout": 3}`)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("legacy Load: %v", err)
	}
	if cfg.RequestTimeout() != 3*time.Second || cfg.ConfigPath != legacyConfigPath {
		t.Fatalf("unexpected legacy config: %+v", cfg)
	}

	writeConfig(t, dir, DefaultConfigPath, `{"timeout": 7}`)
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("default Load: %v", err)
	}
	if cfg.RequestTimeout() != 7*time.Second {
		t.Fatalf("expected default path to win, got %v", cfg.RequestTimeout())
	}
}

func TestShowConfig(t *testing.T) {
	var out bytes.Buffer
	ShowConfig(&out, "", Config{StoreBackend: "memory", Debug: true})
	text := out.String()
	for _, want := range []string{"No config file loaded", "Store Backend:   memory", "Debug:           true", "Page Size:       20"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Store Path") {
		t.Error("memory backend should not print a store path")
	}
}
