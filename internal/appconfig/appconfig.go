// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mwiater/primeview/internal/kvstore"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout bounds the language map download.
	defaultRequestTimeout = 10 * time.Second
	// defaultReportsDir holds "<id>.json" report files.
	defaultReportsDir = "data/reports"
	// defaultLanguageMap is read when no language map location is configured.
	defaultLanguageMap = "data/langmap.json"
	// defaultPageSize is the number of results per table page.
	defaultPageSize = 20
	// defaultStoreDir holds the preset and panel state store.
	defaultStoreDir = "data"
)

// Config represents the top-level application configuration.
type Config struct {
	ReportsDir   string `json:"reportsDir,omitempty"`
	LanguageMap  string `json:"languageMap,omitempty"`
	StoreBackend string `json:"storeBackend,omitempty"`
	StorePath    string `json:"storePath,omitempty"`
	PageSize     int    `json:"pageSize,omitempty"`
	Timeout      int    `json:"timeout,omitempty"`
	LogFile      string `json:"logFile,omitempty"`
	Debug        bool   `json:"debug"`
	ConfigPath   string `json:"-"`
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.Timeout) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "primeview.log"
}

// ReportsDirOrDefault returns the report directory.
func (c Config) ReportsDirOrDefault() string {
	if dir := strings.TrimSpace(c.ReportsDir); dir != "" {
		return dir
	}
	return defaultReportsDir
}

// LanguageMapLocation returns the language map file path or URL.
func (c Config) LanguageMapLocation() string {
	if loc := strings.TrimSpace(c.LanguageMap); loc != "" {
		return loc
	}
	return defaultLanguageMap
}

// StoreBackendOrDefault returns the key-value backend name.
func (c Config) StoreBackendOrDefault() string {
	if b := strings.ToLower(strings.TrimSpace(c.StoreBackend)); b != "" {
		return b
	}
	return kvstore.BackendSQLite
}

// StorePathOrDefault returns the store location, choosing a default per backend.
func (c Config) StorePathOrDefault() string {
	if path := strings.TrimSpace(c.StorePath); path != "" {
		return path
	}
	switch c.StoreBackendOrDefault() {
	case kvstore.BackendPebble:
		return filepath.Join(defaultStoreDir, "primeview.pebble")
	case kvstore.BackendSQLite:
		return filepath.Join(defaultStoreDir, "primeview.db")
	default:
		return ""
	}
}

// PageSizeOrDefault returns the table page size.
func (c Config) PageSizeOrDefault() int {
	if c.PageSize <= 0 {
		return defaultPageSize
	}
	return c.PageSize
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if !kvstore.ValidBackend(c.StoreBackendOrDefault()) {
		return fmt.Errorf("%w %q (want one of %s)", kvstore.ErrUnknownBackend, c.StoreBackend, strings.Join(kvstore.Backends(), ", "))
	}
	if c.PageSize < 0 {
		return errors.New("pageSize must not be negative")
	}
	return nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, config.Validate()
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
