// Package config loads scrapeview configuration from
// ~/.scrapeview/config.yaml, a project .env file and SCRAPEVIEW_*
// environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rshade/scrapeview/internal/pagestore"
	"github.com/rshade/scrapeview/internal/pagination"
	"github.com/rshade/scrapeview/internal/viewer"
)

// Environment variables recognised by ApplyEnvOverrides and Load.
const (
	EnvConfigPath   = "SCRAPEVIEW_CONFIG"
	EnvLogLevel     = "SCRAPEVIEW_LOG_LEVEL"
	EnvLogFormat    = "SCRAPEVIEW_LOG_FORMAT"
	EnvLogFile      = "SCRAPEVIEW_LOG_FILE"
	EnvRowsPerPage  = "SCRAPEVIEW_ROWS_PER_PAGE"
	EnvStoreBackend = "SCRAPEVIEW_STORE_BACKEND"
	EnvStorePath    = "SCRAPEVIEW_STORE_PATH"
	EnvDownloadHost = "SCRAPEVIEW_DOWNLOAD_HOST"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete scrapeview configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Table   TableConfig   `yaml:"table"`
	Store   StoreConfig   `yaml:"store"`
	Viewer  ViewerConfig  `yaml:"viewer"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// TableConfig holds the initial table state.
type TableConfig struct {
	RowsPerPage int    `yaml:"rows_per_page"`
	Order       string `yaml:"order"`
	OrderBy     string `yaml:"order_by"`
}

// StoreConfig selects the page-index store.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// ViewerConfig configures record navigation targets.
type ViewerConfig struct {
	DownloadHost string `yaml:"download_host"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Table: TableConfig{
			RowsPerPage: pagination.DefaultRowsPerPage,
			Order:       string(pagination.DefaultOrder),
			OrderBy:     string(pagination.DefaultOrderBy),
		},
		Store: StoreConfig{
			Backend: pagestore.BackendFile,
		},
		Viewer: ViewerConfig{
			DownloadHost: viewer.DefaultDownloadHost,
		},
	}
}

// DefaultConfigPath returns ~/.scrapeview/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(homeDir, ".scrapeview", "config.yaml"), nil
}

// Load builds the effective configuration. path selects the YAML file; when
// empty, SCRAPEVIEW_CONFIG and then DefaultConfigPath are used. A missing
// file is not an error. dotEnvPath, when non-empty and present, is loaded
// into the process environment first without overriding existing variables.
func Load(path, dotEnvPath string) (*Config, error) {
	if err := LoadDotEnv(dotEnvPath); err != nil {
		return nil, err
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := New()
	if _, err := os.Stat(path); err == nil {
		if mergeErr := MergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	if err := cfg.ApplyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file if it exists.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides applies SCRAPEVIEW_* variables found through lookupEnv.
func (c *Config) ApplyEnvOverrides(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
	if v, ok := lookupEnv(EnvRowsPerPage); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvRowsPerPage, v)
		}
		c.Table.RowsPerPage = n
	}
	if v, ok := lookupEnv(EnvStoreBackend); ok && v != "" {
		c.Store.Backend = v
	}
	if v, ok := lookupEnv(EnvStorePath); ok {
		c.Store.Path = v
	}
	if v, ok := lookupEnv(EnvDownloadHost); ok && v != "" {
		c.Viewer.DownloadHost = v
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if !pagination.IsValidRowsPerPage(c.Table.RowsPerPage) {
		return fmt.Errorf("%w: table.rows_per_page: %w", ErrInvalidConfig, pagination.ErrInvalidRowsPerPage)
	}
	if err := c.SortSpec().Validate(); err != nil {
		return fmt.Errorf("%w: table: %w", ErrInvalidConfig, err)
	}
	if !pagestore.IsValidBackend(c.Store.Backend) {
		return fmt.Errorf("%w: store.backend %q (want memory, file or sqlite)", ErrInvalidConfig, c.Store.Backend)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (want console or json)", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// SortSpec returns the configured initial ordering.
func (c *Config) SortSpec() pagination.SortSpec {
	return pagination.SortSpec{
		OrderBy: pagination.SortKey(c.Table.OrderBy),
		Order:   pagination.Order(strings.ToLower(c.Table.Order)),
	}
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
