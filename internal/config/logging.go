package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rshade/scrapeview/internal/logging"
)

// ToLoggingConfig converts LoggingConfig to logging.Config. A configured
// file switches the output to "file"; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns the Logging section of the global configuration.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}

// EnsureLogDir creates the directory of the configured log file.
func EnsureLogDir() error {
	file := GetLoggingConfig().File
	if file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	return nil
}
