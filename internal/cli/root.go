// Package cli implements the scrapeview command line.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/scrapeview/internal/config"
	"github.com/rshade/scrapeview/internal/logging"
)

// dotEnvFile is loaded from the working directory before env overrides.
const dotEnvFile = ".env"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the scrapeview CLI.
// It loads configuration, wires up logging and tracing, and registers the
// list, view, open and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "scrapeview",
		Short:   "Browse scraped-document reports",
		Long:    "scrapeview: sort, page and open records of scraped-document snapshots",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath, dotEnvFile)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.scrapeview/config.yaml)")
	cmd.AddCommand(NewListCmd(), NewViewCmd(), NewOpenCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Print the first page of a snapshot, newest first
  scrapeview list --input decrees.json

  # Second page, 25 rows per page, sorted by file name
  scrapeview list --input decrees.json --page 1 --rows-per-page 25 --sort fileName:asc

  # Only records scraped on a given day
  scrapeview list --input decrees.json --date 2024-03-01

  # Browse interactively
  scrapeview view --input decrees.json

  # Show where the third visible record opens
  scrapeview open --input decrees.json --index 2

  # Show the effective configuration
  scrapeview config show`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration commands"}
	cmd.AddCommand(NewConfigShowCmd())
	return cmd
}
