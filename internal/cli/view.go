package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/scrapeview/internal/tui"
	"github.com/rshade/scrapeview/internal/viewer"
)

// ErrNotInteractive is returned by view when stdin or stdout is not a terminal.
var ErrNotInteractive = errors.New("view requires an interactive terminal, use list instead")

// NewViewCmd creates the interactive view command.
func NewViewCmd() *cobra.Command {
	var flags tableFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a snapshot interactively",
		Long: `Opens the report table in the terminal.

Keys:
  1 / 2 / 3     sort by date and time, scrape status, file name
  ← → or h l    previous / next page
  + / -         larger / smaller page size
  ↑ ↓ or k j    select a row
  enter         open the selected record
  /             filter by date (YYYY-MM-DD, empty clears)
  q             quit

Opened records are printed after the view closes.`,
		Example: `  scrapeview view --input decrees.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return ErrNotInteractive
			}
			return runView(cmd, &flags)
		},
	}

	addTableFlags(cmd, &flags)
	return cmd
}

func runView(cmd *cobra.Command, flags *tableFlags) (err error) {
	ctx := cmd.Context()
	s, err := openSession(ctx, cmd, flags)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	recorder := &viewer.RecordingNavigator{}
	model := tui.NewReportTableModel(ctx, s.table, s.snapshot.Category, recorder, s.cfg.Viewer.DownloadHost)

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	return printTargets(cmd, recorder.Targets())
}

// printTargets writes the targets opened during a session.
func printTargets(cmd *cobra.Command, targets []viewer.Target) error {
	out := viewer.WriterNavigator{W: cmd.OutOrStdout()}
	for _, target := range targets {
		if err := out.Navigate(cmd.Context(), target); err != nil {
			return err
		}
	}
	return nil
}
