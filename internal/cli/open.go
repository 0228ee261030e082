package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/scrapeview/internal/viewer"
)

// ErrIndexOutOfRange is returned when --index does not name a visible row.
var ErrIndexOutOfRange = errors.New("index out of range")

// NewOpenCmd creates the open command, which resolves the viewer target of
// one visible record.
func NewOpenCmd() *cobra.Command {
	var (
		flags tableFlags
		index int
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Show the viewer target of a visible record",
		Long: `Builds the viewer route, download link and local path of the record at
--index in the current visible window. The window is selected by the same
flags as list.`,
		Example: `  # Target of the first row on the persisted page
  scrapeview open --input decrees.json --index 0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOpen(cmd, &flags, index)
		},
	}

	addTableFlags(cmd, &flags)
	cmd.Flags().IntVar(&index, "index", 0, "0-based index of the record in the visible window")

	return cmd
}

func runOpen(cmd *cobra.Command, flags *tableFlags, index int) (err error) {
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

	rows := s.table.Visible().Rows
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("%w: %d (page %d has %d rows)", ErrIndexOutOfRange, index, s.table.Page(), len(rows))
	}

	target := viewer.BuildTarget(s.cfg.Viewer.DownloadHost, s.snapshot.Category, rows[index])
	logger.Debug().Ctx(ctx).Str("route", target.Route).Msg("opening record")

	return viewer.WriterNavigator{W: cmd.OutOrStdout()}.Navigate(ctx, target)
}
