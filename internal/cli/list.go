package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/scrapeview/internal/pagination"
	"github.com/rshade/scrapeview/internal/tui"
)

// NewListCmd creates the list command, which prints one page of a snapshot.
func NewListCmd() *cobra.Command {
	var flags tableFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of a snapshot",
		Long: `Prints the visible window of a snapshot as a table.

Rows are numbered in descending order across the whole result set. Pages past
the first are padded to a full page; the padding is reported below the table.
The page shown is persisted and restored by the next command that omits --page.`,
		Example: `  # First page, newest first
  scrapeview list --input decrees.json --page 0

  # Sort by scrape status, failed first
  scrapeview list --input decrees.json --sort status:asc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, &flags)
		},
	}

	addTableFlags(cmd, &flags)
	return cmd
}

func runList(cmd *cobra.Command, flags *tableFlags) (err error) {
	s, err := openSession(cmd.Context(), cmd, flags)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if title := s.snapshot.Category.Title; title != "" {
		fmt.Fprintln(cmd.OutOrStdout(), title)
	}
	return renderTable(cmd.OutOrStdout(), s.table)
}

// renderTable writes the visible window, the padding count and the footer.
func renderTable(out io.Writer, table *pagination.Table) error {
	const tabPadding = 2
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, tui.RenderHeaderCells(table.Sort()))
	fmt.Fprintln(w, "--\t-------------\t-------------\t---------")

	window := table.Visible()
	for i, rec := range window.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			table.RowNumber(i),
			tui.FormatDateTime(rec.DateTime),
			tui.FormatStatus(rec.Status),
			rec.FileName,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if window.EmptyRows > 0 {
		fmt.Fprintf(out, "(%d empty rows)\n", window.EmptyRows)
	}
	_, err := fmt.Fprintln(out, tui.RenderFooter(table))
	return err
}
