package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/scrapeview/internal/config"
	"github.com/rshade/scrapeview/internal/logging"
	"github.com/rshade/scrapeview/internal/pagestore"
	"github.com/rshade/scrapeview/internal/pagination"
	"github.com/rshade/scrapeview/internal/records"
)

// tableFlags holds the flags shared by commands that build a table.
type tableFlags struct {
	inputs      []string
	page        int
	rowsPerPage int
	sort        string
	date        string
}

// addTableFlags registers the shared table flags on cmd.
func addTableFlags(cmd *cobra.Command, flags *tableFlags) {
	cmd.Flags().StringSliceVarP(&flags.inputs, "input", "i", nil,
		"snapshot JSON file (repeatable, '-' for stdin)")
	cmd.Flags().IntVar(&flags.page, "page", 0,
		"0-based page to show (default: last persisted page)")
	cmd.Flags().IntVar(&flags.rowsPerPage, "rows-per-page", 0,
		"rows per page: 5, 10, 25, 100, 500 or 1000 (default from config)")
	cmd.Flags().StringVar(&flags.sort, "sort", "",
		"sort as key[:asc|desc] with key dateTime, status or fileName (default from config)")
	cmd.Flags().StringVar(&flags.date, "date", "",
		"only show records from this day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("input")
}

// session is a loaded snapshot bound to a mounted table and its store.
type session struct {
	snapshot *records.Snapshot
	table    *pagination.Table
	store    pagestore.StoreCloser
	cfg      *config.Config
}

// Close releases the page store.
func (s *session) Close() error {
	return s.store.Close()
}

// openSession loads the snapshot, opens the configured page store and
// mounts a table over the rows. A page is only forced when --page was given;
// otherwise the persisted page is restored.
func openSession(ctx context.Context, cmd *cobra.Command, flags *tableFlags) (*session, error) {
	cfg := config.GetGlobalConfig()

	sortSpec := cfg.SortSpec()
	if flags.sort != "" {
		parsed, err := pagination.ParseSort(flags.sort)
		if err != nil {
			return nil, err
		}
		sortSpec = parsed
	}

	rowsPerPage := cfg.Table.RowsPerPage
	if cmd.Flags().Changed("rows-per-page") {
		rowsPerPage = flags.rowsPerPage
	}

	var page *int
	if cmd.Flags().Changed("page") {
		page = &flags.page
	}

	filterDate, err := records.ParseFilterDate(flags.date)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q: %w", flags.date, err)
	}

	snap, err := records.LoadFiles(ctx, flags.inputs)
	if err != nil {
		return nil, err
	}

	store, err := pagestore.Open(ctx, cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening page store: %w", err)
	}

	var table *pagination.Table
	table, err = pagination.NewTable(pagination.Options{
		Sort:        sortSpec,
		RowsPerPage: rowsPerPage,
		Page:        page,
		Store:       store,
		OnFilterDate: func(date time.Time) {
			table.SetRows(records.FilterByDate(snap.Rows, date))
		},
	})
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}

	table.Mount(ctx)
	table.SetRows(snap.Rows)
	if !filterDate.IsZero() {
		table.SetFilterDate(ctx, filterDate)
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("operation", "openSession").
		Int("records", len(snap.Rows)).
		Int("visible_records", len(table.Rows())).
		Int("page", table.Page()).
		Int("rows_per_page", table.RowsPerPage()).
		Msg("session opened")

	return &session{snapshot: snap, table: table, store: store, cfg: cfg}, nil
}
