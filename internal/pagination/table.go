package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/rshade/scrapeview/internal/logging"
	"github.com/rshade/scrapeview/internal/pagestore"
	"github.com/rshade/scrapeview/internal/records"
)

// Options configures a Table.
type Options struct {
	// Sort is the initial ordering. The zero value selects DefaultSortSpec.
	Sort SortSpec

	// RowsPerPage is the initial page size. Zero selects DefaultRowsPerPage.
	RowsPerPage int

	// Page is the caller-supplied initial page. When nil, Mount restores the
	// page from Store, falling back to 0.
	Page *int

	// Store persists the page index under pagestore.PageNumberKey. Optional.
	Store pagestore.Store

	// OnPageChange is called with the new page on every page transition.
	OnPageChange func(page int)

	// OnFilterDate receives date-filter selections verbatim.
	OnFilterDate func(date time.Time)
}

// Table is the pagination state machine of the report table. Its state is
// the tuple (order, orderBy, page, rowsPerPage) plus the current row
// snapshot. A Table is owned by a single view session and is not safe for
// concurrent use.
type Table struct {
	sort        SortSpec
	page        int
	rowsPerPage int

	rows       []records.Record
	generation uint64

	store        pagestore.Store
	initialPage  *int
	onPageChange func(int)
	onFilterDate func(time.Time)

	cache windowCache
}

type windowKey struct {
	generation uint64
	sort       SortSpec
	page       PageSpec
}

type windowCache struct {
	valid  bool
	key    windowKey
	window Window
}

// NewTable validates opts and returns a Table. Call Mount before use to
// restore and persist the initial page.
func NewTable(opts Options) (*Table, error) {
	sortSpec := opts.Sort
	if sortSpec == (SortSpec{}) {
		sortSpec = DefaultSortSpec()
	}
	if err := sortSpec.Validate(); err != nil {
		return nil, err
	}

	rowsPerPage := opts.RowsPerPage
	if rowsPerPage == 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	if !IsValidRowsPerPage(rowsPerPage) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRowsPerPage, rowsPerPage)
	}

	page := DefaultPage
	if opts.Page != nil {
		if *opts.Page < 0 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidPage, *opts.Page)
		}
		page = *opts.Page
	}

	return &Table{
		sort:         sortSpec,
		page:         page,
		rowsPerPage:  rowsPerPage,
		rows:         []records.Record{},
		store:        opts.Store,
		initialPage:  opts.Page,
		onPageChange: opts.OnPageChange,
		onFilterDate: opts.OnFilterDate,
	}, nil
}

// Mount establishes the initial page. Without a caller-supplied page, the
// page is restored from the store; a missing, negative or unreadable value
// yields page 0. The effective page is then written back to the store.
func (t *Table) Mount(ctx context.Context) {
	logger := logging.FromContext(ctx).With().
		Str("component", "pagination").
		Str("operation", "Mount").
		Logger()

	if t.initialPage == nil && t.store != nil {
		restored, ok, err := t.store.Get(ctx, pagestore.PageNumberKey)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("could not restore page index, starting at first page")
		case ok && restored >= 0:
			t.page = restored
			logger.Debug().Int("page", restored).Msg("restored page index")
			if t.onPageChange != nil {
				t.onPageChange(restored)
			}
		case ok:
			logger.Warn().Int("page", restored).Msg("ignoring negative persisted page index")
		}
	}

	t.persistPage(ctx)
}

// RequestSort applies a sort-header activation for key. Activating the
// current key while ascending switches to descending; every other
// activation sorts ascending by key. Page and page size are unchanged.
func (t *Table) RequestSort(ctx context.Context, key SortKey) error {
	if !key.IsSortable() {
		return fmt.Errorf("%w: %q", ErrUnsortableField, key)
	}

	isAsc := t.sort.OrderBy == key && t.sort.Order == OrderAsc
	if isAsc {
		t.sort.Order = OrderDesc
	} else {
		t.sort.Order = OrderAsc
	}
	t.sort.OrderBy = key

	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("component", "pagination").
		Str("order_by", string(t.sort.OrderBy)).
		Str("order", string(t.sort.Order)).
		Msg("sort changed")
	return nil
}

// ChangePage moves to page p, notifies OnPageChange and persists p.
// Pages beyond the data are allowed and render as an empty window.
func (t *Table) ChangePage(ctx context.Context, p int) error {
	if p < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p)
	}
	t.setPage(ctx, p)
	return nil
}

// ChangeRowsPerPage switches the page size to r and resets the page to 0.
// Sizes outside RowsPerPageOptions are rejected and leave state unchanged.
func (t *Table) ChangeRowsPerPage(ctx context.Context, r int) error {
	if !IsValidRowsPerPage(r) {
		return fmt.Errorf("%w: got %d", ErrInvalidRowsPerPage, r)
	}
	t.rowsPerPage = r
	t.setPage(ctx, 0)
	return nil
}

// SetFilterDate hands a date-filter selection to OnFilterDate. The table
// does not interpret the value; the caller re-derives rows and calls SetRows.
func (t *Table) SetFilterDate(ctx context.Context, date time.Time) {
	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("component", "pagination").
		Time("filter_date", date).
		Msg("filter date selected")
	if t.onFilterDate != nil {
		t.onFilterDate(date)
	}
}

// SetRows installs a new row snapshot. The slice is treated as read-only.
func (t *Table) SetRows(rows []records.Record) {
	if rows == nil {
		rows = []records.Record{}
	}
	t.rows = rows
	t.generation++
	t.cache.valid = false
}

// Visible returns the window for the current state. The result is cached
// until the rows, sort or page state change.
func (t *Table) Visible() Window {
	key := windowKey{generation: t.generation, sort: t.sort, page: t.PageSpec()}
	if t.cache.valid && t.cache.key == key {
		return t.cache.window
	}
	w := ComputeVisibleRows(t.rows, t.sort, key.page)
	t.cache = windowCache{valid: true, key: key, window: w}
	return w
}

// Meta returns display metadata for the current page.
func (t *Table) Meta() Meta {
	return NewMeta(t.PageSpec(), len(t.rows))
}

// RowNumber returns the display number of the index-th visible row.
func (t *Table) RowNumber(index int) int {
	return RowNumber(len(t.rows), t.PageSpec(), index)
}

// Sort returns the current ordering.
func (t *Table) Sort() SortSpec { return t.sort }

// Page returns the current 0-based page index.
func (t *Table) Page() int { return t.page }

// RowsPerPage returns the current page size.
func (t *Table) RowsPerPage() int { return t.rowsPerPage }

// PageSpec returns the current page window.
func (t *Table) PageSpec() PageSpec {
	return PageSpec{Page: t.page, RowsPerPage: t.rowsPerPage}
}

// Rows returns the current snapshot.
func (t *Table) Rows() []records.Record { return t.rows }

func (t *Table) setPage(ctx context.Context, p int) {
	t.page = p
	if t.onPageChange != nil {
		t.onPageChange(p)
	}
	t.persistPage(ctx)
}

// persistPage writes the current page to the store. Failures are logged
// and otherwise ignored.
func (t *Table) persistPage(ctx context.Context) {
	if t.store == nil {
		return
	}
	if err := t.store.Set(ctx, pagestore.PageNumberKey, t.page); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "pagination").
			Str("operation", "persistPage").
			Int("page", t.page).
			Err(err).
			Msg("failed to persist page index")
	}
}
