package pagination

import (
	"slices"

	"github.com/rshade/scrapeview/internal/records"
)

// Window is the slice of sorted records shown on the current page.
type Window struct {
	// Rows are the visible records in display order. Callers must not modify them.
	Rows []records.Record

	// EmptyRows is the number of padding rows that keep the table height
	// stable on a short page. The first page is never padded.
	EmptyRows int
}

// SortRecords returns a stably sorted copy of rows; the input is not modified.
func SortRecords(rows []records.Record, spec SortSpec) []records.Record {
	sorted := slices.Clone(rows)
	if sorted == nil {
		sorted = []records.Record{}
	}
	slices.SortStableFunc(sorted, GetComparator(spec.Order, spec.OrderBy))
	return sorted
}

// ComputeVisibleRows sorts a copy of rows under spec and cuts out the page
// described by page. Slicing past the end yields a shorter or empty window,
// never an error. A negative page or non-positive page size yields an empty
// window.
func ComputeVisibleRows(rows []records.Record, spec SortSpec, page PageSpec) Window {
	if page.Page < 0 || page.RowsPerPage <= 0 {
		return Window{Rows: []records.Record{}}
	}

	emptyRows := EmptyRowCount(len(rows), page)
	if page.Page > len(rows)/page.RowsPerPage {
		return Window{Rows: []records.Record{}, EmptyRows: emptyRows}
	}

	sorted := SortRecords(rows, spec)

	start := min(page.Offset(), len(sorted))
	end := min(page.End(), len(sorted))

	return Window{
		Rows:      sorted[start:end],
		EmptyRows: emptyRows,
	}
}

// EmptyRowCount returns max(0, (page+1)*rowsPerPage - total) for pages after
// the first, and 0 on the first page. The product saturates at math.MaxInt.
func EmptyRowCount(total int, page PageSpec) int {
	if page.Page <= 0 {
		return 0
	}
	return max(0, page.End()-max(total, 0))
}

// RowNumber returns the descending display number of the index-th visible
// row: total - page*rowsPerPage - index. Pages past the data have no visible
// rows; for them the offset is clamped to total.
func RowNumber(total int, page PageSpec, index int) int {
	return total - min(page.Offset(), total) - index
}
