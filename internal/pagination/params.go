package pagination

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// SortKey names the record field a table is ordered by.
type SortKey string

// Record fields addressable by a sort header. Only DateTime, Status and
// FileName are sortable; ID and FileLink columns have no sort control.
const (
	SortByID       SortKey = "id"
	SortByDateTime SortKey = "dateTime"
	SortByStatus   SortKey = "status"
	SortByFileName SortKey = "fileName"
	SortByFileLink SortKey = "fileLink"
)

// Order is the sort direction.
type Order string

// Sort directions.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Defaults and the closed set of page sizes offered by the page-size selector.
const (
	DefaultRowsPerPage        = 10
	DefaultOrder              = OrderDesc
	DefaultOrderBy            = SortByDateTime
	sortPartsMax              = 2
	DefaultPage               = 0
	defaultParsedOrder        = OrderAsc
	sortExpressionSeparator   = ":"
	rowsPerPageOptionsDisplay = "5, 10, 25, 100, 500, 1000"
)

// RowsPerPageOptions lists the allowed page sizes in selector order.
//
//nolint:gochecknoglobals // Fixed lookup table.
var RowsPerPageOptions = []int{5, 10, 25, 100, 500, 1000}

// Validation errors.
var (
	ErrInvalidRowsPerPage = errors.New("rows per page must be one of " + rowsPerPageOptionsDisplay)
	ErrInvalidPage        = errors.New("page must be >= 0")
	ErrInvalidSortOrder   = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat  = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'fileName:desc')")
	ErrUnsortableField    = errors.New("field is not sortable")
)

// SortSpec is the active ordering of the table.
type SortSpec struct {
	OrderBy SortKey `json:"order_by" yaml:"order_by"`
	Order   Order   `json:"order"    yaml:"order"`
}

// DefaultSortSpec returns newest-first ordering by dateTime.
func DefaultSortSpec() SortSpec {
	return SortSpec{OrderBy: DefaultOrderBy, Order: DefaultOrder}
}

// Validate reports whether the spec names a sortable key and a known order.
func (s SortSpec) Validate() error {
	if !s.OrderBy.IsSortable() {
		return fmt.Errorf("%w: %q", ErrUnsortableField, s.OrderBy)
	}
	if s.Order != OrderAsc && s.Order != OrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s.Order)
	}
	return nil
}

// PageSpec is the current page window: a 0-based page index and page size.
type PageSpec struct {
	Page        int `json:"page"          yaml:"page"`
	RowsPerPage int `json:"rows_per_page" yaml:"rows_per_page"`
}

// Offset returns the index of the first row on the page, saturating at
// math.MaxInt.
func (p PageSpec) Offset() int {
	return mulSaturated(p.Page, p.RowsPerPage)
}

// End returns the index one past the last row on the page, saturating at
// math.MaxInt.
func (p PageSpec) End() int {
	if p.Page == math.MaxInt {
		return mulSaturated(p.Page, p.RowsPerPage)
	}
	return mulSaturated(p.Page+1, p.RowsPerPage)
}

// mulSaturated returns a*b for non-negative operands, clamped to math.MaxInt.
// A negative operand yields 0.
func mulSaturated(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// IsSortable reports whether a sort header exists for the key.
func (k SortKey) IsSortable() bool {
	switch k {
	case SortByDateTime, SortByStatus, SortByFileName:
		return true
	default:
		return false
	}
}

// SortableKeys returns the sortable keys in header order.
func SortableKeys() []SortKey {
	return []SortKey{SortByDateTime, SortByStatus, SortByFileName}
}

// IsValidRowsPerPage reports whether n is one of RowsPerPageOptions.
func IsValidRowsPerPage(n int) bool {
	return slices.Contains(RowsPerPageOptions, n)
}

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "fileName", "dateTime:desc", "status:asc".
// A bare field sorts ascending, matching a first click on its header.
// An empty string yields DefaultSortSpec.
func ParseSort(sortStr string) (SortSpec, error) {
	if strings.TrimSpace(sortStr) == "" {
		return DefaultSortSpec(), nil
	}

	parts := strings.Split(sortStr, sortExpressionSeparator)
	if len(parts) > sortPartsMax {
		return SortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	spec := SortSpec{
		OrderBy: SortKey(strings.TrimSpace(parts[0])),
		Order:   defaultParsedOrder,
	}
	if len(parts) == sortPartsMax {
		spec.Order = Order(strings.ToLower(strings.TrimSpace(parts[1])))
	}

	if err := spec.Validate(); err != nil {
		return SortSpec{}, err
	}
	return spec, nil
}
