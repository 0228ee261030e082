package pagination

import (
	"cmp"

	"github.com/rshade/scrapeview/internal/records"
)

// Comparator orders two records, returning a negative number when a sorts
// before b, a positive number when after, and zero when their keys are equal.
type Comparator func(a, b records.Record) int

// Compare orders a and b by the native ordering of the orderBy field:
// timestamps chronologically, status with false before true, and file names
// and links by byte-wise string comparison. The result is always -1, 0 or 1.
//
// Missing values are the zero values (zero time, false, ""), which sort
// before every populated value. An unknown key compares every pair as equal.
func Compare(a, b records.Record, orderBy SortKey) int {
	switch orderBy {
	case SortByDateTime:
		return a.DateTime.Compare(b.DateTime)
	case SortByStatus:
		return cmp.Compare(boolRank(a.Status), boolRank(b.Status))
	case SortByFileName:
		return cmp.Compare(a.FileName, b.FileName)
	case SortByFileLink:
		return cmp.Compare(a.FileLink, b.FileLink)
	case SortByID:
		return cmp.Compare(a.ID, b.ID)
	default:
		return 0
	}
}

// GetComparator returns a comparator for the given direction and key.
// Ascending yields non-decreasing key order, descending non-increasing.
// Ties are left at zero; callers rely on a stable sort to keep input order.
func GetComparator(order Order, orderBy SortKey) Comparator {
	if order == OrderDesc {
		return func(a, b records.Record) int {
			return Compare(b, a, orderBy)
		}
	}
	return func(a, b records.Record) int {
		return Compare(a, b, orderBy)
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
