package pagination

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/scrapeview/internal/records"
)

func TestCompare(t *testing.T) {
	early := records.Record{DateTime: baseTime, Status: false, FileName: "a.pdf", FileLink: "x", ID: 1}
	late := records.Record{DateTime: baseTime.Add(time.Hour), Status: true, FileName: "b.pdf", FileLink: "y", ID: 2}

	tests := []struct {
		name    string
		a, b    records.Record
		orderBy SortKey
		want    int
	}{
		{name: "dateTime less", a: early, b: late, orderBy: SortByDateTime, want: -1},
		{name: "dateTime greater", a: late, b: early, orderBy: SortByDateTime, want: 1},
		{name: "dateTime equal", a: early, b: early, orderBy: SortByDateTime, want: 0},
		{name: "status false before true", a: early, b: late, orderBy: SortByStatus, want: -1},
		{name: "status equal", a: late, b: late, orderBy: SortByStatus, want: 0},
		{name: "fileName lexicographic", a: late, b: early, orderBy: SortByFileName, want: 1},
		{name: "fileLink", a: early, b: late, orderBy: SortByFileLink, want: -1},
		{name: "id", a: late, b: early, orderBy: SortByID, want: 1},
		{name: "unknown key is equal", a: early, b: late, orderBy: SortKey("size"), want: 0},
		{name: "missing time is lowest", a: records.Record{}, b: early, orderBy: SortByDateTime, want: -1},
		{name: "missing name is lowest", a: records.Record{}, b: early, orderBy: SortByFileName, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b, tt.orderBy))
		})
	}
}

func TestCompare_UppercaseSortsBeforeLowercase(t *testing.T) {
	a := records.Record{FileName: "Zeta.pdf"}
	b := records.Record{FileName: "alpha.pdf"}
	assert.Equal(t, -1, Compare(a, b, SortByFileName))
}

func TestGetComparator(t *testing.T) {
	early := records.Record{DateTime: baseTime}
	late := records.Record{DateTime: baseTime.Add(time.Minute)}

	asc := GetComparator(OrderAsc, SortByDateTime)
	desc := GetComparator(OrderDesc, SortByDateTime)

	assert.Negative(t, asc(early, late))
	assert.Positive(t, asc(late, early))
	assert.Positive(t, desc(early, late))
	assert.Negative(t, desc(late, early))
	assert.Zero(t, desc(early, early))
}

func TestSortRecords_AscDescReversed(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	base := rowsByMinute(25)

	for _, key := range []SortKey{SortByDateTime, SortByFileName} {
		for range 20 {
			perm := rng.Perm(len(base))
			rows := make([]records.Record, len(base))
			for i, p := range perm {
				rows[i] = base[p]
			}

			asc := SortRecords(rows, SortSpec{OrderBy: key, Order: OrderAsc})
			desc := SortRecords(rows, SortSpec{OrderBy: key, Order: OrderDesc})

			reversed := slices.Clone(asc)
			slices.Reverse(reversed)
			assert.Equal(t, ids(reversed), ids(desc), "key %s", key)
		}
	}
}

func TestSortRecords_Stable(t *testing.T) {
	rows := []records.Record{
		{ID: 1, Status: true},
		{ID: 2, Status: false},
		{ID: 3, Status: true},
		{ID: 4, Status: false},
		{ID: 5, Status: true},
	}

	asc := SortRecords(rows, SortSpec{OrderBy: SortByStatus, Order: OrderAsc})
	assert.Equal(t, []int{2, 4, 1, 3, 5}, ids(asc))

	desc := SortRecords(rows, SortSpec{OrderBy: SortByStatus, Order: OrderDesc})
	assert.Equal(t, []int{1, 3, 5, 2, 4}, ids(desc))
}

func TestSortRecords_DoesNotMutateInput(t *testing.T) {
	rows := rowsByMinute(5)
	before := ids(rows)

	_ = SortRecords(rows, SortSpec{OrderBy: SortByDateTime, Order: OrderDesc})

	assert.Equal(t, before, ids(rows))
}

func TestSortRecords_Empty(t *testing.T) {
	assert.Empty(t, SortRecords(nil, DefaultSortSpec()))
	assert.NotNil(t, SortRecords(nil, DefaultSortSpec()))
}
