package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rshade/scrapeview/internal/records"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// rowsByMinute returns n records whose dateTime is baseTime plus 1..n minutes.
func rowsByMinute(n int) []records.Record {
	rows := make([]records.Record, n)
	for i := range rows {
		rows[i] = records.Record{
			ID:       i + 1,
			DateTime: baseTime.Add(time.Duration(i+1) * time.Minute),
			Status:   i%2 == 0,
			FileName: fmt.Sprintf("doc-%02d.pdf", i+1),
			FileLink: fmt.Sprintf("2024/doc-%02d.pdf", i+1),
		}
	}
	return rows
}

func ids(rows []records.Record) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func intPtr(v int) *int { return &v }

var errStoreDown = errors.New("store unavailable")

// failingStore fails every operation.
type failingStore struct {
	sets int
}

func (s *failingStore) Get(context.Context, string) (int, bool, error) {
	return 0, false, errStoreDown
}

func (s *failingStore) Set(context.Context, string, int) error {
	s.sets++
	return errStoreDown
}

// recordingStore records every write.
type recordingStore struct {
	values map[string]int
	writes []int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{values: make(map[string]int)}
}

func (s *recordingStore) Get(_ context.Context, key string) (int, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *recordingStore) Set(_ context.Context, key string, value int) error {
	s.values[key] = value
	s.writes = append(s.writes, value)
	return nil
}
