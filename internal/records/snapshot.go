package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoInput is returned when no snapshot paths are supplied.
	ErrNoInput = errors.New("no snapshot input given")

	// ErrDuplicateStdin is returned when standard input is named more than once.
	ErrDuplicateStdin = errors.New("standard input ('-') may only be given once")
)

// stdinPath names standard input in a path list.
const stdinPath = "-"

// Snapshot is a fetched set of rows together with the category they belong to.
type Snapshot struct {
	Category Category `json:"category"`
	Rows     []Record `json:"rows"`
}

// Decode reads a snapshot from r. Both the object form and a bare array of
// rows are accepted.
func Decode(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Snapshot{}, nil
	}

	if trimmed[0] == '[' {
		var rows []Record
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("parsing snapshot rows: %w", err)
		}
		return &Snapshot{Rows: rows}, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}

// LoadFile reads a snapshot from path. The path "-" reads standard input.
func LoadFile(path string) (*Snapshot, error) {
	if path == stdinPath {
		return Decode(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// LoadFiles reads several snapshot files concurrently and merges them. Rows
// keep file order; the category is taken from the first file that has one.
func LoadFiles(ctx context.Context, paths []string) (*Snapshot, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	if countStdin(paths) > 1 {
		return nil, ErrDuplicateStdin
	}

	snaps := make([]*Snapshot, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := LoadFile(path)
			if err != nil {
				return err
			}
			snaps[i] = snap
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Snapshot{}
	for _, s := range snaps {
		if merged.Category == (Category{}) {
			merged.Category = s.Category
		}
		merged.Rows = append(merged.Rows, s.Rows...)
	}
	return merged, nil
}

func countStdin(paths []string) int {
	n := 0
	for _, p := range paths {
		if p == stdinPath {
			n++
		}
	}
	return n
}
