package pagestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

var (
	// ErrStoreCorrupted indicates the state file exists but contains invalid data.
	ErrStoreCorrupted = errors.New("page state file corrupted")

	// ErrLockBusy is returned by Set when another process holds the lockfile
	// for longer than the lock wait.
	ErrLockBusy = errors.New("page state file is locked by another process")
)

// Lock acquisition budget. Set runs on every page transition of an
// interactive view, so the total wait stays well below a frame.
const (
	lockRetries    = 3
	lockRetryDelay = 10 * time.Millisecond
	staleLockAge   = 30 * time.Second
)

// FileStoreVersion is the current schema version of the state file.
const FileStoreVersion = 1

// fileStoreData is the serialized form of the file store.
type fileStoreData struct {
	Version int            `json:"version"`
	Values  map[string]int `json:"values"`
}

// FileStore persists values as a JSON file. Every Get reads the file and
// every Set rewrites it atomically under a cross-process lockfile, so
// several viewers may share one state file.
type FileStore struct {
	mu       sync.Mutex
	filePath string
}

// NewFileStore creates a FileStore backed by filePath. The file is created
// on the first Set.
func NewFileStore(filePath string) *FileStore {
	return &FileStore{filePath: filePath}
}

// FilePath returns the path of the state file.
func (s *FileStore) FilePath() string {
	return s.filePath
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return 0, false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, key string, value int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock, lockErr := s.acquireFileLock(ctx)
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil && !errors.Is(err, ErrStoreCorrupted) {
		return err
	}
	// A corrupted file is replaced rather than blocking every future write.
	if values == nil {
		values = make(map[string]int)
	}
	values[key] = value

	return s.save(values)
}

// Close implements StoreCloser.
func (s *FileStore) Close() error {
	return nil
}

// load reads the state file. A missing file yields an empty map.
func (s *FileStore) load() (map[string]int, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]int), nil
		}
		return nil, fmt.Errorf("reading page state file: %w", err)
	}

	var storeData fileStoreData
	if unmarshalErr := json.Unmarshal(data, &storeData); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, unmarshalErr)
	}

	if storeData.Version != FileStoreVersion {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrStoreCorrupted, storeData.Version, FileStoreVersion)
	}

	if storeData.Values == nil {
		storeData.Values = make(map[string]int)
	}
	return storeData.Values, nil
}

// save writes the state file atomically via a temp file.
func (s *FileStore) save(values map[string]int) error {
	data, err := json.MarshalIndent(fileStoreData{
		Version: FileStoreVersion,
		Values:  values,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling page state: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.filePath), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating page state directory: %w", mkdirErr)
	}

	tmpPath := s.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing page state temp file: %w", writeErr)
	}

	if renameErr := os.Rename(tmpPath, s.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming page state temp file: %w", renameErr)
	}

	return nil
}

// acquireFileLock acquires a cross-process advisory lockfile, waiting at most
// lockRetries*lockRetryDelay. Returns a cleanup function that releases the lock.
func (s *FileStore) acquireFileLock(ctx context.Context) (func(), error) {
	lockPath := s.filePath + ".lock"

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for attempt := range lockRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath, staleLockAge) || attempt == lockRetries-1 {
			continue
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrLockBusy, lockPath)
}

// removeStaleLock removes a lock older than staleLockAge whose owning
// process is gone. Returns true if the caller should retry.
func removeStaleLock(lockPath string, staleLockAge time.Duration) bool {
	info, statErr := os.Stat(lockPath)
	if statErr != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}

	if isLockHeldByLiveProcess(lockPath) {
		return false
	}

	_ = os.Remove(lockPath)
	return true
}

func isLockHeldByLiveProcess(lockPath string) bool {
	pidData, readErr := os.ReadFile(lockPath)
	if readErr != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 tests process existence without delivering a signal.
	return proc.Signal(syscall.Signal(0)) == nil
}
