package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oshokin/almanac/internal/codec"
	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/table"
)

// Snapshot is a table together with the moment it was computed.
type Snapshot struct {
	GeneratedAt time.Time
	Table       *table.Table
}

// Repository defines persistence operations for table snapshots.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
}

// FileRepository persists a snapshot to a JSON file on disk.
// The file is the same protojson document `almanac table --format json` prints.
type FileRepository struct {
	// path is the filesystem location of the JSON snapshot file.
	path string
	// mu protects concurrent access to the snapshot file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the snapshot file does not exist yet.
	ErrNotFound = errors.New("snapshot not found")
	// ErrEmptySnapshot is returned by Save when there is no table to store.
	ErrEmptySnapshot = errors.New("snapshot has no table")
)

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the location of the snapshot file.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the snapshot from disk.
func (r *FileRepository) Load(_ context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	t, generatedAt, err := codec.UnmarshalTableJSON(contents)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	return &Snapshot{
		GeneratedAt: generatedAt,
		Table:       t,
	}, nil
}

// Save writes the snapshot to disk, replacing the previous one atomically.
func (r *FileRepository) Save(_ context.Context, snapshot *Snapshot) error {
	if snapshot == nil || snapshot.Table == nil {
		return ErrEmptySnapshot
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := codec.MarshalTableJSON(snapshot.Table, snapshot.GeneratedAt)
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("replace snapshot file: %w", err)
	}

	return nil
}
