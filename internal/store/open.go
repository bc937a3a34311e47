package store

import (
	"fmt"
	"path/filepath"

	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	tasksDocument   = "calendar"
	pointerDocument = "calendar_channel"
	lockFileName    = ".lock"
)

// Options selects and locates a backend.
type Options struct {
	Backend     string
	Dir         string // base directory for relative paths
	TasksFile   string
	ChannelFile string
	SQLitePath  string
}

// Set bundles the two stores of one deployment.
type Set struct {
	Tasks   *TaskStore
	Pointer *PointerStore

	// LockPath is the advisory lock file guarding writes; empty for memory.
	LockPath string
	// WatchPath is the file edited by hand to change tasks; empty when the
	// backend has no such file.
	WatchPath string

	close func() error
}

// Close releases backend resources.
func (s *Set) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open builds the stores for the configured backend.
func Open(opts Options) (*Set, error) {
	switch opts.Backend {
	case BackendFile, "":
		tasksPath := resolve(opts.Dir, opts.TasksFile)
		return &Set{
			Tasks:     NewTaskStore(NewFileDocument[[]task.Task](tasksPath)),
			Pointer:   NewPointerStore(NewFileDocument[*Pointer](resolve(opts.Dir, opts.ChannelFile))),
			LockPath:  filepath.Join(opts.Dir, lockFileName),
			WatchPath: tasksPath,
		}, nil
	case BackendSQLite:
		db, err := OpenSQLite(resolve(opts.Dir, opts.SQLitePath))
		if err != nil {
			return nil, err
		}
		return &Set{
			Tasks:    NewTaskStore(NewSQLiteDocument[[]task.Task](db, tasksDocument)),
			Pointer:  NewPointerStore(NewSQLiteDocument[*Pointer](db, pointerDocument)),
			LockPath: filepath.Join(opts.Dir, lockFileName),
			close:    db.Close,
		}, nil
	case BackendMemory:
		return &Set{
			Tasks:   NewTaskStore(NewMemoryDocument[[]task.Task](tasksDocument)),
			Pointer: NewPointerStore(NewMemoryDocument[*Pointer](pointerDocument)),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
