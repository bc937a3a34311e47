// Package filelock provides advisory file locks so that the bot and any
// CLI invocation sharing a data directory take turns writing it.
package filelock

import (
	"fmt"
	"os"
)

const lockFileMode = 0o600

// Lock is a held exclusive lock on a lock file.
type Lock struct {
	f *os.File
}

// Acquire blocks until it holds an exclusive advisory lock on path,
// creating the file if needed. Release must be called to let others in.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path from config dir
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	return &Lock{f: f}, nil
}

// Release drops the lock and closes the underlying file.
func (l *Lock) Release() error {
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
