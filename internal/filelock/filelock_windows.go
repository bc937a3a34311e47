//go:build windows

package filelock

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

const (
	lockfileExclusiveLock   = 0x00000002
	lockfileFailImmediately = 0x00000001
	retryInterval           = 2 * time.Millisecond
)

// lockFile polls with LOCKFILE_FAIL_IMMEDIATELY; a blocking LockFileEx
// would pin the OS thread for as long as the other holder keeps the lock.
func lockFile(f *os.File) error {
	for {
		err := windows.LockFileEx(windows.Handle(f.Fd()),
			lockfileExclusiveLock|lockfileFailImmediately, 0, 1, 0, new(windows.Overlapped))
		if err == nil {
			return nil
		}
		if !errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return err
		}
		time.Sleep(retryInterval)
	}
}

func unlockFile(f *os.File) error {
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, new(windows.Overlapped))
}
