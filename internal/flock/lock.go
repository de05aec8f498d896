package flock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
)

const (
	// DefaultTimeout bounds how long Acquire waits for a held lock.
	DefaultTimeout = 5 * time.Second

	pollInterval = 50 * time.Millisecond
	lockFilePerm = 0o600
	lockDirPerm  = 0o750
)

// Lock is a held exclusive lock on a lock file.
type Lock struct {
	file *os.File
}

// Acquire opens (creating if needed) the lock file at path and polls for an
// exclusive lock until it is granted, timeout elapses (ErrLockTimeout), or
// ctx is done.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), lockDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFilePerm) //#nosec G302,G304 -- lock path is built by the caller from a validated name
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			_ = f.Close()
			return nil, err
		}

		if err := Exclusive(f.Fd()); err == nil {
			return &Lock{file: f}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("failed to acquire lock %s: %w", path, gaerrors.ErrLockTimeout)
		}

		time.Sleep(pollInterval)
	}
}

// Release unlocks and closes the lock file. Safe on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	if err := Unlock(f.Fd()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}
