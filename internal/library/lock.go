package library

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFilename is the advisory lock file kept at a library root while a
// batch operation runs.
const lockFilename = ".curator.lock"

// Lock serializes curator invocations against one library root. Operations
// on the same container from two processes are unsafe; the flock makes the
// second invocation fail fast instead of corrupting the library.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the advisory lock for the library root without
// blocking. A held lock is an error: the caller should retry later rather
// than queue behind an unknown operation.
func AcquireLock(root string) (*Lock, error) {
	fl := flock.New(filepath.Join(root, lockFilename))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("library %s is locked by another curator process", root)
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
