package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// LockRetryDelay is how often a contended sibling lock is retried.
const LockRetryDelay = 250 * time.Millisecond

// SiblingLockPath returns the lock file guarding target: its absolute
// path with a ".lock" suffix.
func SiblingLockPath(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", target, err)
	}
	return abs + ".lock", nil
}

// LockSibling takes an exclusive lock on the sibling lock file of target
// and returns the function releasing it. When another process holds the
// lock, onWait is called once with the lock path and LockSibling keeps
// retrying until it gets the lock or ctx ends.
func LockSibling(ctx context.Context, target string, onWait func(lockPath string)) (func() error, error) {
	lockPath, err := SiblingLockPath(target)
	if err != nil {
		return nil, err
	}
	fl := flock.New(lockPath)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}
	if !ok {
		if onWait != nil {
			onWait(lockPath)
		}
		if ok, err = fl.TryLockContext(ctx, LockRetryDelay); err != nil {
			return nil, fmt.Errorf("lock %s: %w", lockPath, err)
		}
		if !ok {
			return nil, fmt.Errorf("lock %s: not acquired", lockPath)
		}
	}

	return func() error {
		if err := fl.Unlock(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("unlock %s: %w", lockPath, err)
		}
		return nil
	}, nil
}
