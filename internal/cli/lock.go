package cli

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/internal/platform"
)

var errDestinationBusy = errors.Base("destination is in use by another photopuller process")

// destinationLock is an advisory lock held for the duration of a copy so
// two processes never organize into the same destination at once
type destinationLock struct {
	path string
	lock *flock.Flock
}

// lockPath derives the lock file for dest. The lock lives in the temp dir
// so that taking it never writes into the destination.
func lockPath(dest string) string {
	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	sum := sha1.Sum([]byte(platform.Fold(filepath.Clean(abs))))
	return filepath.Join(os.TempDir(), "photopuller-"+hex.EncodeToString(sum[:8])+".lock")
}

// acquireDestinationLock takes the lock for dest without blocking
func acquireDestinationLock(dest string) (*destinationLock, error) {
	path := lockPath(dest)
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, errors.Errorf("failed to acquire destination lock %s: %w", path, err)
	}
	if !ok {
		return nil, errors.WithDetails(errors.WithStack(errDestinationBusy), "destination", dest, "lock", path)
	}
	return &destinationLock{path: path, lock: lock}, nil
}

// Release unlocks the destination. The lock file is left in place.
func (l *destinationLock) Release() error {
	if l == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return errors.Errorf("failed to release destination lock: %w", err)
	}
	return nil
}
