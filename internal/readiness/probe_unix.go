//go:build !windows

package readiness

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

type flockProbe struct{}

// NewProbe returns the exclusive-open probe for this platform.
func NewProbe() Probe {
	return flockProbe{}
}

// TryExclusive takes a non-blocking exclusive flock on a read-only handle and
// then looks for other processes holding the file open. The read-only flag
// keeps the probe from recreating a file that was removed in the meantime.
func (flockProbe) TryExclusive(path string) (bool, error) {
	lock := flock.New(path, flock.SetFlag(os.O_RDONLY))
	locked, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return false, nil
	}
	defer lock.Unlock() //nolint:errcheck

	held, err := heldByOtherProcess(path)
	if err != nil {
		return false, err
	}
	return !held, nil
}
