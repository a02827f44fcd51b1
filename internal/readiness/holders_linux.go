package readiness

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const procRoot = "/proc"

// heldByOtherProcess reports whether any other visible process has path open.
// Processes whose descriptor tables cannot be read (other users without
// privileges) are skipped, which is the same visibility fuser has.
func heldByOtherProcess(path string) (bool, error) {
	target, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	entries, err := os.ReadDir(procRoot)
	if err != nil {
		// No procfs: the flock result stands on its own.
		return false, nil
	}
	self := os.Getpid()
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid == self {
			continue
		}
		fdDir := filepath.Join(procRoot, entry.Name(), "fd")
		fds, err := os.ReadDir(fdDir)
		if err != nil {
			continue
		}
		for _, fd := range fds {
			info, err := os.Stat(filepath.Join(fdDir, fd.Name()))
			if err != nil {
				continue
			}
			if os.SameFile(target, info) {
				return true, nil
			}
		}
	}
	return false, nil
}
