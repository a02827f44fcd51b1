//go:build !windows

package preflight

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const volumeCheckName = "Watch volume"

// CheckVolume verifies the filesystem holding watchDir is present. When
// mountRoot is set it must exist and be a mount point; otherwise the root of
// the watch path must exist.
func CheckVolume(watchDir, mountRoot string) Result {
	if mountRoot == "" {
		root := volumeRoot(watchDir)
		var st unix.Stat_t
		if err := unix.Stat(root, &st); err != nil {
			return Result{Name: volumeCheckName, Detail: fmt.Sprintf("%s (error: %v)", root, err)}
		}
		return Result{Name: volumeCheckName, Passed: true, Detail: fmt.Sprintf("%s (present)", root)}
	}

	mounted, err := IsMountPoint(mountRoot)
	if err != nil {
		return Result{Name: volumeCheckName, Detail: fmt.Sprintf("%s (error: %v)", mountRoot, err)}
	}
	if !mounted {
		return Result{Name: volumeCheckName, Detail: fmt.Sprintf("%s (error: not mounted)", mountRoot)}
	}
	return Result{Name: volumeCheckName, Passed: true, Detail: fmt.Sprintf("%s (mounted)", mountRoot)}
}

// IsMountPoint reports whether path is the root of a mounted filesystem: its
// device differs from its parent's, or it is the filesystem root itself.
func IsMountPoint(path string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false, err
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return false, fmt.Errorf("is not a directory")
	}
	parent := filepath.Dir(filepath.Clean(path))
	var parentSt unix.Stat_t
	if err := unix.Stat(parent, &parentSt); err != nil {
		return false, err
	}
	if st.Dev != parentSt.Dev {
		return true, nil
	}
	return st.Ino == parentSt.Ino, nil
}

func volumeRoot(path string) string {
	if filepath.IsAbs(path) {
		return string(filepath.Separator)
	}
	return "."
}
