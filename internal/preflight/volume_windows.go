package preflight

import (
	"fmt"
	"os"
	"path/filepath"
)

const volumeCheckName = "Watch volume"

// CheckVolume verifies the drive holding watchDir is present, e.g. that G:\
// exists while the cloud drive client is running. When mountRoot is set it
// must exist as a directory as well.
func CheckVolume(watchDir, mountRoot string) Result {
	root := filepath.VolumeName(watchDir) + `\`
	if _, err := os.Stat(root); err != nil {
		return Result{Name: volumeCheckName, Detail: fmt.Sprintf("%s (error: drive not mounted)", root)}
	}
	if mountRoot != "" {
		info, err := os.Stat(mountRoot)
		if err != nil || !info.IsDir() {
			return Result{Name: volumeCheckName, Detail: fmt.Sprintf("%s (error: not mounted)", mountRoot)}
		}
		return Result{Name: volumeCheckName, Passed: true, Detail: fmt.Sprintf("%s (present)", mountRoot)}
	}
	return Result{Name: volumeCheckName, Passed: true, Detail: fmt.Sprintf("%s (present)", root)}
}
