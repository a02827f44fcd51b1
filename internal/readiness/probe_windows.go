//go:build windows

package readiness

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/windows"
)

type shareNoneProbe struct{}

// NewProbe returns the exclusive-open probe for this platform.
func NewProbe() Probe {
	return shareNoneProbe{}
}

// TryExclusive opens path for reading with a zero share mode, which fails with
// a sharing violation while the sync client still has the file open.
func (shareNoneProbe) TryExclusive(path string) (bool, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false, fmt.Errorf("encode path %s: %w", path, err)
	}
	handle, err := windows.CreateFile(
		name,
		windows.GENERIC_READ,
		0,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		switch {
		case errors.Is(err, windows.ERROR_FILE_NOT_FOUND), errors.Is(err, windows.ERROR_PATH_NOT_FOUND):
			return false, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
		case errors.Is(err, windows.ERROR_SHARING_VIOLATION), errors.Is(err, windows.ERROR_LOCK_VIOLATION):
			return false, nil
		default:
			return false, fmt.Errorf("open %s: %w", path, err)
		}
	}
	_ = windows.CloseHandle(handle)
	return true, nil
}
