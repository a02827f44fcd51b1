package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// WriteFileVerified streams src into dst and checks that exactly expected
// bytes were written. Removes dst on mismatch or copy failure.
func WriteFileVerified(fsys afero.Fs, dst string, src io.Reader, mode os.FileMode, expected int64) error {
	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	written, err := io.Copy(out, src)
	if err != nil {
		_ = out.Close()
		_ = fsys.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = fsys.Remove(dst)
		return err
	}

	if written != expected {
		_ = fsys.Remove(dst)
		return fmt.Errorf("copy size mismatch: expected %d bytes, wrote %d bytes", expected, written)
	}
	return nil
}

// Exists reports whether any filesystem entry is present at path.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
