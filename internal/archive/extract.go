package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"zipwatch/internal/fileutil"
)

// ErrUnsupportedEntry marks entries that are refused instead of extracted:
// paths escaping the target directory and symbolic links.
var ErrUnsupportedEntry = errors.New("unsupported archive entry")

// Extract writes every entry of the zip at archivePath below target,
// preserving the relative directory structure. It returns the number of files
// written.
func Extract(fsys afero.Fs, archivePath, target string) (int, error) {
	file, err := fsys.Open(archivePath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat archive: %w", err)
	}
	reader, err := zip.NewReader(file, info.Size())
	if err != nil {
		return 0, fmt.Errorf("read archive: %w", err)
	}

	// Validate everything first so a hostile entry late in the archive does not
	// leave half a tree behind.
	for _, entry := range reader.File {
		if _, err := entryPath(target, entry); err != nil {
			return 0, err
		}
	}

	written := 0
	for _, entry := range reader.File {
		dest, _ := entryPath(target, entry)
		if entry.FileInfo().IsDir() {
			if err := fsys.MkdirAll(dest, 0o755); err != nil {
				return written, fmt.Errorf("create directory %q: %w", entry.Name, err)
			}
			continue
		}
		if err := extractFile(fsys, entry, dest); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func entryPath(target string, entry *zip.File) (string, error) {
	if entry.Mode()&fs.ModeSymlink != 0 {
		return "", fmt.Errorf("%w: symlink %q", ErrUnsupportedEntry, entry.Name)
	}
	name := strings.TrimSuffix(strings.ReplaceAll(entry.Name, `\`, "/"), "/")
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnsupportedEntry)
	}
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: path %q escapes target", ErrUnsupportedEntry, entry.Name)
	}
	return filepath.Join(target, local), nil
}

func extractFile(fsys afero.Fs, entry *zip.File, dest string) error {
	if err := fsys.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %q: %w", entry.Name, err)
	}
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open entry %q: %w", entry.Name, err)
	}
	defer rc.Close()

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	if err := fileutil.WriteFileVerified(fsys, dest, rc, mode, int64(entry.UncompressedSize64)); err != nil {
		return fmt.Errorf("extract entry %q: %w", entry.Name, err)
	}
	return nil
}
