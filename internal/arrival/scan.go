package arrival

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Match reports whether name carries the archive extension, ignoring case,
// after a non-empty stem.
func Match(name, extension string) bool {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	return extension != "" && base != ext && strings.EqualFold(ext, extension)
}

// List returns the archives directly inside dir, sorted lexicographically by
// name. Directories are skipped even when their name matches.
func List(fsys afero.Fs, dir, extension string) ([]os.FileInfo, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}
	matches := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !Match(entry.Name(), extension) {
			continue
		}
		matches = append(matches, entry)
	}
	return matches, nil
}

// Scan is List reduced to full paths.
func Scan(fsys afero.Fs, dir, extension string) ([]string, error) {
	infos, err := List(fsys, dir, extension)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(infos))
	for _, info := range infos {
		paths = append(paths, filepath.Join(dir, info.Name()))
	}
	return paths, nil
}
