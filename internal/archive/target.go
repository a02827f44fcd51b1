package archive

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"zipwatch/internal/fileutil"
)

// TargetName returns the directory name an archive extracts into: the base
// name without its final extension, normalized to NFC.
func TargetName(archivePath string) string {
	base := filepath.Base(archivePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(stem) == "" {
		stem = base
	}
	return norm.NFC.String(stem)
}

// ResolveTarget returns a path under destination that does not exist yet.
// The plain name is preferred; otherwise _2, _3, ... is appended until a free
// name is found. Any existing entry counts as taken, not only directories.
func ResolveTarget(fsys afero.Fs, destination, name string) (string, error) {
	candidate := filepath.Join(destination, name)
	for counter := 2; ; counter++ {
		exists, err := fileutil.Exists(fsys, candidate)
		if err != nil {
			return "", fmt.Errorf("check target %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = filepath.Join(destination, name+"_"+strconv.Itoa(counter))
	}
}
