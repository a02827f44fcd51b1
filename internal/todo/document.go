package todo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/spf13/afero"
)

// ReviewTask is the checkbox line written under every new heading.
const ReviewTask = "Review and determine next steps"

// Document is a markdown task document on a filesystem.
type Document struct {
	fs   afero.Fs
	path string
}

// New returns a Document backed by the operating system filesystem.
func New(path string) *Document {
	return NewWithFS(afero.NewOsFs(), path)
}

// NewWithFS returns a Document backed by fsys.
func NewWithFS(fsys afero.Fs, path string) *Document {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Document{fs: fsys, path: path}
}

// Path returns the document location.
func (d *Document) Path() string {
	return d.path
}

// Exists reports whether the document is present.
func (d *Document) Exists() (bool, error) {
	if d.path == "" {
		return false, nil
	}
	info, err := d.fs.Stat(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat task document: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("task document %q is a directory", d.path)
	}
	return true, nil
}

// HasEntry reports whether a heading linking to name already exists. Both
// "name/" and "name" link targets count; the heading text is ignored.
func (d *Document) HasEntry(name string) (bool, error) {
	content, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		return false, fmt.Errorf("read task document: %w", err)
	}
	return entryPattern(name).Match(content), nil
}

// EnsureEntry appends the entry for name unless one exists. It returns true
// when an entry was written. A missing document is not an error and nothing
// is written.
func (d *Document) EnsureEntry(name string) (bool, error) {
	exists, err := d.Exists()
	if err != nil || !exists {
		return false, err
	}
	found, err := d.HasEntry(name)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	file, err := d.fs.OpenFile(d.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return false, fmt.Errorf("open task document: %w", err)
	}
	if _, err := file.WriteString(FormatEntry(name)); err != nil {
		_ = file.Close()
		return false, fmt.Errorf("append task entry: %w", err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("close task document: %w", err)
	}
	return true, nil
}

// FormatEntry renders the block appended for name, including the leading
// blank line.
func FormatEntry(name string) string {
	return "\n## [" + name + "](" + name + "/)\n- [ ] " + ReviewTask + "\n"
}

func entryPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^## \[.*\]\(` + regexp.QuoteMeta(name) + `/?\)`)
}
