package fileutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestWriteFileVerified(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := "verified copy content"

	if err := WriteFileVerified(fsys, "/dst.bin", strings.NewReader(content), 0o644, int64(len(content))); err != nil {
		t.Fatal(err)
	}

	got, err := afero.ReadFile(fsys, "/dst.bin")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestWriteFileVerifiedSizeMismatchRemovesDestination(t *testing.T) {
	fsys := afero.NewMemMapFs()

	err := WriteFileVerified(fsys, "/dst.bin", strings.NewReader("short"), 0o644, 100)
	if err == nil || !strings.Contains(err.Error(), "size mismatch") {
		t.Fatalf("expected size mismatch error, got %v", err)
	}
	if ok, _ := Exists(fsys, "/dst.bin"); ok {
		t.Fatal("expected destination to be removed")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestWriteFileVerifiedReadErrorRemovesDestination(t *testing.T) {
	fsys := afero.NewMemMapFs()

	if err := WriteFileVerified(fsys, "/dst.bin", failingReader{}, 0o644, 1); err == nil {
		t.Fatal("expected read error")
	}
	if ok, _ := Exists(fsys, "/dst.bin"); ok {
		t.Fatal("expected destination to be removed")
	}
}

func TestExists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if ok, err := Exists(fsys, "/missing"); err != nil || ok {
		t.Fatalf("missing: ok=%v err=%v", ok, err)
	}
	if err := fsys.MkdirAll("/dir", 0o755); err != nil {
		t.Fatal(err)
	}
	if ok, err := Exists(fsys, "/dir"); err != nil || !ok {
		t.Fatalf("dir: ok=%v err=%v", ok, err)
	}
}
