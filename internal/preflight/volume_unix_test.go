//go:build !windows

package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckVolumeWithoutMountRoot(t *testing.T) {
	result := CheckVolume(filepath.Join(t.TempDir(), "incoming"), "")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckVolumeFilesystemRootIsMounted(t *testing.T) {
	result := CheckVolume("/anything", "/")
	if !result.Passed {
		t.Fatalf("expected / to count as mounted, got: %s", result.Detail)
	}
}

func TestCheckVolumePlainDirectoryIsNotMounted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "drive")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	result := CheckVolume(filepath.Join(dir, "incoming"), dir)
	if result.Passed {
		t.Fatalf("expected failure for plain directory, got: %s", result.Detail)
	}
}

func TestCheckVolumeMissingMountRoot(t *testing.T) {
	result := CheckVolume("/x", filepath.Join(t.TempDir(), "absent"))
	if result.Passed {
		t.Fatal("expected failure for missing mount root")
	}
}

func TestIsMountPoint(t *testing.T) {
	ok, err := IsMountPoint("/")
	if err != nil || !ok {
		t.Fatalf("expected / to be a mount point: ok=%v err=%v", ok, err)
	}
	ok, err = IsMountPoint(t.TempDir())
	if err != nil {
		t.Fatalf("IsMountPoint: %v", err)
	}
	if ok {
		t.Fatal("fresh temp directory should not be a mount point")
	}
}
