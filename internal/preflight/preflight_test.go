package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"zipwatch/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckTaskDocument(t *testing.T) {
	dir := t.TempDir()

	missing := CheckTaskDocument(filepath.Join(dir, "todo.md"))
	if !missing.Passed {
		t.Fatalf("missing document should pass, got: %s", missing.Detail)
	}

	doc := filepath.Join(dir, "present.md")
	if err := os.WriteFile(doc, []byte("# todo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckTaskDocument(doc); !r.Passed {
		t.Fatalf("expected pass, got: %s", r.Detail)
	}

	if r := CheckTaskDocument(dir); r.Passed {
		t.Fatal("expected failure for directory path")
	}
}

func TestRunAllReportsEveryCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	for _, dir := range []string{cfg.Paths.WatchDir, cfg.Paths.DestinationDir, cfg.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	results := RunAll(cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected all checks to pass, failed: %+v", failed)
	}
}

func TestRunAllFlagsMissingDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	failed := Failed(RunAll(cfg))
	names := map[string]bool{}
	for _, r := range failed {
		names[r.Name] = true
	}
	for _, want := range []string{"Watch directory", "Destination directory", "Log directory"} {
		if !names[want] {
			t.Fatalf("expected %q to fail, failed set: %+v", want, failed)
		}
	}
	if names["Watch volume"] {
		t.Fatal("volume check should pass without a mount root")
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
