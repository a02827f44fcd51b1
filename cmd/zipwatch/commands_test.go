package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zipwatch/internal/testsupport"
)

func TestCheckNowExtractsAndLogs(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithTodoDocument("# Projects\n"))
	testsupport.WriteZip(t, filepath.Join(env.cfg.Paths.WatchDir, "bundle.zip"), map[string]string{"readme.txt": "hi"})

	if _, _, err := runCLI(t, []string{"--check-now"}, env.configPath); err != nil {
		t.Fatalf("--check-now: %v", err)
	}

	if got := readFile(t, filepath.Join(env.cfg.Paths.DestinationDir, "bundle", "readme.txt")); got != "hi" {
		t.Fatalf("unexpected extracted content %q", got)
	}
	logs := readFile(t, env.cfg.LogFilePath())
	requireContains(t, logs, "Found existing zip: "+filepath.Join(env.cfg.Paths.WatchDir, "bundle.zip"))
	requireContains(t, logs, "EXTRACTED: ")
	requireContains(t, logs, "DELETED: ")
	requireContains(t, logs, "TODO: Added entry for bundle")
	requireContains(t, readFile(t, env.cfg.Paths.TodoFile), "## [bundle](bundle/)")
}

func TestCheckCommandEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"check"}, env.configPath); err != nil {
		t.Fatalf("check: %v", err)
	}
	logs := readFile(t, env.cfg.LogFilePath())
	requireContains(t, logs, "CHECK: No zip files found.")
	if strings.Contains(logs, "Watcher started") {
		t.Fatal("check must not start the live watch")
	}
}

func TestPollIntervalOverrideValidated(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--check-now", "--poll-interval", "0"}, env.configPath); err == nil {
		t.Fatal("expected error for non-positive poll interval")
	}
}

func TestFatalErrorRecordedInCrashFile(t *testing.T) {
	env := setupCLITestEnv(t)
	// A file where the watch directory should be makes startup fail.
	testsupport.WriteText(t, env.cfg.Paths.WatchDir, "not a directory")

	if _, _, err := runCLI(t, []string{"check"}, env.configPath); err == nil {
		t.Fatal("expected startup failure")
	}
	crash := readFile(t, env.cfg.ErrorFilePath())
	requireContains(t, crash, "is not a directory")
}

func TestPendingListsArchives(t *testing.T) {
	env := setupCLITestEnv(t)
	env.mkdirs(t)

	out, _, err := runCLI(t, []string{"pending"}, env.configPath)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	requireContains(t, out, "No archives waiting")

	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.WatchDir, "b.zip"), 2048)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.WatchDir, "a.ZIP"), 10)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.WatchDir, "skip.txt"), 10)

	out, _, err = runCLI(t, []string{"pending"}, env.configPath)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	requireContains(t, out, "a.ZIP")
	requireContains(t, out, "b.zip")
	requireContains(t, out, "2.0 kB")
	if strings.Contains(out, "skip.txt") {
		t.Fatal("non-archive listed")
	}
	if strings.Index(out, "a.ZIP") > strings.Index(out, "b.zip") {
		t.Fatal("expected lexicographic order")
	}
}

func TestTodoListsEntries(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithTodoDocument(`# Backlog

## [alpha](alpha/)
- [x] Review and determine next steps

## [beta](beta/)
- [ ] Review and determine next steps
`))

	out, _, err := runCLI(t, []string{"todo"}, env.configPath)
	if err != nil {
		t.Fatalf("todo: %v", err)
	}
	requireContains(t, out, "Backlog")
	requireContains(t, out, "alpha")
	requireContains(t, out, "beta")

	out, _, err = runCLI(t, []string{"todo", "--open"}, env.configPath)
	if err != nil {
		t.Fatalf("todo --open: %v", err)
	}
	requireContains(t, out, "beta")
	if strings.Contains(out, "alpha") {
		t.Fatalf("closed entry listed with --open:\n%s", out)
	}
}

func TestTodoMissingDocument(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"todo"}, env.configPath)
	if err != nil {
		t.Fatalf("todo: %v", err)
	}
	requireContains(t, out, "Task document not found")
}

func TestStatusReportsPreflight(t *testing.T) {
	env := setupCLITestEnv(t)
	env.mkdirs(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "== Watcher ==")
	requireContains(t, out, "== Preflight ==")
	requireContains(t, out, "Watch directory:")
	requireContains(t, out, "[OK]")

	if err := os.RemoveAll(env.cfg.Paths.DestinationDir); err != nil {
		t.Fatal(err)
	}
	out, _, err = runCLI(t, []string{"status"}, env.configPath)
	if err == nil {
		t.Fatal("expected status to fail when a directory is missing")
	}
	requireContains(t, out, "[ERROR]")
}
