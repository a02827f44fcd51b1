package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zipwatch/internal/logs"
)

const sample = `[2026-03-01 10:00:00] FOUND: Found existing zip: /in/a.zip
[2026-03-01 10:00:01] EXTRACTED: /in/a.zip -> /dev/a files=3
[2026-03-01 10:00:01] DELETED: /in/a.zip
[2026-03-01 10:00:01] TODO: Added entry for a
[2026-03-01 10:05:00] DETECTED: /in/b.zip
[2026-03-01 10:05:10] TIMEOUT: Could not access /in/b.zip after 10 seconds. Skipping.
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zipwatch.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLastReturnsTrailingLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	lines, offset, err := logs.Last(path, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, lines)
	assert.EqualValues(t, 6, offset)
}

func TestLastShortFile(t *testing.T) {
	path := writeLog(t, "only\n")

	lines, _, err := logs.Last(path, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, lines)
}

func TestLastMissingFile(t *testing.T) {
	lines, offset, err := logs.Last(filepath.Join(t.TempDir(), "none.log"), 5, nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Zero(t, offset)
}

func TestLastAppliesEventFilter(t *testing.T) {
	path := writeLog(t, sample)

	lines, _, err := logs.Last(path, 10, logs.EventFilter("extracted", "timeout"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "EXTRACTED:")
	assert.Contains(t, lines[1], "TIMEOUT:")
}

func TestReadFromKeepsPartialLine(t *testing.T) {
	path := writeLog(t, "one\ntwo")

	lines, offset, err := logs.ReadFrom(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, lines)
	assert.EqualValues(t, 4, offset)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	lines, _, err = logs.ReadFrom(path, offset)
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, lines)
}

func TestReadFromRestartsAfterTruncate(t *testing.T) {
	path := writeLog(t, "x\n")

	lines, _, err := logs.ReadFrom(path, 500)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, lines)
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := writeLog(t, "start\n")
	_, offset, err := logs.Last(path, 1, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []string
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, nil, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
		})
	}()

	time.Sleep(50 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("next\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1 && got[0] == "next"
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
}

func TestLastZeroLimitReturnsAll(t *testing.T) {
	path := writeLog(t, sample)

	lines, _, err := logs.Last(path, 0, nil)
	require.NoError(t, err)
	assert.Len(t, lines, 6)
}
