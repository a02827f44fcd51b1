package archive_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zipwatch/internal/archive"
)

func TestTargetName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/w/Report.zip", want: "Report"},
		{path: "/w/Report.ZIP", want: "Report"},
		{path: "/w/release.v1.2.zip", want: "release.v1.2"},
		{path: "/w/Café menu.zip", want: "Café menu"},
		{path: "/w/Cafe\u0301.zip", want: "Caf\u00e9"},
		{path: "/w/.zip", want: ".zip"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, archive.TargetName(tt.path))
		})
	}
}

func TestResolveTargetPrefersPlainName(t *testing.T) {
	fs := afero.NewMemMapFs()
	got, err := archive.ResolveTarget(fs, "/dev", "notes")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/dev", "notes"), got)
}

func TestResolveTargetSkipsTakenNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"notes", "notes_2", "notes_3"} {
		require.NoError(t, fs.MkdirAll(filepath.Join("/dev", name), 0o755))
	}

	got, err := archive.ResolveTarget(fs, "/dev", "notes")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/dev", "notes_4"), got)
}

func TestResolveTargetTreatsFilesAsTaken(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join("/dev", "notes"), []byte("x"), 0o644))

	got, err := archive.ResolveTarget(fs, "/dev", "notes")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/dev", "notes_2"), got)
}
