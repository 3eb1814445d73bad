package uploads

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestStageReadRelease(t *testing.T) {
	dir := t.TempDir()
	stager, err := NewStager(dir, 0)
	require.NoError(t, err)

	staged, err := stager.Stage(bytes.NewReader([]byte{0xFF, 0xD8}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), staged.Size())
	assert.Equal(t, dir, filepath.Dir(staged.path))
	assert.Len(t, listDir(t, dir), 1)

	data, err := staged.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data)

	staged.Release()
	assert.Empty(t, listDir(t, dir))

	// Releasing twice is harmless.
	staged.Release()
}

func TestStageCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	stager, err := NewStager(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, dir, stager.dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStageRejectsOversizedUpload(t *testing.T) {
	dir := t.TempDir()
	stager, err := NewStager(dir, 4)
	require.NoError(t, err)

	staged, err := stager.Stage(bytes.NewReader([]byte("12345")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Nil(t, staged)
	assert.Empty(t, listDir(t, dir), "an oversized upload must not leave a file behind")

	staged, err = stager.Stage(bytes.NewReader([]byte("1234")))
	require.NoError(t, err)
	defer staged.Release()
	assert.Equal(t, int64(4), staged.Size())
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestStageCleansUpOnReadError(t *testing.T) {
	dir := t.TempDir()
	stager, err := NewStager(dir, 0)
	require.NoError(t, err)

	staged, err := stager.Stage(failingReader{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStaging, "a broken source is the client's fault")
	assert.Nil(t, staged)
	assert.Empty(t, listDir(t, dir))
}

func TestStageMissingDirectoryIsStagingError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	stager, err := NewStager(dir, 0)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	staged, err := stager.Stage(bytes.NewReader([]byte{1}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStaging)
	assert.Nil(t, staged)
}

func TestReleaseNil(t *testing.T) {
	var staged *Staged
	assert.NotPanics(t, staged.Release)
}
