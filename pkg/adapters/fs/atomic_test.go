package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "reminders.json")

		require.NoError(t, writeFileAtomic(filename, []byte("[]"), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "reminders.json")
		require.NoError(t, os.WriteFile(filename, []byte(`[{"id":"1"}]`), 0644))

		require.NoError(t, writeFileAtomic(filename, []byte("[]"), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 5; i++ {
			require.NoError(t, writeFileAtomic(filepath.Join(dir, "reminders.json"), []byte("[]"), 0644))
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.False(t, strings.HasPrefix(entries[0].Name(), TempFilePrefix))
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing_folder", "reminders.json")
		assert.Error(t, writeFileAtomic(filename, []byte("[]"), 0644))
	})
}

func TestSweepTempFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, TempFilePrefix+"stale")
	fresh := filepath.Join(dir, TempFilePrefix+"fresh")
	record := filepath.Join(dir, "reminders.json")
	for _, name := range []string{stale, fresh, record} {
		require.NoError(t, os.WriteFile(name, []byte("[]"), 0644))
	}
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	removed, err := sweepTempFiles(dir, staleTempAge)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh, "a live writer may still own it")
	assert.FileExists(t, record)
}

func TestInitializeSweepsDebris(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, TempFilePrefix+"crashed")
	require.NoError(t, os.WriteFile(stale, []byte("[{"), 0644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	s := NewStorage(Config{Path: dir})
	require.NoError(t, s.Initialize(context.Background()))
	assert.NoFileExists(t, stale)
	assert.False(t, s.State().(StorageState).TempDebris)
}
