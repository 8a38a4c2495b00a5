package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomic(t *testing.T) {
	t.Run("writes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.md")

		err := Atomic(path, []byte("document body"))

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "document body", string(data))
	})

	t.Run("creates missing output directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "out.md")

		err := Atomic(path, []byte("x"))

		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.md")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, Atomic(path, []byte("new")))

		data, _ := os.ReadFile(path)
		assert.Equal(t, "new", string(data))
	})

	t.Run("leaves no temp files behind on success", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Atomic(filepath.Join(dir, "out.md"), []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("fails with IOFault when the directory is a file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		target := filepath.Join(blocker, "out.md")
		err := Atomic(target, []byte("x"))

		var fault *IOFault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, target, fault.Path)
		// No partial file at the target path
		assert.NoFileExists(t, target)
	})
}
