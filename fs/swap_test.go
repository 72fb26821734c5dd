package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwap(t *testing.T) {
	t.Parallel()

	t.Run("restores the previous site when the final rename fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dst := filepath.Join(dir, "deploy")
		staged := filepath.Join(dir, ".deploy.tmp-1")
		require.NoError(t, os.MkdirAll(dst, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dst, "live.html"), []byte("live"), 0644))
		require.NoError(t, os.MkdirAll(staged, 0755))

		rename := func(oldpath, newpath string) error {
			if oldpath == staged {
				return errors.New("cross-device link")
			}
			return os.Rename(oldpath, newpath)
		}

		err := swap(staged, dst, rename)

		require.Error(t, err)
		assert.FileExists(t, filepath.Join(dst, "live.html"))
		assert.NoDirExists(t, staged+".old")
	})

	t.Run("removes the previous site after a successful swap", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dst := filepath.Join(dir, "deploy")
		staged := filepath.Join(dir, ".deploy.tmp-1")
		require.NoError(t, os.MkdirAll(dst, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dst, "old.html"), nil, 0644))
		require.NoError(t, os.MkdirAll(staged, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(staged, "new.html"), nil, 0644))

		require.NoError(t, swap(staged, dst, os.Rename))

		assert.FileExists(t, filepath.Join(dst, "new.html"))
		assert.NoFileExists(t, filepath.Join(dst, "old.html"))
		assert.NoDirExists(t, staged+".old")
		assert.NoDirExists(t, staged)
	})
}
