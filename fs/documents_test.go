package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocument(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"a.html": "<p>a</p>"})

		got, err := fs.ReadDocument(filepath.Join(dir, "a.html"))

		require.NoError(t, err)
		assert.Equal(t, "<p>a</p>", got)
	})

	t.Run("returns not found", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadDocument(filepath.Join(t.TempDir(), "nope.html"))

		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
	})
}

func TestFindDocuments(t *testing.T) {
	t.Parallel()

	t.Run("finds html files recursively in order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"z.html":             "",
			"a.html":             "",
			"posts/b.HTML":       "",
			"notes.txt":          "",
			".git/index.html":    "",
			"__pycache__/x.html": "",
		})

		got, err := fs.FindDocuments(dir)

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.html"),
			filepath.Join(dir, "posts", "b.HTML"),
			filepath.Join(dir, "z.html"),
		}, got)
	})

	t.Run("returns a file path as the only document", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"a.html": ""})
		path := filepath.Join(dir, "a.html")

		got, err := fs.FindDocuments(path)

		require.NoError(t, err)
		assert.Equal(t, []string{path}, got)
	})

	t.Run("returns not found for missing root", func(t *testing.T) {
		t.Parallel()

		_, err := fs.FindDocuments(filepath.Join(t.TempDir(), "missing"))

		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
	})
}

func TestIsDevFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dir  bool
		want bool
	}{
		{".git", true, true},
		{"__pycache__", true, true},
		{"posts", true, false},
		{".DS_Store", false, true},
		{"metadata.json", false, true},
		{"build.pyc", false, true},
		{"index.html", false, false},
		{".git", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fs.IsDevFile(tt.name, tt.dir), tt.name)
	}
}

func TestLoadCollection(t *testing.T) {
	t.Parallel()

	t.Run("merges metadata with document list", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"metadata.json":    `{"name": "Spring Issue", "author": "Lee"}`,
			"index.html":       "",
			"posts/first.html": "",
		})

		got, err := fs.LoadCollection(dir)

		require.NoError(t, err)
		assert.Equal(t, "Spring Issue", got["name"])
		assert.Equal(t, "Lee", got["author"])
		assert.Equal(t, []string{"index.html", "posts/first.html"}, got["files"])
	})

	t.Run("names collection after directory without metadata", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "issue-4")
		writeFiles(t, dir, map[string]string{"index.html": ""})

		got, err := fs.LoadCollection(dir)

		require.NoError(t, err)
		assert.Equal(t, "issue-4", got["name"])
	})

	t.Run("rejects malformed metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"metadata.json": "{"})

		_, err := fs.LoadCollection(dir)

		assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
	})
}
