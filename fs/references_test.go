package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referencesJSON = `[
  {"id": "a1", "type": "article", "authors": [{"family": "Doe", "given": "J."}], "title": "T", "journal": "J", "year": 2020},
  {"id": "b2", "type": "book", "title": "Book"}
]`

func TestReferenceLoader_LoadReferences(t *testing.T) {
	t.Parallel()

	t.Run("loads collection next to a document", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"paper.html":           "",
			"data/references.json": referencesJSON,
		})

		refs, err := fs.NewReferenceLoader().LoadReferences(filepath.Join(dir, "paper.html"))

		require.NoError(t, err)
		require.Len(t, refs, 2)
		assert.Equal(t, "a1", refs[0].ID)
		assert.Equal(t, "J", refs[0].ContainerTitle)
		assert.Equal(t, "2020", refs[0].Year)
		assert.Equal(t, []bindery.Author{{Family: "Doe", Given: "J."}}, refs[0].Authors)
	})

	t.Run("loads collection inside a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"data/references.json": referencesJSON})

		refs, err := fs.NewReferenceLoader().LoadReferences(dir)

		require.NoError(t, err)
		assert.Len(t, refs, 2)
	})

	t.Run("returns not found when collection is absent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		l := fs.NewReferenceLoader()
		_, err := l.LoadReferences(filepath.Join(dir, "paper.html"))

		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
		assert.Equal(t, filepath.Join(dir, "data", "references.json"), l.Locate(filepath.Join(dir, "paper.html")))
	})

	t.Run("rejects malformed collection", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"data/references.json": `{"id": "x"}`})

		_, err := fs.NewReferenceLoader().LoadReferences(dir)

		assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
	})
}
