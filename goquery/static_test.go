package goquery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticInliner_Inline(t *testing.T) {
	t.Parallel()

	t.Run("embeds local stylesheets and scripts", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("p > a { color: red }"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("if (a < b) { go() }"), 0644))

		src := `<!DOCTYPE html><html><head>
<link rel="stylesheet" href="css/site.css?v=2">
</head><body><p>Hi</p><script src="app.js"></script></body></html>`

		got, err := goquery.NewStaticInliner().Inline(src, dir)

		require.NoError(t, err)
		assert.Contains(t, got, "<!DOCTYPE html>")
		assert.Contains(t, got, "<style>p > a { color: red }</style>")
		assert.Contains(t, got, "<script>if (a < b) { go() }</script>")
		assert.NotContains(t, got, "<link")
		assert.NotContains(t, got, `src="app.js"`)
		assert.Contains(t, got, "<p>Hi</p>")
	})

	t.Run("keeps remote and missing assets", func(t *testing.T) {
		t.Parallel()

		src := `<html><head>
<link rel="stylesheet" href="https://cdn.test/a.css">
<link rel="stylesheet" href="missing.css">
<link rel="icon" href="favicon.png">
</head><body><script src="//cdn.test/lib.js"></script></body></html>`

		got, err := goquery.NewStaticInliner().Inline(src, t.TempDir())

		require.NoError(t, err)
		assert.Contains(t, got, `href="https://cdn.test/a.css"`)
		assert.Contains(t, got, `href="missing.css"`)
		assert.Contains(t, got, `href="favicon.png"`)
		assert.Contains(t, got, `src="//cdn.test/lib.js"`)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewStaticInliner().Inline("  ", t.TempDir())

		assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
	})
}
