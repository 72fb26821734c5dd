package fs_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/fs"
	"github.com/fwojciec/bindery/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteTree(t *testing.T) string {
	t.Helper()

	src := filepath.Join(t.TempDir(), "site")
	writeFiles(t, src, map[string]string{
		"index.html":          "<h1>Home</h1>",
		"posts/first.html":    "<h1>First</h1>",
		"css/site.css":        "body{}",
		"metadata.json":       "{}",
		".DS_Store":           "x",
		"tools/build.pyc":     "x",
		".git/HEAD":           "ref",
		"__pycache__/mod.pyc": "x",
	})
	return src
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()

	var out []string
	require.NoError(t, filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, p)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	}))
	return out
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDeployer_Deploy(t *testing.T) {
	t.Parallel()

	t.Run("copies site without development files", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)
		dst := filepath.Join(t.TempDir(), "deploy")

		pages, err := fs.NewDeployer(nil).Deploy(context.Background(), src, dst)

		require.NoError(t, err)
		assert.Equal(t, []string{"/index.html", "/posts/first.html"}, pages)
		assert.ElementsMatch(t, []string{"index.html", "posts/first.html", "css/site.css", fs.DeployMarker}, listFiles(t, dst))
		assert.Equal(t, []string{"deploy"}, dirNames(t, filepath.Dir(dst)))
	})

	t.Run("writes sitemap of deployed pages", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)
		dst := filepath.Join(t.TempDir(), "deploy")
		var got []string
		sitemap := &mock.SitemapWriter{
			WriteSitemapFn: func(w io.Writer, paths []string) error {
				got = paths
				_, err := io.WriteString(w, "<urlset/>")
				return err
			},
		}

		_, err := fs.NewDeployer(sitemap).Deploy(context.Background(), src, dst)

		require.NoError(t, err)
		assert.Equal(t, []string{"/index.html", "/posts/first.html"}, got)
		data, err := os.ReadFile(filepath.Join(dst, fs.SitemapFile))
		require.NoError(t, err)
		assert.Equal(t, "<urlset/>", string(data))
	})

	t.Run("replaces previous deploy", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)
		dst := filepath.Join(t.TempDir(), "deploy")
		_, err := fs.NewDeployer(nil).Deploy(context.Background(), src, dst)
		require.NoError(t, err)
		writeFiles(t, dst, map[string]string{"stale.html": "old"})

		_, err = fs.NewDeployer(nil).Deploy(context.Background(), src, dst)

		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(dst, "stale.html"))
		assert.FileExists(t, filepath.Join(dst, "index.html"))
		assert.Equal(t, []string{"deploy"}, dirNames(t, filepath.Dir(dst)))
	})

	t.Run("keeps previous deploy when sitemap fails", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)
		dst := filepath.Join(t.TempDir(), "deploy")
		_, err := fs.NewDeployer(nil).Deploy(context.Background(), src, dst)
		require.NoError(t, err)
		writeFiles(t, dst, map[string]string{"live.html": "live"})
		sitemap := &mock.SitemapWriter{
			WriteSitemapFn: func(io.Writer, []string) error { return errors.New("boom") },
		}

		_, err = fs.NewDeployer(sitemap).Deploy(context.Background(), src, dst)

		require.Error(t, err)
		assert.FileExists(t, filepath.Join(dst, "live.html"))
		assert.Equal(t, []string{"deploy"}, dirNames(t, filepath.Dir(dst)))
	})

	t.Run("deploys into an empty directory", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)
		dst := t.TempDir()

		_, err := fs.NewDeployer(nil).Deploy(context.Background(), src, dst)

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dst, "index.html"))
	})

	t.Run("refuses a non-empty directory that is not a deploy", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)
		dst := t.TempDir()
		writeFiles(t, dst, map[string]string{"notes.txt": "keep"})

		_, err := fs.NewDeployer(nil).Deploy(context.Background(), src, dst)

		assert.Equal(t, bindery.ECONFLICT, bindery.ErrorCode(err))
		assert.FileExists(t, filepath.Join(dst, "notes.txt"))
		assert.NoFileExists(t, filepath.Join(dst, "index.html"))
	})

	t.Run("refuses a file target", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)
		dst := filepath.Join(t.TempDir(), "deploy")
		require.NoError(t, os.WriteFile(dst, []byte("x"), 0644))

		_, err := fs.NewDeployer(nil).Deploy(context.Background(), src, dst)

		assert.Equal(t, bindery.ECONFLICT, bindery.ErrorCode(err))
	})

	t.Run("rejects deploy inside source", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)

		_, err := fs.NewDeployer(nil).Deploy(context.Background(), src, filepath.Join(src, "out"))

		assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
	})

	t.Run("rejects deploy over the source or its ancestors", func(t *testing.T) {
		t.Parallel()

		parent := t.TempDir()
		src := filepath.Join(parent, "site")
		writeFiles(t, src, map[string]string{"index.html": "<h1>Home</h1>"})
		writeFiles(t, parent, map[string]string{"unrelated.txt": "keep"})

		for _, dst := range []string{src, parent, filepath.Dir(parent)} {
			_, err := fs.NewDeployer(nil).Deploy(context.Background(), src, dst)

			assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err), dst)
		}
		assert.FileExists(t, filepath.Join(src, "index.html"))
		assert.FileExists(t, filepath.Join(parent, "unrelated.txt"))
	})

	t.Run("rejects files", func(t *testing.T) {
		t.Parallel()

		src := siteTree(t)

		_, err := fs.NewDeployer(nil).Deploy(context.Background(), filepath.Join(src, "index.html"), t.TempDir()+"/d")

		assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
	})

	t.Run("returns not found for missing source", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewDeployer(nil).Deploy(context.Background(), filepath.Join(t.TempDir(), "none"), "d")

		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
		assert.False(t, strings.Contains(bindery.ErrorMessage(err), "Internal"))
	})
}
