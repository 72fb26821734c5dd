package etree_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/bindery"
	betree "github.com/fwojciec/bindery/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
    <w:name w:val="Normal"/>
    <w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Arial"/></w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Fancy"><w:name w:val="Fancy"/></w:style>
</w:styles>`

func writeTemplate(t *testing.T, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "template.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestDocxWriter_UseTemplate(t *testing.T) {
	t.Parallel()

	t.Run("takes styles from the template and adds missing ones", func(t *testing.T) {
		t.Parallel()

		w := betree.NewDocxWriter()
		require.NoError(t, w.UseTemplate(writeTemplate(t, map[string]string{"word/styles.xml": templateStyles})))

		_, pkg := writeDocxWith(t, w, sampleDocument())

		styles := pkg.xml(t, "word/styles.xml")
		ids := map[string]int{}
		for _, s := range styles.FindElements("//w:style") {
			ids[s.SelectAttrValue("w:styleId", "")]++
		}
		assert.Equal(t, 1, ids["Normal"])
		assert.Equal(t, 1, ids["Fancy"])
		assert.Equal(t, 1, ids["Heading1"])
		assert.Equal(t, 1, ids["TableGrid"])

		fonts := styles.FindElement("//w:style[@w:styleId='Normal']/w:rPr/w:rFonts")
		require.NotNil(t, fonts)
		assert.Equal(t, "Arial", fonts.SelectAttrValue("w:ascii", ""))
		assert.Nil(t, styles.FindElement("//w:docDefaults"))
	})

	t.Run("keeps output deterministic", func(t *testing.T) {
		t.Parallel()

		w := betree.NewDocxWriter()
		require.NoError(t, w.UseTemplate(writeTemplate(t, map[string]string{"word/styles.xml": templateStyles})))

		first, _ := writeDocxWith(t, w, sampleDocument())
		second, _ := writeDocxWith(t, w, sampleDocument())

		assert.Equal(t, first, second)
	})

	t.Run("returns not found for a missing template", func(t *testing.T) {
		t.Parallel()

		err := betree.NewDocxWriter().UseTemplate(filepath.Join(t.TempDir(), "none.docx"))

		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
	})

	t.Run("rejects packages without styles", func(t *testing.T) {
		t.Parallel()

		err := betree.NewDocxWriter().UseTemplate(writeTemplate(t, map[string]string{"word/document.xml": "<w:document/>"}))

		assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
	})

	t.Run("rejects files that are not packages", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plain.docx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

		err := betree.NewDocxWriter().UseTemplate(path)

		assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
	})
}
