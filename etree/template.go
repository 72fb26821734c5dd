package etree

import (
	"archive/zip"
	"errors"
	"io/fs"

	"github.com/beevik/etree"
	"github.com/fwojciec/bindery"
)

const stylesPart = "word/styles.xml"

// UseTemplate makes the writer take its styles from the .docx package at
// path. Styles the writer relies on and the template lacks are added from
// the built-in set.
func (d *DocxWriter) UseTemplate(path string) error {
	zr, err := zip.OpenReader(path)
	if errors.Is(err, fs.ErrNotExist) {
		return bindery.Errorf(bindery.ENOTFOUND, "template not found: %s", path)
	}
	if err != nil {
		return bindery.Errorf(bindery.EINVALID, "invalid template %s: %s", path, err)
	}
	defer zr.Close()

	f, err := zr.Open(stylesPart)
	if err != nil {
		return bindery.Errorf(bindery.EINVALID, "template %s has no %s", path, stylesPart)
	}
	defer f.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return bindery.Errorf(bindery.EINVALID, "invalid %s in template %s: %s", stylesPart, path, err)
	}
	if root := doc.Root(); root == nil || root.Tag != "styles" {
		return bindery.Errorf(bindery.EINVALID, "invalid %s in template %s: missing styles element", stylesPart, path)
	}
	d.template = doc
	return nil
}

// styles returns word/styles.xml for the next package: the template styles
// completed with built-in ones, or the built-in set alone.
func (d *DocxWriter) styles() *etree.Document {
	builtin := defaultStyles()
	if d.template == nil {
		return builtin
	}

	doc := d.template.Copy()
	root := doc.Root()
	defined := make(map[string]bool)
	for _, s := range root.SelectElements("style") {
		defined[s.SelectAttrValue("w:styleId", "")] = true
	}
	for _, s := range builtin.Root().SelectElements("style") {
		if id := s.SelectAttrValue("w:styleId", ""); !defined[id] {
			root.AddChild(s.Copy())
		}
	}
	return doc
}
