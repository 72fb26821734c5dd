package validate

import (
	"strings"

	"github.com/fwojciec/bindery"
)

func checkSkeleton(doc *bindery.Document, r *bindery.Report) {
	if !strings.HasPrefix(strings.ToLower(doc.Doctype), "doctype html") {
		r.AddError(bindery.CategoryHTML, 1, "Missing DOCTYPE declaration")
	}

	root := doc.Root
	html := root.Find("html")
	if html == nil {
		r.AddError(bindery.CategoryHTML, 0, "Missing <html> tag")
	}
	if root.Find("head") == nil {
		r.AddError(bindery.CategoryHTML, 0, "Missing <head> section")
	}
	if root.Find("body") == nil {
		r.AddError(bindery.CategoryHTML, 0, "Missing <body> section")
	}
	if root.Find("title") == nil {
		r.AddError(bindery.CategoryHTML, 0, "Missing <title> tag")
	}

	if lang, _ := attr(html, "lang"); strings.TrimSpace(lang) == "" {
		r.AddWarning(bindery.CategoryA11y, 0, "Missing lang attribute on <html>")
	}

	viewport := false
	for _, meta := range root.FindAll("meta") {
		if name, _ := meta.Attr("name"); strings.EqualFold(strings.TrimSpace(name), "viewport") {
			viewport = true
			break
		}
	}
	if !viewport {
		r.AddWarning(bindery.CategoryHTML, 0, "Missing viewport meta tag")
	}
}

// checkDefects reports every lexical and structural defect recorded while
// building the tree.
func checkDefects(doc *bindery.Document, r *bindery.Report) {
	for _, d := range doc.Defects {
		r.AddError(bindery.CategoryHTML, d.Line, "%s", d.Message())
	}
}

// checkControls warns when an interactive content page offers no print action.
func checkControls(src string, r *bindery.Report) {
	if !strings.Contains(src, "data-content-type") {
		return
	}
	if strings.Contains(src, "print()") || strings.Contains(src, "window.print") {
		return
	}
	r.AddWarning(bindery.CategoryControls, 0, "No print functionality detected")
}

func attr(n *bindery.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	return n.Attr(key)
}
