// Package render turns parsed documents into text, Markdown and rich
// word-processing streams.
package render

import (
	"regexp"
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/markup"
)

// format supplies the flavor-specific pieces of the shared block skeleton.
type format interface {
	inline(runs []bindery.Run) string
	listMarker(ordered bool, index int) string
	quote(body string) string
	pre(code, lang string) string
	table(rows [][]string) string
	figure(src, alt, caption string) string
}

var blockTags = map[string]bool{
	"html": true, "body": true, "main": true, "article": true, "section": true,
	"header": true, "footer": true, "nav": true, "aside": true, "div": true,
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"blockquote": true, "pre": true, "hr": true, "table": true, "figure": true,
	"figcaption": true, "address": true, "form": true, "details": true, "summary": true,
	"head": true, "title": true, "script": true, "style": true, "template": true, "noscript": true,
}

// skipped reports whether n and its subtree are left out of every rendering.
func skipped(n *bindery.Node) bool {
	if n.Type != bindery.ElementNode {
		return false
	}
	switch n.Tag {
	case "head", "title", "script", "style", "template", "noscript":
		return true
	case "div":
		return n.HasClass("controls")
	}
	return false
}

// walker writes blank-line delimited blocks.
type walker struct {
	f   format
	out strings.Builder
}

func render(f format, doc *bindery.Document) string {
	w := &walker{f: f}
	w.container(doc.Body())
	return cleanup(w.out.String())
}

func (w *walker) block(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	w.out.WriteString("\n")
	w.out.WriteString(s)
	w.out.WriteString("\n")
}

// container renders the children of n. Runs of inline content between block
// elements form implicit paragraphs.
func (w *walker) container(n *bindery.Node) {
	var pending []*bindery.Node
	flush := func() {
		if len(pending) == 0 {
			return
		}
		w.block(strings.TrimSpace(w.f.inline(markup.ResolveNodes(pending))))
		pending = pending[:0]
	}

	for _, c := range n.Children {
		if c.Type == bindery.TextNode || !blockTags[c.Tag] {
			pending = append(pending, c)
			continue
		}
		flush()
		w.element(c)
	}
	flush()
}

func (w *walker) element(n *bindery.Node) {
	if skipped(n) {
		return
	}

	if level := n.HeadingLevel(); level > 0 {
		if text := strings.TrimSpace(w.f.inline(markup.Resolve(n))); text != "" {
			w.block(strings.Repeat("#", level) + " " + text)
		}
		return
	}

	switch n.Tag {
	case "p", "dt", "dd", "figcaption", "summary":
		w.block(strings.TrimSpace(w.f.inline(markup.Resolve(n))))
	case "ul", "ol":
		w.block(strings.Join(w.listLines(n, 0), "\n"))
	case "li":
		w.block(w.f.listMarker(false, 1) + strings.TrimSpace(w.f.inline(markup.Resolve(n))))
	case "hr":
		w.block("---")
	case "blockquote":
		inner := &walker{f: w.f}
		inner.container(n)
		w.block(w.f.quote(strings.TrimSpace(inner.out.String())))
	case "pre":
		w.block(w.f.pre(strings.Trim(n.TextContent(), "\n"), codeLanguage(n)))
	case "table":
		w.block(w.f.table(tableRows(n)))
	case "figure":
		var src, alt string
		if img := n.Find("img"); img != nil {
			src, _ = img.Attr("src")
			alt, _ = img.Attr("alt")
		}
		var caption string
		if fc := n.Find("figcaption"); fc != nil {
			caption = strings.TrimSpace(w.f.inline(markup.Resolve(fc)))
		}
		w.block(w.f.figure(src, alt, caption))
	default:
		w.container(n)
	}
}

// listLines renders the direct items of a list, indenting nested lists two
// spaces per level.
func (w *walker) listLines(list *bindery.Node, depth int) []string {
	ordered := list.Tag == "ol"
	var lines []string
	index := 0
	for _, li := range list.Children {
		if !li.IsElement("li") {
			continue
		}
		index++

		var inline, nested []*bindery.Node
		for _, c := range li.Children {
			if c.IsElement("ul") || c.IsElement("ol") {
				nested = append(nested, c)
			} else {
				inline = append(inline, c)
			}
		}

		text := strings.TrimSpace(w.f.inline(markup.ResolveNodes(inline)))
		lines = append(lines, strings.Repeat("  ", depth)+w.f.listMarker(ordered, index)+text)
		for _, sub := range nested {
			lines = append(lines, w.listLines(sub, depth+1)...)
		}
	}
	return lines
}

// codeLanguage returns the language named by a language-* class on the code
// element inside a pre block.
func codeLanguage(pre *bindery.Node) string {
	code := pre.Find("code")
	if code == nil {
		return ""
	}
	class, _ := code.Attr("class")
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok {
			return lang
		}
	}
	return ""
}

// tableRows returns the normalized text of every cell, row by row.
func tableRows(table *bindery.Node) [][]string {
	var rows [][]string
	for _, tr := range table.FindAll("tr") {
		var row []string
		for _, cell := range tr.Children {
			if cell.IsElement("td") || cell.IsElement("th") {
				row = append(row, strings.TrimSpace(markup.CollapseSpace(cell.TextContent())))
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

var (
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	blankLineRe = regexp.MustCompile(`\n{3,}`)
)

// cleanup strips residual tags, decodes character references, collapses
// runs of blank lines and trims the result.
func cleanup(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = markup.Unescape(s)
	s = blankLineRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
