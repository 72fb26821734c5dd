package goquery

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bindery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ bindery.Inliner = (*StaticInliner)(nil)

// StaticInliner replaces links to local .css files with style elements and
// local .js script references with inline scripts. Remote assets and files
// that cannot be read are left as they are.
type StaticInliner struct{}

// NewStaticInliner creates a new StaticInliner.
func NewStaticInliner() *StaticInliner {
	return &StaticInliner{}
}

// Inline returns src with its local assets embedded.
func (s *StaticInliner) Inline(src, dir string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", bindery.Errorf(bindery.EINVALID, "empty HTML content")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("link[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasSuffix(strings.ToLower(assetPath(href)), ".css") {
			return
		}
		if css, ok := readAsset(dir, href); ok {
			sel.ReplaceWithNodes(rawElement(atom.Style, css))
		}
	})
	doc.Find("script[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if !strings.HasSuffix(strings.ToLower(assetPath(src)), ".js") {
			return
		}
		if js, ok := readAsset(dir, src); ok {
			sel.ReplaceWithNodes(rawElement(atom.Script, js))
		}
	})

	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return out, nil
}

// assetPath strips the query and fragment from a reference.
func assetPath(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i]
	}
	return ref
}

func readAsset(dir, ref string) (string, bool) {
	lower := strings.ToLower(ref)
	for _, prefix := range []string{"http://", "https://", "//", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}
	p := assetPath(ref)
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(p, "/"))))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// rawElement builds a style or script element whose body is written
// verbatim when rendered.
func rawElement(a atom.Atom, body string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: body})
	return n
}
