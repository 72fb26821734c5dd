package validate

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/markup"
)

// checkLinks resolves every href in the document. External links are never
// fetched.
func checkLinks(doc *bindery.Document, dir, root string, r *bindery.Report) {
	doc.Root.Walk(func(n *bindery.Node) bool {
		if n.Type != bindery.ElementNode {
			return true
		}
		raw, ok := n.Attr("href")
		if !ok {
			return true
		}
		href := strings.TrimSpace(markup.Unescape(raw))

		switch kind := classifyLink(href); kind {
		case fragmentLink:
			id := href[1:]
			if id != "" && doc.ElementByID(id) == nil {
				r.AddWarning(bindery.CategoryLink, n.Line, "Anchor target not found: %s", href)
			}
		case scriptLink:
			r.AddWarning(bindery.CategoryLink, n.Line, "JavaScript link: %s", href)
		case pathLink:
			if !pathExists(href, dir, root) {
				r.AddError(bindery.CategoryLink, n.Line, "Broken link: %s", href)
			}
		}
		return true
	})
}

type linkKind int

const (
	externalLink linkKind = iota
	fragmentLink
	scriptLink
	pathLink
)

func classifyLink(href string) linkKind {
	lower := strings.ToLower(href)
	switch {
	case strings.HasPrefix(href, "#"):
		return fragmentLink
	case strings.HasPrefix(lower, "javascript:"):
		return scriptLink
	case strings.HasPrefix(href, "//"), hasScheme(href):
		return externalLink
	}
	return pathLink
}

// hasScheme reports whether href starts with a URI scheme. Single letters
// are treated as drive names, not schemes.
func hasScheme(href string) bool {
	i := strings.IndexByte(href, ':')
	if i < 2 {
		return false
	}
	for j := 0; j < i; j++ {
		c := href[j]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// pathExists resolves a relative or root-relative link on disk. Query and
// fragment parts are ignored.
func pathExists(href, dir, root string) bool {
	p := href
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return true
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}

	base := dir
	if strings.HasPrefix(p, "/") {
		base = root
	}
	_, err := os.Stat(filepath.Join(base, filepath.FromSlash(p)))
	return err == nil
}
