package markup

import (
	"strings"

	"github.com/fwojciec/bindery"
)

// Resolve returns the flat run sequence for the children of n. Styles do not
// accumulate: each formatting element yields runs carrying its own style and
// the normalized text of everything inside it. Adjacent runs with the same
// style and link target are merged.
func Resolve(n *bindery.Node) []bindery.Run {
	var r resolver
	r.children(n)
	return r.runs
}

// ResolveNodes returns the run sequence for a list of sibling nodes.
func ResolveNodes(nodes []*bindery.Node) []bindery.Run {
	var r resolver
	for _, n := range nodes {
		r.node(n)
	}
	return r.runs
}

type resolver struct {
	runs []bindery.Run
}

func (r *resolver) children(n *bindery.Node) {
	for _, c := range n.Children {
		r.node(c)
	}
}

func (r *resolver) node(n *bindery.Node) {
	switch n.Type {
	case bindery.TextNode:
		r.plain(CollapseSpace(n.Text))
		return
	case bindery.DocumentNode:
		r.children(n)
		return
	}

	switch n.Tag {
	case "script", "style":
	case "br":
		r.runs = append(r.runs, bindery.Run{Kind: bindery.BreakRun})
	case "img":
		src, _ := n.Attr("src")
		alt, _ := n.Attr("alt")
		r.runs = append(r.runs, bindery.Run{Kind: bindery.ImageRun, Src: src, Alt: alt})
	case "strong", "b":
		r.styled(n, bindery.Bold, "")
	case "em", "i":
		r.styled(n, bindery.Italic, "")
	case "u", "ins":
		r.styled(n, bindery.Underline, "")
	case "sup":
		r.styled(n, bindery.Superscript, "")
	case "sub":
		r.styled(n, bindery.Subscript, "")
	case "code":
		r.styled(n, bindery.Code, "")
	case "a":
		if href, _ := n.Attr("href"); href != "" {
			r.styled(n, bindery.Underline, href)
			return
		}
		r.children(n)
	case "span":
		if n.HasClass("citation") {
			r.styled(n, bindery.Citation, "")
			return
		}
		r.children(n)
	default:
		r.children(n)
	}
}

// styled emits the runs of a formatting element. Text inside it becomes runs
// of the element's style, split at line breaks. Images keep the link target
// of the element. Surrounding whitespace is kept as plain single spaces so
// that adjacent words stay separated.
func (r *resolver) styled(n *bindery.Node, style bindery.Style, href string) {
	var buf strings.Builder
	flush := func() {
		r.styledText(CollapseSpace(buf.String()), style, href)
		buf.Reset()
	}

	var walk func(*bindery.Node)
	walk = func(n *bindery.Node) {
		for _, c := range n.Children {
			switch {
			case c.Type == bindery.TextNode:
				buf.WriteString(c.Text)
			case c.IsElement("script"), c.IsElement("style"):
			case c.IsElement("br"):
				flush()
				r.runs = append(r.runs, bindery.Run{Kind: bindery.BreakRun})
			case c.IsElement("img"):
				flush()
				src, _ := c.Attr("src")
				alt, _ := c.Attr("alt")
				r.runs = append(r.runs, bindery.Run{Kind: bindery.ImageRun, Src: src, Alt: alt, Href: href})
			default:
				walk(c)
			}
		}
	}
	walk(n)
	flush()
}

func (r *resolver) styledText(text string, style bindery.Style, href string) {
	core := strings.TrimSpace(text)
	if core == "" {
		if text != "" {
			r.plain(" ")
		}
		return
	}
	if strings.HasPrefix(text, " ") {
		r.plain(" ")
	}
	r.append(bindery.Run{Text: core, Style: style, Href: href})
	if strings.HasSuffix(text, " ") {
		r.plain(" ")
	}
}

// append adds a styled text run, joining it to an identical preceding run.
func (r *resolver) append(run bindery.Run) {
	if n := len(r.runs); n > 0 {
		last := &r.runs[n-1]
		if last.Kind == bindery.TextRun && last.Style == run.Style && last.Href == run.Href {
			last.Text += run.Text
			return
		}
	}
	r.runs = append(r.runs, run)
}

// plain appends unstyled text, merging with a preceding plain run and never
// producing two consecutive spaces across the boundary.
func (r *resolver) plain(text string) {
	if text == "" {
		return
	}
	if len(r.runs) == 0 {
		r.runs = append(r.runs, bindery.Run{Text: text})
		return
	}
	last := &r.runs[len(r.runs)-1]
	if strings.HasSuffix(last.Text, " ") && strings.HasPrefix(text, " ") {
		text = text[1:]
		if text == "" {
			return
		}
	}
	if last.Kind == bindery.TextRun && last.Style == 0 && last.Href == "" {
		last.Text += text
		return
	}
	r.runs = append(r.runs, bindery.Run{Text: text})
}
