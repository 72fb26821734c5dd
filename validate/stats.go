package validate

import (
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/markup"
)

// Statistics computes content statistics from the tree. Script and style
// bodies never count as words.
func Statistics(doc *bindery.Document) bindery.Stats {
	var s bindery.Stats
	doc.Root.Walk(func(n *bindery.Node) bool {
		switch n.Type {
		case bindery.TextNode:
			s.WordCount += len(strings.Fields(markup.Unescape(n.Text)))
		case bindery.ElementNode:
			if n.Tag == "script" || n.Tag == "style" {
				return false
			}
			if n.HeadingLevel() > 0 {
				s.HeadingCount++
			}
			if n.Tag == "img" {
				s.ImageCount++
			}
			if _, ok := n.Attr("href"); ok {
				s.LinkCount++
			}
		}
		return true
	})
	return s
}
