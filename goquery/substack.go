package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bindery"
	"golang.org/x/net/html"
)

var (
	spaceBeforeClose = regexp.MustCompile(`\s+>`)
	spaceBetweenTags = regexp.MustCompile(`>\s+<`)
)

var _ bindery.Converter = (*SubstackConverter)(nil)

// SubstackConverter reduces a page to a paste-ready HTML fragment: the inner
// content of article, else main, else body, without interactive controls,
// scripts, styles or presentational attributes.
type SubstackConverter struct{}

// NewSubstackConverter creates a new SubstackConverter.
func NewSubstackConverter() *SubstackConverter {
	return &SubstackConverter{}
}

// Convert returns the cleaned fragment.
func (c *SubstackConverter) Convert(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", bindery.Errorf(bindery.EINVALID, "empty HTML content")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	content := mainSelection(doc)
	content.Find("div.controls, script, style").Remove()
	content.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			n.Attr = keepAttrs(n.Attr)
		}
	})

	out, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	out = spaceBeforeClose.ReplaceAllString(out, ">")
	out = spaceBetweenTags.ReplaceAllString(out, ">\n<")
	return strings.TrimSpace(out), nil
}

func mainSelection(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"article", "main"} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return doc.Find("body").First()
}

// keepAttrs drops class, id and data-* attributes.
func keepAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if key == "class" || key == "id" || strings.HasPrefix(key, "data-") {
			continue
		}
		out = append(out, a)
	}
	return out
}
