// Package htmltomarkdown provides the CommonMark conversion engine backed
// by html-to-markdown. It is an alternative to the native Markdown renderer
// for documents that need strict CommonMark output.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bindery"
)

// skippedContent is removed before conversion, matching what the native
// renderers skip.
const skippedContent = "head, script, style, template, noscript, div.controls"

var _ bindery.Converter = (*Converter)(nil)

// Converter converts document bodies to CommonMark.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with table support.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms the body of src into Markdown.
func (c *Converter) Convert(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", bindery.Errorf(bindery.EINVALID, "empty HTML content")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(skippedContent).Remove()
	body, err := doc.Find("body").First().Html()
	if err != nil {
		return "", fmt.Errorf("failed to render body: %w", err)
	}

	md, err := c.conv.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
