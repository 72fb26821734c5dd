// Package readability backs "bindery convert --extract readability": it
// strips navigation and chrome from a local page with Mozilla's Readability
// heuristics before the page is converted.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/go-shiori/go-readability"
)

var _ bindery.Extractor = (*Extractor)(nil)

// Extractor isolates article content with go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*bindery.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, bindery.Errorf(bindery.EINVALID, "empty HTML content")
	}

	// Local documents have no page URL, so relative references stay relative.
	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, bindery.Errorf(bindery.ENOTFOUND, "no main content found")
	}

	return &bindery.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
