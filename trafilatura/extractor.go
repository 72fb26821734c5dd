// Package trafilatura backs "bindery convert --extract trafilatura": it
// isolates the main content of a local page with go-trafilatura before the
// page is converted.
package trafilatura

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ bindery.Extractor = (*Extractor)(nil)

// Extractor extracts article content with go-trafilatura, falling back to
// its readability and dom-distiller heuristics when the primary pass finds
// too little.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and main content.
func (e *Extractor) Extract(rawHTML string) (*bindery.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, bindery.Errorf(bindery.EINVALID, "empty HTML content")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	if result.ContentNode == nil || strings.TrimSpace(result.ContentText) == "" {
		return nil, bindery.Errorf(bindery.ENOTFOUND, "no main content found")
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, fmt.Errorf("failed to render content: %w", err)
	}
	content := buf.String()

	return &bindery.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: content,
	}, nil
}
