package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/markup"
)

// UntitledDocument is the title of documents with neither <title> nor <h1>.
const UntitledDocument = "Untitled"

var _ bindery.Summarizer = (*Summarizer)(nil)

// Summarizer builds document summaries. Text comes from the configured
// renderer; title and outline come from the markup.
type Summarizer struct {
	renderer bindery.Renderer
}

// NewSummarizer creates a Summarizer rendering text with r.
func NewSummarizer(r bindery.Renderer) *Summarizer {
	return &Summarizer{renderer: r}
}

// Summarize returns the summary of src. file is recorded as given.
func (s *Summarizer) Summarize(file, src string) (*bindery.Summary, error) {
	if strings.TrimSpace(src) == "" {
		return nil, bindery.Errorf(bindery.EINVALID, "empty HTML content")
	}

	title, err := Title(src)
	if err != nil {
		return nil, err
	}

	doc := markup.Parse(src)
	text := s.renderer.Render(doc)
	sections := markup.Outline(doc)
	if sections == nil {
		sections = []bindery.Section{}
	}
	return &bindery.Summary{
		File:      file,
		Title:     title,
		Text:      text,
		WordCount: len(strings.Fields(text)),
		Sections:  sections,
	}, nil
}

// Title returns the trimmed <title>, else the first <h1>, else
// UntitledDocument.
func Title(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	for _, sel := range []string{"title", "h1"} {
		if t := strings.Join(strings.Fields(doc.Find(sel).First().Text()), " "); t != "" {
			return t, nil
		}
	}
	return UntitledDocument, nil
}
