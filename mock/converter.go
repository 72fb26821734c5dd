package mock

import "github.com/fwojciec/bindery"

var _ bindery.Converter = (*Converter)(nil)

// Converter is a mock implementation of bindery.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ bindery.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of bindery.Renderer.
type Renderer struct {
	RenderFn func(doc *bindery.Document) string
}

func (r *Renderer) Render(doc *bindery.Document) string {
	return r.RenderFn(doc)
}

var _ bindery.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bindery.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*bindery.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*bindery.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ bindery.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of bindery.Summarizer.
type Summarizer struct {
	SummarizeFn func(file, html string) (*bindery.Summary, error)
}

func (s *Summarizer) Summarize(file, html string) (*bindery.Summary, error) {
	return s.SummarizeFn(file, html)
}

var _ bindery.Previewer = (*Previewer)(nil)

// Previewer is a mock implementation of bindery.Previewer.
type Previewer struct {
	PreviewFn func(markdown string) (string, error)
}

func (p *Previewer) Preview(markdown string) (string, error) {
	return p.PreviewFn(markdown)
}

var _ bindery.Inliner = (*Inliner)(nil)

// Inliner is a mock implementation of bindery.Inliner.
type Inliner struct {
	InlineFn func(html, dir string) (string, error)
}

func (i *Inliner) Inline(html, dir string) (string, error) {
	return i.InlineFn(html, dir)
}
