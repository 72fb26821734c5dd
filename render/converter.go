package render

import (
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/markup"
)

var _ bindery.Converter = (*Converter)(nil)

// Converter adapts a Renderer to the string-to-string Converter interface.
type Converter struct {
	renderer bindery.Renderer
}

// NewConverter returns a Converter that parses HTML and renders it with r.
func NewConverter(r bindery.Renderer) *Converter {
	return &Converter{renderer: r}
}

// Convert parses html and renders the resulting tree.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", bindery.Errorf(bindery.EINVALID, "empty HTML input")
	}
	return c.renderer.Render(markup.Parse(html)), nil
}
