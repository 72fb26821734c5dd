// Package glamour renders Markdown for terminal display.
package glamour

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/bindery"
)

// DefaultWidth is the word wrap width used when Previewer.Width is zero.
const DefaultWidth = 80

var _ bindery.Previewer = (*Previewer)(nil)

// Previewer implements bindery.Previewer using glamour.
type Previewer struct {
	// Style is a glamour standard style name. Empty selects a style from the
	// terminal background.
	Style string
	Width int
}

// NewPreviewer returns a Previewer that picks its style from the terminal.
func NewPreviewer() *Previewer {
	return &Previewer{Width: DefaultWidth}
}

// Preview renders markdown with terminal styling.
func (p *Previewer) Preview(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", bindery.Errorf(bindery.EINVALID, "nothing to preview")
	}

	opts := []glamour.TermRendererOption{}
	if p.Style != "" {
		opts = append(opts, glamour.WithStandardStyle(p.Style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	width := p.Width
	if width <= 0 {
		width = DefaultWidth
	}
	opts = append(opts, glamour.WithWordWrap(width))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
