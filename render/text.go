package render

import (
	"strings"

	"github.com/fwojciec/bindery"
)

var _ bindery.Renderer = (*TextRenderer)(nil)

// TextRenderer renders documents as plain text.
type TextRenderer struct{}

// NewTextRenderer returns a plain text renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the plain text of doc.
func (r *TextRenderer) Render(doc *bindery.Document) string {
	return render(plainFormat{}, doc)
}

type plainFormat struct{}

func (plainFormat) inline(runs []bindery.Run) string {
	var sb strings.Builder
	for _, run := range runs {
		switch run.Kind {
		case bindery.BreakRun:
			sb.WriteString("\n")
		case bindery.TextRun:
			sb.WriteString(run.Text)
		}
	}
	return sb.String()
}

func (plainFormat) listMarker(bool, int) string { return "• " }

func (plainFormat) quote(body string) string { return body }

func (plainFormat) pre(code, _ string) string { return code }

func (plainFormat) table(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, " | "))
	}
	return strings.Join(lines, "\n")
}

func (plainFormat) figure(_, _, caption string) string { return caption }
