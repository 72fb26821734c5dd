package render

import (
	"strconv"
	"strings"

	"github.com/fwojciec/bindery"
)

var _ bindery.Renderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer renders documents as lightweight Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer returns a Markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown for doc.
func (r *MarkdownRenderer) Render(doc *bindery.Document) string {
	return render(markdownFormat{}, doc)
}

type markdownFormat struct{}

func (markdownFormat) inline(runs []bindery.Run) string {
	var sb strings.Builder
	for _, run := range runs {
		switch run.Kind {
		case bindery.BreakRun:
			sb.WriteString("\n")
		case bindery.ImageRun:
			img := "![" + run.Alt + "](" + run.Src + ")"
			if run.IsLink() {
				img = "[" + img + "](" + run.Href + ")"
			}
			sb.WriteString(img)
		default:
			sb.WriteString(markdownRun(run))
		}
	}
	return sb.String()
}

func markdownRun(run bindery.Run) string {
	switch {
	case run.IsLink():
		return "[" + run.Text + "](" + run.Href + ")"
	case run.Style.Has(bindery.Bold):
		return "**" + run.Text + "**"
	case run.Style.Has(bindery.Italic):
		return "*" + run.Text + "*"
	case run.Style.Has(bindery.Code):
		return "`" + run.Text + "`"
	}
	return run.Text
}

func (markdownFormat) listMarker(ordered bool, index int) string {
	if ordered {
		return strconv.Itoa(index) + ". "
	}
	return "- "
}

func (markdownFormat) quote(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func (markdownFormat) pre(code, lang string) string {
	return "```" + lang + "\n" + code + "\n```"
}

func (markdownFormat) table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	cols := len(rows[0])
	line := func(cells []string) string {
		out := make([]string, cols)
		for i := range out {
			if i < len(cells) {
				out[i] = strings.ReplaceAll(cells[i], "|", `\|`)
			}
		}
		return "| " + strings.Join(out, " | ") + " |"
	}

	lines := []string{line(rows[0])}
	sep := make([]string, cols)
	for i := range sep {
		sep[i] = "---"
	}
	lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
	for _, row := range rows[1:] {
		lines = append(lines, line(row))
	}
	return strings.Join(lines, "\n")
}

func (markdownFormat) figure(src, alt, caption string) string {
	var parts []string
	if src != "" {
		parts = append(parts, "!["+alt+"]("+src+")")
	}
	if caption != "" {
		parts = append(parts, "*"+caption+"*")
	}
	return strings.Join(parts, "\n\n")
}
