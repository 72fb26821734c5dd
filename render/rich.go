package render

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/markup"
)

// DefaultImageWidth is the display width of embedded images in inches.
const DefaultImageWidth = 5.0

// RichRenderer maps a document onto the rich-document block stream.
type RichRenderer struct {
	// BaseDir resolves relative image sources. Usually the document's directory.
	BaseDir string

	// ImageWidth is the display width in inches. Zero means DefaultImageWidth.
	ImageWidth float64
}

// NewRichRenderer returns a RichRenderer resolving images against baseDir.
func NewRichRenderer(baseDir string) *RichRenderer {
	return &RichRenderer{BaseDir: baseDir}
}

// Render returns the block stream for doc. It never fails: images that cannot
// be embedded become placeholder paragraphs.
func (r *RichRenderer) Render(doc *bindery.Document) *bindery.RichDocument {
	out := &bindery.RichDocument{}
	r.container(out, mainContent(doc))
	return out
}

// mainContent returns main, else article, else body, else the root.
func mainContent(doc *bindery.Document) *bindery.Node {
	for _, tag := range []string{"main", "article", "body"} {
		if n := doc.Root.Find(tag); n != nil {
			return n
		}
	}
	return doc.Root
}

func (r *RichRenderer) container(out *bindery.RichDocument, n *bindery.Node) {
	for _, c := range n.Children {
		if c.Type == bindery.ElementNode {
			r.element(out, c)
		}
	}
}

func (r *RichRenderer) element(out *bindery.RichDocument, n *bindery.Node) {
	if skipped(n) {
		return
	}

	if level := n.HeadingLevel(); level > 0 {
		text := markup.NormalizeText(n.TextContent())
		if text == "" {
			return
		}
		p := &bindery.Paragraph{
			Kind:  bindery.HeadingParagraph,
			Level: level - 1,
			Runs:  []bindery.Run{{Text: text}},
		}
		if level == 1 {
			p.Kind = bindery.TitleParagraph
			p.Align = bindery.AlignCenter
		}
		out.Append(p)
		return
	}

	switch n.Tag {
	case "p":
		if markup.NormalizeText(n.TextContent()) != "" {
			out.Append(&bindery.Paragraph{
				Kind:            bindery.BodyParagraph,
				FirstLineIndent: true,
				Runs:            richRuns(markup.Resolve(n)),
			})
		}
		// Pictures cannot sit inside a rich paragraph, so they follow it.
		for _, img := range n.FindAll("img") {
			out.Append(r.image(out, img))
		}

	case "ul", "ol":
		kind := bindery.BulletParagraph
		if n.Tag == "ol" {
			kind = bindery.NumberParagraph
		}
		for _, li := range n.Children {
			if li.IsElement("li") {
				out.Append(&bindery.Paragraph{Kind: kind, Runs: richRuns(markup.Resolve(li))})
			}
		}

	case "blockquote":
		out.Append(&bindery.Paragraph{
			Kind:       bindery.QuoteParagraph,
			LeftIndent: true,
			Runs:       []bindery.Run{{Text: markup.NormalizeText(n.TextContent()), Style: bindery.Italic}},
		})

	case "pre":
		out.Append(&bindery.Paragraph{Kind: bindery.CodeParagraph, Runs: codeRuns(n.TextContent())})

	case "table":
		if t := richTable(n); t != nil {
			out.Append(t, &bindery.Paragraph{Kind: bindery.SpacerParagraph})
		}

	case "figure":
		if img := n.Find("img"); img != nil {
			out.Append(r.image(out, img))
		}
		if fc := n.Find("figcaption"); fc != nil {
			out.Append(&bindery.Paragraph{
				Kind:     bindery.CaptionParagraph,
				Align:    bindery.AlignCenter,
				FontSize: 10,
				Runs:     []bindery.Run{{Text: markup.NormalizeText(fc.TextContent()), Style: bindery.Italic}},
			})
		}

	case "img":
		out.Append(r.image(out, n))

	case "hr":
		out.Append(&bindery.Paragraph{Kind: bindery.SpacerParagraph, Spaced: true})

	case "div", "section", "article", "header", "footer", "main", "body", "html":
		r.container(out, n)
	}
}

// image embeds a local picture or degrades to a centered placeholder.
func (r *RichRenderer) image(out *bindery.RichDocument, n *bindery.Node) bindery.Block {
	src, _ := n.Attr("src")
	alt, _ := n.Attr("alt")
	src = markup.Unescape(src)
	alt = markup.Unescape(alt)

	if img := r.embed(src); img != nil {
		img.Alt = alt
		return img
	}

	label := alt
	if label == "" {
		label = src
	}
	out.Warnings = append(out.Warnings, bindery.Issue{
		Severity: bindery.SeverityWarning,
		Category: bindery.CategoryExport,
		Message:  "Image not embedded: " + src,
		Line:     n.Line,
	})
	return &bindery.Paragraph{
		Kind:  bindery.PlaceholderParagraph,
		Align: bindery.AlignCenter,
		Runs:  []bindery.Run{{Text: "[Image: " + label + "]"}},
	}
}

func (r *RichRenderer) embed(src string) *bindery.Image {
	if src == "" || isRemote(src) {
		return nil
	}

	p := src
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	data, err := os.ReadFile(filepath.Join(r.BaseDir, filepath.FromSlash(p)))
	if err != nil {
		return nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return nil
	}

	width := r.ImageWidth
	if width <= 0 {
		width = DefaultImageWidth
	}
	return &bindery.Image{
		Name:     src,
		Format:   format,
		Data:     data,
		WidthPx:  cfg.Width,
		HeightPx: cfg.Height,
		WidthIn:  width,
	}
}

func isRemote(src string) bool {
	lower := strings.ToLower(src)
	for _, prefix := range []string{"http://", "https://", "//", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func richTable(n *bindery.Node) *bindery.Table {
	trs := n.FindAll("tr")
	if len(trs) == 0 {
		return nil
	}
	cols := len(cells(trs[0]))
	if cols == 0 {
		return nil
	}

	t := &bindery.Table{Columns: cols}
	for _, tr := range trs {
		row := make([]bindery.Cell, cols)
		for i, c := range cells(tr) {
			if i >= cols {
				break
			}
			header := c.IsElement("th")
			run := bindery.Run{Text: markup.NormalizeText(c.TextContent())}
			if header {
				run.Style = bindery.Bold
			}
			row[i] = bindery.Cell{Header: header, Runs: []bindery.Run{run}}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func cells(tr *bindery.Node) []*bindery.Node {
	var out []*bindery.Node
	for _, c := range tr.Children {
		if c.IsElement("td") || c.IsElement("th") {
			out = append(out, c)
		}
	}
	return out
}

// richRuns decodes references and drops image runs, which the renderer
// places after the paragraph. Outer whitespace of the paragraph is trimmed.
func richRuns(runs []bindery.Run) []bindery.Run {
	out := make([]bindery.Run, 0, len(runs))
	for _, run := range runs {
		if run.Kind == bindery.ImageRun {
			continue
		}
		run.Text = markup.Unescape(run.Text)
		run.Href = markup.Unescape(run.Href)
		if n := len(out); n > 0 && strings.HasSuffix(out[n-1].Text, " ") {
			// A dropped image can leave two spaces side by side.
			run.Text = strings.TrimPrefix(run.Text, " ")
			if run.Kind == bindery.TextRun && run.Text == "" {
				continue
			}
		}
		out = append(out, run)
	}

	for len(out) > 0 && out[0].Kind == bindery.TextRun {
		out[0].Text = strings.TrimLeft(out[0].Text, " ")
		if out[0].Text != "" {
			break
		}
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1].Kind == bindery.TextRun {
		last := &out[len(out)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

// codeRuns splits preformatted text into code runs separated by breaks.
func codeRuns(text string) []bindery.Run {
	lines := strings.Split(strings.Trim(markup.Unescape(text), "\n"), "\n")
	runs := make([]bindery.Run, 0, 2*len(lines))
	for i, line := range lines {
		if i > 0 {
			runs = append(runs, bindery.Run{Kind: bindery.BreakRun})
		}
		runs = append(runs, bindery.Run{Text: line, Style: bindery.Code})
	}
	return runs
}
