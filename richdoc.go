package bindery

import (
	"io"
	"strings"
)

// ParagraphKind is the semantic role of a rich-document paragraph.
type ParagraphKind int

// Paragraph kinds.
const (
	BodyParagraph ParagraphKind = iota
	TitleParagraph
	HeadingParagraph
	BulletParagraph
	NumberParagraph
	QuoteParagraph
	CaptionParagraph
	PlaceholderParagraph
	SpacerParagraph
	CodeParagraph
)

// Alignment is horizontal paragraph alignment.
type Alignment int

// Alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Block is an element of the rich-document stream: *Paragraph, *Table or *Image.
type Block interface {
	block()
}

// Paragraph is a run sequence with paragraph-level formatting.
type Paragraph struct {
	Kind ParagraphKind

	// Level is the heading level for HeadingParagraph (1-5) and 0 for titles.
	Level int

	Align           Alignment
	FirstLineIndent bool
	LeftIndent      bool

	// Spaced adds space before and after the paragraph.
	Spaced bool

	// FontSize overrides the default size in points. Zero means default.
	FontSize int

	Runs []Run
}

// Text returns the concatenated text of the paragraph's runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		if r.Kind == BreakRun {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Cell is a table cell.
type Cell struct {
	Header bool
	Runs   []Run
}

// Table is a grid of cells. Every row has exactly Columns cells.
type Table struct {
	Columns int
	Rows    [][]Cell
}

// Image is an embedded picture.
type Image struct {
	// Name is the original source reference.
	Name string
	Alt  string

	// Format is "png", "jpeg" or "gif".
	Format string
	Data   []byte

	// WidthPx and HeightPx are the decoded pixel dimensions.
	WidthPx  int
	HeightPx int

	// WidthIn is the display width in inches.
	WidthIn float64
}

func (*Paragraph) block() {}
func (*Table) block()     {}
func (*Image) block()     {}

// RichDocument is the semantic stream produced for word-processing output.
type RichDocument struct {
	Blocks []Block

	// Warnings records export defects such as images that could not be
	// embedded and were replaced by placeholders.
	Warnings []Issue
}

// Append adds blocks to the end of the stream.
func (d *RichDocument) Append(b ...Block) {
	d.Blocks = append(d.Blocks, b...)
}

// RichWriter persists a rich document in a concrete container format.
type RichWriter interface {
	WriteRich(w io.Writer, doc *RichDocument) error
}
