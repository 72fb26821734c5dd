package bindery

// Style is a set of inline formatting flags.
type Style uint8

// Inline styles. A run produced by the resolver carries at most one of them
// except for hyperlinks, which are also underlined.
const (
	Bold Style = 1 << iota
	Italic
	Underline
	Superscript
	Subscript
	Citation
	Code
)

// Has reports whether s includes every flag in f.
func (s Style) Has(f Style) bool {
	return s&f == f
}

// RunKind identifies what a Run carries.
type RunKind int

// Run kinds.
const (
	TextRun RunKind = iota
	BreakRun
	ImageRun
)

// Run is the minimal styled unit of inline content. Text, Href, Src and Alt
// hold source text; character references are decoded by renderers.
type Run struct {
	Kind  RunKind
	Text  string
	Style Style

	// Href is the hyperlink target. Empty for runs that are not links.
	Href string

	// Src and Alt describe image runs.
	Src string
	Alt string
}

// IsLink reports whether the run is a hyperlink.
func (r Run) IsLink() bool {
	return r.Href != ""
}
