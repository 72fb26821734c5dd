package bindery

// ExtractResult is the main content of a local document, isolated from its
// navigation and controls before conversion.
type ExtractResult struct {
	Title string

	// ContentHTML is the isolated content as an HTML fragment.
	ContentHTML string
}

// Extractor isolates the main content of a document for
// "convert --extract". Returns ENOTFOUND when no main content is found, in
// which case callers convert the whole document.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
