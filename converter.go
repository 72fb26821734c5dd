package bindery

// Renderer renders a parsed document to a UTF-8 artifact.
type Renderer interface {
	// Render returns the artifact for doc. Rendering the same document twice
	// yields identical output.
	Render(doc *Document) string
}

// Converter converts HTML source to another textual format.
type Converter interface {
	// Convert transforms HTML content into the target format.
	// Returns EINVALID for empty input.
	Convert(html string) (string, error)
}

// Previewer formats Markdown for display in a terminal.
type Previewer interface {
	Preview(markdown string) (string, error)
}

// Inliner produces a self-contained page by embedding the local stylesheets
// and scripts a document references. Relative references resolve against dir.
type Inliner interface {
	Inline(html, dir string) (string, error)
}
