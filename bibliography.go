package bindery

import "strings"

// FormatBibliography formats references as bibliography entries separated by
// blank lines. An empty collection yields an empty string.
func FormatBibliography(refs []*Reference) string {
	if len(refs) == 0 {
		return ""
	}

	entries := make([]string, 0, len(refs))
	for _, ref := range refs {
		entries = append(entries, FormatReference(ref))
	}
	return strings.Join(entries, "\n\n")
}

// FormatReference formats a single reference. Only fields present on the
// record are written, in a fixed order.
func FormatReference(ref *Reference) string {
	typ := ref.Type
	if typ == "" {
		typ = "article"
	}
	id := ref.ID
	if id == "" {
		id = "unknown"
	}

	var fields []string
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, "  "+name+" = {"+value+"}")
		}
	}

	if len(ref.Authors) > 0 {
		names := make([]string, 0, len(ref.Authors))
		for _, a := range ref.Authors {
			names = append(names, formatAuthor(a))
		}
		add("author", strings.Join(names, " and "))
	}
	add("title", ref.Title)
	add(ref.ContainerField(), ref.ContainerTitle)
	add("year", ref.Year)
	add("volume", ref.Volume)
	add("number", ref.Issue)
	add("pages", ref.Pages)
	add("doi", ref.Identifier)

	if len(fields) == 0 {
		return typ + "{" + id + ",\n}"
	}
	return typ + "{" + id + ",\n" + strings.Join(fields, ",\n") + "\n}"
}

func formatAuthor(a Author) string {
	switch {
	case a.Family == "":
		return a.Given
	case a.Given == "":
		return a.Family
	}
	return a.Family + ", " + a.Given
}

// ReferenceLoader loads the reference collection that accompanies a document.
type ReferenceLoader interface {
	// LoadReferences returns the references for the document or directory
	// at path. Returns ENOTFOUND if no collection exists.
	LoadReferences(path string) ([]*Reference, error)
}
