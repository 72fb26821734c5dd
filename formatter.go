package bindery

import "strings"

// Artifact is a rendered output for one source document.
type Artifact struct {
	Name    string
	Content string
}

// FormatArtifacts joins artifacts into a single text bundle. Each artifact is
// introduced by a "=== name ===" header; artifacts are separated by blank
// lines.
func FormatArtifacts(artifacts []*Artifact) string {
	if len(artifacts) == 0 {
		return ""
	}

	parts := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		parts = append(parts, "=== "+a.Name+" ===\n\n"+a.Content)
	}

	return strings.Join(parts, "\n\n")
}

// ArtifactWriter persists artifacts.
type ArtifactWriter interface {
	WriteArtifact(a *Artifact) (string, error)
}
