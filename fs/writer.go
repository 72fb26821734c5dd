package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/bindery"
)

var _ bindery.ArtifactWriter = (*Writer)(nil)

// Writer writes artifacts into a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteArtifact writes a.Content to baseDir/a.Name, creating parent
// directories, and returns the written path.
func (w *Writer) WriteArtifact(a *bindery.Artifact) (string, error) {
	if a == nil || a.Name == "" {
		return "", bindery.Errorf(bindery.EINVALID, "artifact name required")
	}
	if !filepath.IsLocal(filepath.FromSlash(a.Name)) {
		return "", bindery.Errorf(bindery.EINVALID, "artifact name escapes output directory: %s", a.Name)
	}

	full := filepath.Join(w.baseDir, filepath.FromSlash(a.Name))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, []byte(a.Content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", full, err)
	}
	return full, nil
}
