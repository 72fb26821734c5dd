package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/bindery"
)

// ReferencesPath is the location of a reference collection relative to its
// content directory.
var ReferencesPath = filepath.Join("data", "references.json")

var _ bindery.ReferenceLoader = (*ReferenceLoader)(nil)

// ReferenceLoader reads reference collections stored as JSON arrays.
type ReferenceLoader struct{}

// NewReferenceLoader creates a new ReferenceLoader.
func NewReferenceLoader() *ReferenceLoader {
	return &ReferenceLoader{}
}

// Locate returns where the collection for path lives: inside path when it
// is a directory, next to it otherwise.
func (l *ReferenceLoader) Locate(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, ReferencesPath)
	}
	return filepath.Join(filepath.Dir(path), ReferencesPath)
}

// LoadReferences loads the collection for the document or directory at path.
func (l *ReferenceLoader) LoadReferences(path string) ([]*bindery.Reference, error) {
	file := l.Locate(path)
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, bindery.Errorf(bindery.ENOTFOUND, "no references found at %s", file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	var refs []*bindery.Reference
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, bindery.Errorf(bindery.EINVALID, "invalid reference collection %s: %s", file, err)
	}
	return refs, nil
}
