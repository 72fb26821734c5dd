// Package fs provides file-based access to content trees: reading documents,
// locating reference collections, writing artifacts and deploying sites.
package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/bindery"
)

// MetadataFile is the optional collection descriptor kept at the root of a
// content directory.
const MetadataFile = "metadata.json"

// devDirs are directories never descended into or deployed.
var devDirs = map[string]bool{
	".git":        true,
	"__pycache__": true,
}

// IsDevFile reports whether a file or directory name belongs to the
// development environment rather than the published content.
func IsDevFile(name string, dir bool) bool {
	if dir {
		return devDirs[name]
	}
	return name == ".DS_Store" || name == MetadataFile || strings.HasSuffix(name, ".pyc")
}

// ReadDocument returns the contents of the document at path.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", bindery.Errorf(bindery.ENOTFOUND, "file not found: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// FindDocuments returns every .html file under root, sorted. Development
// directories are skipped. A file path is returned as the only document.
func FindDocuments(root string) ([]string, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, bindery.Errorf(bindery.ENOTFOUND, "path not found: %s", root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && IsDevFile(d.Name(), true) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".html") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Collection describes a content directory for JSON export: the fields of
// its metadata file, if any, plus the documents it holds.
type Collection map[string]any

// LoadCollection reads dir's metadata file and lists its documents relative
// to dir. Without a metadata file the collection is named after dir.
func LoadCollection(dir string) (Collection, error) {
	c := Collection{}
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c["name"] = filepath.Base(filepath.Clean(dir))
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", MetadataFile, err)
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, bindery.Errorf(bindery.EINVALID, "invalid %s: %s", MetadataFile, err)
		}
	}

	paths, err := FindDocuments(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil, err
		}
		files = append(files, filepath.ToSlash(rel))
	}
	c["files"] = files
	return c, nil
}
