// Package validate audits documents for structural, content, accessibility
// and link defects.
package validate

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/markup"
)

// Checks selects check families.
type Checks uint8

// Check families. Statistics are always computed.
const (
	CheckStructure Checks = 1 << iota
	CheckContent
	CheckAccessibility
	CheckLinks

	CheckAll = CheckStructure | CheckContent | CheckAccessibility | CheckLinks
)

var checkNames = map[string]Checks{
	"html":    CheckStructure,
	"content": CheckContent,
	"a11y":    CheckAccessibility,
	"links":   CheckLinks,
}

// ParseChecks converts check family names (html, content, a11y, links) into
// a Checks set. An empty list selects every family.
func ParseChecks(names []string) (Checks, error) {
	if len(names) == 0 {
		return CheckAll, nil
	}
	var c Checks
	for _, name := range names {
		f, ok := checkNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, bindery.Errorf(bindery.EINVALID, "unknown check %q (want html, content, a11y or links)", name)
		}
		c |= f
	}
	return c, nil
}

var _ bindery.Validator = (*Validator)(nil)

// Validator validates documents. The zero value runs every check.
type Validator struct {
	// Checks selects the check families to run. Zero means CheckAll.
	Checks Checks

	// Root resolves "/"-rooted links. Empty means the document's directory.
	Root string
}

// NewValidator returns a Validator running every check.
func NewValidator() *Validator {
	return &Validator{Checks: CheckAll}
}

// Validate reads and validates the document at path.
func (v *Validator) Validate(ctx context.Context, path string) (*bindery.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, bindery.Errorf(bindery.ENOTFOUND, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r := v.Check(string(data), filepath.Dir(path))
	r.Path = path
	return r, nil
}

// Check validates src. Relative links resolve against dir.
func (v *Validator) Check(src, dir string) *bindery.Report {
	checks := v.Checks
	if checks == 0 {
		checks = CheckAll
	}

	doc := markup.Parse(src)
	r := &bindery.Report{
		ContentHash: hashContent(src),
		CheckedAt:   time.Now().UTC(),
		Errors:      []bindery.Issue{},
		Warnings:    []bindery.Issue{},
	}

	if checks&CheckStructure != 0 {
		checkSkeleton(doc, r)
		checkDefects(doc, r)
	}
	if checks&CheckContent != 0 {
		checkEscapes(src, r)
	}
	if checks&CheckAccessibility != 0 {
		checkAccessibility(doc, r)
	}
	if checks&CheckContent != 0 {
		checkPlaceholders(src, r)
	}
	if checks&CheckStructure != 0 {
		checkControls(src, r)
	}

	r.Stats = Statistics(doc)

	if checks&CheckLinks != 0 {
		root := v.Root
		if root == "" {
			root = dir
		}
		checkLinks(doc, dir, root, r)
	}

	return r
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
