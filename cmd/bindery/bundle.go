package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Run executes the bundle command.
func (c *BundleCmd) Run(deps *Dependencies) error {
	out := c.Output
	if out == "" {
		out = filepath.Clean(c.Path) + ".tar.xz"
	}

	f, err := os.Create(out)
	if err != nil {
		return fail(deps, fmt.Errorf("failed to create %s: %w", out, err))
	}
	if err := deps.Archiver.Archive(deps.Ctx, c.Path, f); err != nil {
		f.Close()
		os.Remove(out)
		return fail(deps, err)
	}
	if err := f.Close(); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "✓ Created archive: %s\n", out)
	return nil
}
