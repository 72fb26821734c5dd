package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/batch"
	"github.com/fwojciec/bindery/fs"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	info, err := os.Stat(c.Path)
	if err != nil {
		return fail(deps, bindery.Errorf(bindery.ENOTFOUND, "path not found: %s", c.Path))
	}

	paths, err := fs.FindDocuments(c.Path)
	if err != nil {
		return fail(deps, err)
	}
	if len(paths) == 0 {
		return fail(deps, bindery.Errorf(bindery.ENOTFOUND, "no HTML files found in: %s", c.Path))
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = deps.Config.Concurrency
	}
	v := &batch.Validator{Validator: deps.Validator, Concurrency: concurrency}
	results, err := v.ValidateAll(deps.Ctx, paths)
	if err != nil {
		return fail(deps, err)
	}

	dirMode := info.IsDir()
	failed := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", res.Path, bindery.ErrorMessage(res.Err))
			failed = true
			continue
		}
		// Word counting never fails a document.
		if !c.WordCount && !res.Report.IsValid() {
			failed = true
		}
		if err := c.print(deps, res.Report, dirMode); err != nil {
			return fail(deps, err)
		}
		if c.Record {
			if err := c.record(deps, res.Report); err != nil {
				return fail(deps, err)
			}
		}
	}

	if failed {
		return &reportedError{err: ErrValidationFailed}
	}
	return nil
}

func (c *ValidateCmd) print(deps *Dependencies, r *bindery.Report, dirMode bool) error {
	if dirMode && !c.JSON {
		fmt.Fprintf(deps.Stdout, "\nValidating: %s\n", r.Path)
	}
	switch {
	case c.WordCount:
		_, err := fmt.Fprintf(deps.Stdout, "Word count: %d\n", r.Stats.WordCount)
		return err
	case c.JSON:
		return r.WriteJSON(deps.Stdout)
	}
	return r.WriteText(deps.Stdout)
}

// record stores a copy of r keyed by its absolute path so history lookups do
// not depend on the working directory.
func (c *ValidateCmd) record(deps *Dependencies, r *bindery.Report) error {
	stored := *r
	if abs, err := filepath.Abs(r.Path); err == nil {
		stored.Path = abs
	}
	if err := deps.Reports.CreateReport(deps.Ctx, &stored); err != nil {
		return err
	}
	if !c.JSON {
		fmt.Fprintf(deps.Stdout, "Recorded report %s\n", stored.ID)
	}
	return nil
}
