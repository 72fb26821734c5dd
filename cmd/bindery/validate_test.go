package main_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/bindery"
	main "github.com/fwojciec/bindery/cmd/bindery"
	"github.com/fwojciec/bindery/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFor(path string, words int, errs ...string) *bindery.Report {
	r := &bindery.Report{Path: path, Stats: bindery.Stats{WordCount: words}}
	for _, e := range errs {
		r.AddError(bindery.CategoryHTML, 0, "%s", e)
	}
	return r
}

func TestValidateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints a text report for a single file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "doc.html", "<h1>x</h1>")
		deps, stdout, _ := newDeps()
		deps.Validator = &mock.Validator{
			ValidateFn: func(_ context.Context, p string) (*bindery.Report, error) {
				return reportFor(p, 42), nil
			},
		}

		require.NoError(t, (&main.ValidateCmd{Path: path}).Run(deps))
		assert.Contains(t, stdout.String(), "Word count: 42")
		assert.Contains(t, stdout.String(), "Status: ✓ PASSED")
		assert.NotContains(t, stdout.String(), "Validating:")
	})

	t.Run("word count mode prints only the count and never fails", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "doc.html", "<p>x</p>")
		deps, stdout, _ := newDeps()
		deps.Validator = &mock.Validator{
			ValidateFn: func(_ context.Context, p string) (*bindery.Report, error) {
				return reportFor(p, 7, "Missing <html> tag"), nil
			},
		}

		require.NoError(t, (&main.ValidateCmd{Path: path, WordCount: true}).Run(deps))
		assert.Equal(t, "Word count: 7\n", stdout.String())
	})

	t.Run("directory mode validates each document in sorted order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "b.html", "b")
		writeFile(t, dir, "a.html", "a")
		writeFile(t, dir, "notes.txt", "skip")

		deps, stdout, _ := newDeps()
		deps.Validator = &mock.Validator{
			ValidateFn: func(_ context.Context, p string) (*bindery.Report, error) {
				if strings.HasSuffix(p, "b.html") {
					return reportFor(p, 1, "Missing DOCTYPE declaration"), nil
				}
				return reportFor(p, 1), nil
			},
		}

		err := (&main.ValidateCmd{Path: dir}).Run(deps)
		require.ErrorIs(t, err, main.ErrValidationFailed)

		out := stdout.String()
		assert.Equal(t, 2, strings.Count(out, "Validating:"))
		assert.Less(t, strings.Index(out, "a.html"), strings.Index(out, "b.html"))
		assert.Contains(t, out, "Missing DOCTYPE declaration")
	})

	t.Run("json mode writes the report with status", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "doc.html", "x")
		deps, stdout, _ := newDeps()
		deps.Validator = &mock.Validator{
			ValidateFn: func(_ context.Context, p string) (*bindery.Report, error) {
				return reportFor(p, 3), nil
			},
		}

		require.NoError(t, (&main.ValidateCmd{Path: path, JSON: true}).Run(deps))

		var got map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "PASSED", got["status"])
		assert.Equal(t, true, got["valid"])
	})

	t.Run("records reports with absolute paths", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "doc.html", "x")
		deps, stdout, _ := newDeps()
		deps.Validator = &mock.Validator{
			ValidateFn: func(_ context.Context, p string) (*bindery.Report, error) {
				return reportFor(p, 3), nil
			},
		}
		var stored *bindery.Report
		deps.Reports = &mock.ReportService{
			CreateReportFn: func(_ context.Context, r *bindery.Report) error {
				r.ID = "r-42"
				stored = r
				return nil
			},
		}

		require.NoError(t, (&main.ValidateCmd{Path: path, Record: true}).Run(deps))
		require.NotNil(t, stored)
		assert.Equal(t, path, stored.Path)
		assert.Contains(t, stdout.String(), "Recorded report r-42")
	})

	t.Run("per-file errors are printed and fail the run", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "doc.html", "x")
		deps, _, stderr := newDeps()
		deps.Validator = &mock.Validator{
			ValidateFn: func(context.Context, string) (*bindery.Report, error) {
				return nil, bindery.Errorf(bindery.EINVALID, "unreadable")
			},
		}

		err := (&main.ValidateCmd{Path: path}).Run(deps)
		require.ErrorIs(t, err, main.ErrValidationFailed)
		assert.Contains(t, stderr.String(), "unreadable")
	})

	t.Run("empty directory is not found", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Validator = &mock.Validator{}

		err := (&main.ValidateCmd{Path: t.TempDir()}).Run(deps)
		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no HTML files found")
	})
}
