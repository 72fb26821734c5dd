package bindery_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/bindery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Status(t *testing.T) {
	t.Parallel()

	t.Run("no issues passes", func(t *testing.T) {
		t.Parallel()

		r := &bindery.Report{}
		assert.True(t, r.IsValid())
		assert.Equal(t, bindery.StatusPassed, r.Status())
		assert.Equal(t, "Status: ✓ PASSED", r.StatusLine())
	})

	t.Run("warnings never affect validity", func(t *testing.T) {
		t.Parallel()

		r := &bindery.Report{}
		r.AddWarning(bindery.CategoryA11y, 0, "Multiple h1 tags found: %d", 2)
		assert.True(t, r.IsValid())
		assert.Equal(t, bindery.StatusPassedWithWarnings, r.Status())
		assert.Equal(t, "Status: ⚠ PASSED WITH WARNINGS (1 warnings)", r.StatusLine())
	})

	t.Run("errors fail", func(t *testing.T) {
		t.Parallel()

		r := &bindery.Report{}
		r.AddError(bindery.CategoryHTML, 3, "Unclosed tag: <%s>", "div")
		r.AddWarning(bindery.CategoryLink, 4, "JavaScript link found (not recommended)")
		assert.False(t, r.IsValid())
		assert.Equal(t, bindery.StatusFailed, r.Status())
		assert.Equal(t, "Status: ✗ FAILED (1 errors, 1 warnings)", r.StatusLine())

		require.Len(t, r.Errors, 1)
		assert.Equal(t, bindery.Issue{
			Severity: bindery.SeverityError,
			Category: bindery.CategoryHTML,
			Message:  "Unclosed tag: <div>",
			Line:     3,
		}, r.Errors[0])
	})
}

func TestReport_WriteText(t *testing.T) {
	t.Parallel()

	r := &bindery.Report{Stats: bindery.Stats{WordCount: 120, HeadingCount: 3, LinkCount: 2, ImageCount: 1}}
	r.AddError(bindery.CategoryEscape, 5, "Literal \\n escape sequence found")
	r.AddWarning(bindery.CategoryA11y, 0, "Missing lang attribute on <html>")

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, strings.Repeat("=", 60)+"\nCONTENT VALIDATION REPORT\n"))
	assert.Contains(t, out, "  Word count: 120\n")
	assert.Contains(t, out, "  Headings: 3\n")
	assert.Contains(t, out, "ERRORS (1):\n  ✗ [escape] Literal \\n escape sequence found (line 5)\n")
	assert.Contains(t, out, "WARNINGS (1):\n  ⚠ [a11y] Missing lang attribute on <html>\n")
	assert.Contains(t, out, "Status: ✗ FAILED (1 errors, 1 warnings)\n")
	assert.True(t, strings.HasSuffix(out, strings.Repeat("=", 60)+"\n"))
}

func TestReport_WriteText_OmitsEmptySections(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&bindery.Report{}).WriteText(&buf))
	assert.NotContains(t, buf.String(), "ERRORS")
	assert.NotContains(t, buf.String(), "WARNINGS")
}

func TestReport_WriteJSON(t *testing.T) {
	t.Parallel()

	r := &bindery.Report{Path: "doc.html", Stats: bindery.Stats{WordCount: 9}}
	r.AddWarning(bindery.CategoryLink, 2, "Empty anchor link")

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var got struct {
		Path   string `json:"path"`
		Status string `json:"status"`
		Valid  bool   `json:"valid"`
		Stats  struct {
			WordCount int `json:"wordCount"`
		} `json:"stats"`
		Warnings []bindery.Issue `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "doc.html", got.Path)
	assert.Equal(t, "PASSED WITH WARNINGS", got.Status)
	assert.True(t, got.Valid)
	assert.Equal(t, 9, got.Stats.WordCount)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, 2, got.Warnings[0].Line)
}

func TestCategory_Class(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cat  bindery.Category
		want bindery.DefectClass
	}{
		{bindery.CategoryHTML, bindery.StructuralDefect},
		{bindery.CategoryEscape, bindery.ContentDefect},
		{bindery.CategoryPlaceholder, bindery.ContentDefect},
		{bindery.CategoryA11y, bindery.AccessibilityDefect},
		{bindery.CategoryLink, bindery.LinkDefect},
		{bindery.CategoryExport, bindery.ExportDefect},
	}
	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cat.Class())
		})
	}
}

func TestDefect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		defect  bindery.Defect
		message string
		class   bindery.DefectClass
	}{
		{bindery.Defect{Kind: bindery.MalformedTag, Tag: "div"}, "Malformed tag: <div", bindery.LexicalDefect},
		{bindery.Defect{Kind: bindery.MalformedTag}, "Malformed tag", bindery.LexicalDefect},
		{bindery.Defect{Kind: bindery.UnclosedTag, Tag: "p"}, "Unclosed tag: <p>", bindery.StructuralDefect},
		{bindery.Defect{Kind: bindery.ExtraClosingTag, Tag: "span"}, "Extra closing tag: </span>", bindery.StructuralDefect},
		{bindery.Defect{Kind: bindery.ImplicitlyClosedTag, Tag: "em", ClosedBy: "p"}, "Tag <em> implicitly closed by </p>", bindery.StructuralDefect},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.message, tt.defect.Message())
			assert.Equal(t, tt.class, tt.defect.Class())
		})
	}
}
