package bindery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Status is the overall outcome of a validation run.
type Status string

// Report statuses.
const (
	StatusPassed             Status = "PASSED"
	StatusPassedWithWarnings Status = "PASSED WITH WARNINGS"
	StatusFailed             Status = "FAILED"
)

// Stats holds content statistics computed from the element tree.
type Stats struct {
	WordCount    int `json:"wordCount"`
	HeadingCount int `json:"headingCount"`
	LinkCount    int `json:"linkCount"`
	ImageCount   int `json:"imageCount"`
}

// Report is the result of validating a single document. Each validation run
// owns its report; nothing is shared between runs.
type Report struct {
	ID          string    `json:"id,omitempty"`
	Path        string    `json:"path"`
	ContentHash string    `json:"contentHash,omitempty"`
	CheckedAt   time.Time `json:"checkedAt"`
	Stats       Stats     `json:"stats"`
	Errors      []Issue   `json:"errors"`
	Warnings    []Issue   `json:"warnings"`
}

// AddError records an error.
func (r *Report) AddError(cat Category, line int, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{
		Severity: SeverityError,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

// AddWarning records a warning.
func (r *Report) AddWarning(cat Category, line int, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{
		Severity: SeverityWarning,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

// IsValid reports whether the document has no errors. Warnings never affect
// validity.
func (r *Report) IsValid() bool {
	return len(r.Errors) == 0
}

// Status returns the overall outcome.
func (r *Report) Status() Status {
	switch {
	case len(r.Errors) > 0:
		return StatusFailed
	case len(r.Warnings) > 0:
		return StatusPassedWithWarnings
	}
	return StatusPassed
}

// StatusLine returns the single summary line printed at the end of a report.
func (r *Report) StatusLine() string {
	switch r.Status() {
	case StatusFailed:
		return fmt.Sprintf("Status: ✗ FAILED (%d errors, %d warnings)", len(r.Errors), len(r.Warnings))
	case StatusPassedWithWarnings:
		return fmt.Sprintf("Status: ⚠ PASSED WITH WARNINGS (%d warnings)", len(r.Warnings))
	}
	return "Status: ✓ PASSED"
}

// WriteText writes the human-readable report.
func (r *Report) WriteText(w io.Writer) error {
	heavy := strings.Repeat("=", 60)

	var sb strings.Builder
	sb.WriteString(heavy + "\n")
	sb.WriteString("CONTENT VALIDATION REPORT\n")
	sb.WriteString(heavy + "\n\n")

	sb.WriteString("Statistics:\n")
	fmt.Fprintf(&sb, "  Word count: %d\n", r.Stats.WordCount)
	fmt.Fprintf(&sb, "  Headings: %d\n", r.Stats.HeadingCount)
	fmt.Fprintf(&sb, "  Links: %d\n", r.Stats.LinkCount)
	fmt.Fprintf(&sb, "  Images: %d\n\n", r.Stats.ImageCount)

	writeIssues(&sb, "ERRORS", "✗", r.Errors)
	writeIssues(&sb, "WARNINGS", "⚠", r.Warnings)

	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(r.StatusLine() + "\n")
	sb.WriteString(heavy + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeIssues(sb *strings.Builder, title, mark string, issues []Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s (%d):\n", title, len(issues))
	for _, is := range issues {
		fmt.Fprintf(sb, "  %s [%s] %s", mark, is.Category, is.Message)
		if is.Line > 0 {
			fmt.Fprintf(sb, " (line %d)", is.Line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	out := struct {
		*Report
		Status Status `json:"status"`
		Valid  bool   `json:"valid"`
	}{r, r.Status(), r.IsValid()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Validator validates a single document on disk.
type Validator interface {
	// Validate reads the document at path and returns its report.
	// Returns ENOTFOUND if the file does not exist.
	Validate(ctx context.Context, path string) (*Report, error)
}

// ReportService persists validation reports.
type ReportService interface {
	// CreateReport stores a report, assigning its ID.
	CreateReport(ctx context.Context, r *Report) error

	// FindReportByID retrieves a report by ID.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	Path   *string `json:"path"`
	Status *Status `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
