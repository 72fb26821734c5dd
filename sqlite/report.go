package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/bindery"
	"github.com/google/uuid"
)

// Ensure ReportService implements bindery.ReportService.
var _ bindery.ReportService = (*ReportService)(nil)

// ReportService implements bindery.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport stores a report, assigning a new ID. CheckedAt is set to the
// current time when zero.
func (s *ReportService) CreateReport(ctx context.Context, r *bindery.Report) error {
	if r.Path == "" {
		return bindery.Errorf(bindery.EINVALID, "report path required")
	}

	r.ID = uuid.New().String()
	if r.CheckedAt.IsZero() {
		r.CheckedAt = time.Now().UTC()
	}

	errs, err := marshalIssues(r.Errors)
	if err != nil {
		return err
	}
	warns, err := marshalIssues(r.Warnings)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, path, content_hash, status, word_count, heading_count,
			link_count, image_count, errors, warnings, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Path, r.ContentHash, string(r.Status()), r.Stats.WordCount, r.Stats.HeadingCount,
		r.Stats.LinkCount, r.Stats.ImageCount, errs, warns, formatTime(r.CheckedAt))
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// FindReportByID retrieves a report by ID.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*bindery.Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, content_hash, word_count, heading_count, link_count, image_count,
			errors, warnings, checked_at
		FROM reports WHERE id = ?
	`, id)

	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, bindery.Errorf(bindery.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter bindery.ReportFilter) ([]*bindery.Report, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, path, content_hash, word_count, heading_count, link_count, image_count,
			errors, warnings, checked_at
		FROM reports WHERE 1=1`)

	var args []any
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY checked_at DESC, rowid DESC")
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*bindery.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (*bindery.Report, error) {
	var (
		r         bindery.Report
		errs      string
		warns     string
		checkedAt string
	)
	err := sc.Scan(&r.ID, &r.Path, &r.ContentHash, &r.Stats.WordCount, &r.Stats.HeadingCount,
		&r.Stats.LinkCount, &r.Stats.ImageCount, &errs, &warns, &checkedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	if err := json.Unmarshal([]byte(errs), &r.Errors); err != nil {
		return nil, fmt.Errorf("failed to decode errors: %w", err)
	}
	if err := json.Unmarshal([]byte(warns), &r.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode warnings: %w", err)
	}
	r.CheckedAt, err = parseTime(checkedAt, "checked_at")
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func marshalIssues(issues []bindery.Issue) (string, error) {
	if issues == nil {
		issues = []bindery.Issue{}
	}
	b, err := json.Marshal(issues)
	if err != nil {
		return "", fmt.Errorf("failed to encode issues: %w", err)
	}
	return string(b), nil
}
