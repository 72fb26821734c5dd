package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bindery"
)

// Ensure LoggingReportService implements bindery.ReportService.
var _ bindery.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService with debug logging.
type LoggingReportService struct {
	next   bindery.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next bindery.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

// CreateReport delegates to the wrapped service and logs the stored ID.
func (s *LoggingReportService) CreateReport(ctx context.Context, r *bindery.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create report",
			"path", r.Path,
			"id", r.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReport(ctx, r)
}

// FindReportByID delegates to the wrapped service.
func (s *LoggingReportService) FindReportByID(ctx context.Context, id string) (r *bindery.Report, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReportByID(ctx, id)
}

// FindReports delegates to the wrapped service and logs the result count.
func (s *LoggingReportService) FindReports(ctx context.Context, filter bindery.ReportFilter) (reports []*bindery.Report, err error) {
	defer func(begin time.Time) {
		attrs := []any{}
		if filter.Path != nil {
			attrs = append(attrs, "path", *filter.Path)
		}
		if filter.Status != nil {
			attrs = append(attrs, "status", *filter.Status)
		}
		attrs = append(attrs,
			"count", len(reports),
			"duration", time.Since(begin),
			"err", err,
		)
		s.logger.Info("find reports", attrs...)
	}(time.Now())
	return s.next.FindReports(ctx, filter)
}
