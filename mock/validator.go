package mock

import (
	"context"

	"github.com/fwojciec/bindery"
)

var _ bindery.Validator = (*Validator)(nil)

// Validator is a mock implementation of bindery.Validator.
type Validator struct {
	ValidateFn func(ctx context.Context, path string) (*bindery.Report, error)
}

func (v *Validator) Validate(ctx context.Context, path string) (*bindery.Report, error) {
	return v.ValidateFn(ctx, path)
}

var _ bindery.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of bindery.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, r *bindery.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*bindery.Report, error)
	FindReportsFn    func(ctx context.Context, filter bindery.ReportFilter) ([]*bindery.Report, error)
}

func (s *ReportService) CreateReport(ctx context.Context, r *bindery.Report) error {
	return s.CreateReportFn(ctx, r)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*bindery.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter bindery.ReportFilter) ([]*bindery.Report, error) {
	return s.FindReportsFn(ctx, filter)
}
