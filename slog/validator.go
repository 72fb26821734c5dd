package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bindery"
)

// Ensure LoggingValidator implements bindery.Validator.
var _ bindery.Validator = (*LoggingValidator)(nil)

// LoggingValidator wraps a Validator with debug logging.
type LoggingValidator struct {
	next   bindery.Validator
	logger *slog.Logger
}

// NewLoggingValidator creates a new LoggingValidator.
func NewLoggingValidator(next bindery.Validator, logger *slog.Logger) *LoggingValidator {
	return &LoggingValidator{next: next, logger: logger}
}

// Validate delegates to the wrapped validator and logs the outcome.
func (v *LoggingValidator) Validate(ctx context.Context, path string) (r *bindery.Report, err error) {
	defer func(begin time.Time) {
		attrs := []any{"path", path}
		if r != nil {
			attrs = append(attrs,
				"status", r.Status(),
				"errors", len(r.Errors),
				"warnings", len(r.Warnings),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		v.logger.Info("validate", attrs...)
	}(time.Now())
	return v.next.Validate(ctx, path)
}
