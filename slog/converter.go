package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/bindery"
)

// Ensure LoggingConverter implements bindery.Converter.
var _ bindery.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging. Name identifies the
// conversion in log output.
type LoggingConverter struct {
	next   bindery.Converter
	name   string
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next bindery.Converter, name string, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, name: name, logger: logger}
}

// Convert delegates to the wrapped converter and logs sizes.
func (c *LoggingConverter) Convert(html string) (out string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("convert",
			"converter", c.name,
			"in", len(html),
			"out", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}
