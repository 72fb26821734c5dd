package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/bindery"
)

// Ensure LoggingPDFRenderer implements bindery.PDFRenderer.
var _ bindery.PDFRenderer = (*LoggingPDFRenderer)(nil)

// LoggingPDFRenderer wraps a PDFRenderer with debug logging.
type LoggingPDFRenderer struct {
	next   bindery.PDFRenderer
	logger *slog.Logger
}

// NewLoggingPDFRenderer creates a new LoggingPDFRenderer.
func NewLoggingPDFRenderer(next bindery.PDFRenderer, logger *slog.Logger) *LoggingPDFRenderer {
	return &LoggingPDFRenderer{next: next, logger: logger}
}

// RenderPDF delegates to the wrapped renderer, counting bytes written.
func (r *LoggingPDFRenderer) RenderPDF(ctx context.Context, path string, w io.Writer) (err error) {
	cw := &countingWriter{w: w}
	defer func(begin time.Time) {
		r.logger.Info("render pdf",
			"path", path,
			"bytes", cw.n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderPDF(ctx, path, cw)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
