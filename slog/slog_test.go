package slog_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/mock"
	bslog "github.com/fwojciec/bindery/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("logs status and counts", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Validator{
			ValidateFn: func(_ context.Context, path string) (*bindery.Report, error) {
				r := &bindery.Report{Path: path}
				r.AddError(bindery.CategoryA11y, 0, "No h1 tag found")
				r.AddWarning(bindery.CategoryLink, 3, "JavaScript link found (not recommended)")
				r.AddWarning(bindery.CategoryLink, 4, "JavaScript link found (not recommended)")
				return r, nil
			},
		}

		r, err := bslog.NewLoggingValidator(inner, logger).Validate(context.Background(), "doc.html")
		require.NoError(t, err)
		require.NotNil(t, r)

		out := buf.String()
		assert.Contains(t, out, "msg=validate")
		assert.Contains(t, out, "path=doc.html")
		assert.Contains(t, out, "status=FAILED")
		assert.Contains(t, out, "errors=1")
		assert.Contains(t, out, "warnings=2")
		assert.Contains(t, out, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Validator{
			ValidateFn: func(context.Context, string) (*bindery.Report, error) {
				return nil, errors.New("read failed")
			},
		}

		_, err := bslog.NewLoggingValidator(inner, logger).Validate(context.Background(), "doc.html")
		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="read failed"`)
		assert.NotContains(t, buf.String(), "status=")
	})
}

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return "# Title", nil
		},
	}

	out, err := bslog.NewLoggingConverter(inner, "commonmark", logger).Convert("<h1>Title</h1>")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)

	logged := buf.String()
	assert.Contains(t, logged, "msg=convert")
	assert.Contains(t, logged, "converter=commonmark")
	assert.Contains(t, logged, "in=14")
	assert.Contains(t, logged, "out=7")
}

func TestLoggingPDFRenderer_RenderPDF(t *testing.T) {
	t.Parallel()

	t.Run("logs bytes written", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.PDFRenderer{
			RenderPDFFn: func(_ context.Context, _ string, w io.Writer) error {
				_, err := io.WriteString(w, "%PDF-1.4")
				return err
			},
		}

		var pdf bytes.Buffer
		err := bslog.NewLoggingPDFRenderer(inner, logger).RenderPDF(context.Background(), "doc.html", &pdf)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", pdf.String())
		assert.Contains(t, buf.String(), `msg="render pdf"`)
		assert.Contains(t, buf.String(), "bytes=8")
	})

	t.Run("passes errors through", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.PDFRenderer{
			RenderPDFFn: func(context.Context, string, io.Writer) error {
				return bindery.Errorf(bindery.ENOTFOUND, "file not found: doc.html")
			},
		}

		err := bslog.NewLoggingPDFRenderer(inner, logger).RenderPDF(context.Background(), "doc.html", io.Discard)
		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
		assert.Contains(t, buf.String(), "err=")
	})
}

func TestLoggingReportService(t *testing.T) {
	t.Parallel()

	t.Run("CreateReport logs assigned ID", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.ReportService{
			CreateReportFn: func(_ context.Context, r *bindery.Report) error {
				r.ID = "r-1"
				return nil
			},
		}

		r := &bindery.Report{Path: "a.html"}
		require.NoError(t, bslog.NewLoggingReportService(inner, logger).CreateReport(context.Background(), r))
		assert.Contains(t, buf.String(), "id=r-1")
		assert.Contains(t, buf.String(), "path=a.html")
	})

	t.Run("FindReportByID logs id", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.ReportService{
			FindReportByIDFn: func(_ context.Context, id string) (*bindery.Report, error) {
				return nil, bindery.Errorf(bindery.ENOTFOUND, "report not found")
			},
		}

		_, err := bslog.NewLoggingReportService(inner, logger).FindReportByID(context.Background(), "nope")
		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
		assert.Contains(t, buf.String(), "id=nope")
	})

	t.Run("FindReports logs filter and count", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.ReportService{
			FindReportsFn: func(_ context.Context, filter bindery.ReportFilter) ([]*bindery.Report, error) {
				return []*bindery.Report{{Path: *filter.Path}, {Path: *filter.Path}}, nil
			},
		}

		path := "a.html"
		reports, err := bslog.NewLoggingReportService(inner, logger).FindReports(context.Background(), bindery.ReportFilter{Path: &path})
		require.NoError(t, err)
		assert.Len(t, reports, 2)
		assert.Contains(t, buf.String(), `msg="find reports"`)
		assert.Contains(t, buf.String(), "path=a.html")
		assert.Contains(t, buf.String(), "count=2")
	})
}
