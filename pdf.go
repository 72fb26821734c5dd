package bindery

import (
	"context"
	"io"
)

// PDFRenderer renders an HTML document on disk to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, path string, w io.Writer) error
}
