package mock

import (
	"context"
	"io"

	"github.com/fwojciec/bindery"
)

var _ bindery.RichWriter = (*RichWriter)(nil)

// RichWriter is a mock implementation of bindery.RichWriter.
type RichWriter struct {
	WriteRichFn func(w io.Writer, doc *bindery.RichDocument) error
}

func (r *RichWriter) WriteRich(w io.Writer, doc *bindery.RichDocument) error {
	return r.WriteRichFn(w, doc)
}

var _ bindery.PDFRenderer = (*PDFRenderer)(nil)

// PDFRenderer is a mock implementation of bindery.PDFRenderer.
type PDFRenderer struct {
	RenderPDFFn func(ctx context.Context, path string, w io.Writer) error
}

func (r *PDFRenderer) RenderPDF(ctx context.Context, path string, w io.Writer) error {
	return r.RenderPDFFn(ctx, path, w)
}

var _ bindery.Archiver = (*Archiver)(nil)

// Archiver is a mock implementation of bindery.Archiver.
type Archiver struct {
	ArchiveFn func(ctx context.Context, dir string, w io.Writer) error
}

func (a *Archiver) Archive(ctx context.Context, dir string, w io.Writer) error {
	return a.ArchiveFn(ctx, dir, w)
}

var _ bindery.Deployer = (*Deployer)(nil)

// Deployer is a mock implementation of bindery.Deployer.
type Deployer struct {
	DeployFn func(ctx context.Context, src, dst string) ([]string, error)
}

func (d *Deployer) Deploy(ctx context.Context, src, dst string) ([]string, error) {
	return d.DeployFn(ctx, src, dst)
}

var _ bindery.SitemapWriter = (*SitemapWriter)(nil)

// SitemapWriter is a mock implementation of bindery.SitemapWriter.
type SitemapWriter struct {
	WriteSitemapFn func(w io.Writer, paths []string) error
}

func (s *SitemapWriter) WriteSitemap(w io.Writer, paths []string) error {
	return s.WriteSitemapFn(w, paths)
}

var _ bindery.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of bindery.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(a *bindery.Artifact) (string, error)
}

func (w *ArtifactWriter) WriteArtifact(a *bindery.Artifact) (string, error) {
	return w.WriteArtifactFn(a)
}

var _ bindery.ReferenceLoader = (*ReferenceLoader)(nil)

// ReferenceLoader is a mock implementation of bindery.ReferenceLoader.
type ReferenceLoader struct {
	LoadReferencesFn func(path string) ([]*bindery.Reference, error)
}

func (l *ReferenceLoader) LoadReferences(path string) ([]*bindery.Reference, error) {
	return l.LoadReferencesFn(path)
}
