// Package rod renders documents to PDF through a headless Chrome instance
// driven by go-rod.
package rod

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/bindery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of documents rendered before the browser is
// restarted. Chrome's memory baseline grows across pages and never returns
// to its initial level.
const DefaultMaxPages = 50

var _ bindery.PDFRenderer = (*PDFRenderer)(nil)

// PDFRenderer prints local HTML files to PDF. The browser is launched on
// first use and recycled every MaxPages documents.
//
// PDFRenderer is safe for concurrent use.
type PDFRenderer struct {
	// MaxPages bounds the documents rendered per browser instance.
	MaxPages int

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int
	closed   bool
}

// NewPDFRenderer returns a PDFRenderer with the default recycling threshold.
// Close must be called to release the browser.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{MaxPages: DefaultMaxPages}
}

// RenderPDF loads the file at path and writes its print rendering to w.
// CSS page rules and backgrounds are honoured.
func (r *PDFRenderer) RenderPDF(ctx context.Context, path string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return bindery.Errorf(bindery.ENOTFOUND, "file not found: %s", path)
	}

	browser, err := r.acquire()
	if err != nil {
		return err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(fileURL(abs)); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s: %w", path, err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return fmt.Errorf("printing %s: %w", path, err)
	}
	if _, err := io.Copy(w, stream); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (r *PDFRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return r.shutdown()
}

// acquire returns a live browser, launching a fresh one when none is
// running or the current one reached MaxPages.
func (r *PDFRenderer) acquire() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, bindery.Errorf(bindery.EINVALID, "renderer is closed")
	}

	limit := r.MaxPages
	if limit <= 0 {
		limit = DefaultMaxPages
	}
	if r.browser != nil && r.rendered >= limit {
		_ = r.shutdown()
	}
	if r.browser == nil {
		if err := r.launch(); err != nil {
			return nil, err
		}
	}
	r.rendered++
	return r.browser, nil
}

// launch starts Chrome with flags that keep background pages from being
// throttled. Must be called with mu held.
func (r *PDFRenderer) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("allow-file-access-from-files").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	r.launcher = l
	r.rendered = 0
	return nil
}

// shutdown must be called with mu held.
func (r *PDFRenderer) shutdown() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

func fileURL(abs string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}
