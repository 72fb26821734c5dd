package etree

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/bindery"
)

const nsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"

var _ bindery.SitemapWriter = (*SitemapWriter)(nil)

// SitemapWriter writes sitemaps in the sitemaps.org urlset format.
type SitemapWriter struct {
	// BaseURL is prefixed to every path. Empty leaves paths site-relative.
	BaseURL string
}

// NewSitemapWriter creates a SitemapWriter for the given base URL.
func NewSitemapWriter(baseURL string) *SitemapWriter {
	return &SitemapWriter{BaseURL: strings.TrimRight(baseURL, "/")}
}

// WriteSitemap writes one <url><loc> entry per path in the order given.
// Paths are normalized to start with a slash.
func (s *SitemapWriter) WriteSitemap(w io.Writer, paths []string) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", nsSitemap)

	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		urlset.CreateElement("url").CreateElement("loc").SetText(s.BaseURL + p)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return nil
}
