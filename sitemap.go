package bindery

import "io"

// SitemapWriter writes a sitemap for a list of site-relative paths.
type SitemapWriter interface {
	WriteSitemap(w io.Writer, paths []string) error
}
