package bindery

import (
	"context"
	"io"
)

// Archiver writes a directory tree to a single archive stream.
type Archiver interface {
	Archive(ctx context.Context, dir string, w io.Writer) error
}

// Deployer publishes a content tree to a deploy directory, leaving
// development files behind.
type Deployer interface {
	// Deploy replaces dst with a copy of src and returns the site-relative
	// paths of the HTML documents it contains.
	Deploy(ctx context.Context, src, dst string) ([]string, error)
}
