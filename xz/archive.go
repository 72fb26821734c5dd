// Package xz bundles content trees into xz-compressed tar archives.
package xz

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/fwojciec/bindery"
	"github.com/ulikunitz/xz"
)

// archiveTime is the modification time recorded for every entry so that
// identical trees produce identical archives.
var archiveTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var _ bindery.Archiver = (*Archiver)(nil)

// Archiver writes .tar.xz bundles. Entries are rooted at the base name of
// the archived path and written in lexical order.
type Archiver struct{}

// NewArchiver creates a new Archiver.
func NewArchiver() *Archiver {
	return &Archiver{}
}

// Archive writes the tree at dir (or the single file dir names) to w.
func (a *Archiver) Archive(ctx context.Context, dir string, w io.Writer) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return bindery.Errorf(bindery.ENOTFOUND, "path not found: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to start xz stream: %w", err)
	}
	tw := tar.NewWriter(xw)

	root := filepath.Clean(dir)
	base := filepath.Base(root)
	if !info.IsDir() {
		err = addFile(tw, root, base, info)
	} else {
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			name := path.Join(base, filepath.ToSlash(rel))
			fi, err := d.Info()
			if err != nil {
				return err
			}
			if d.IsDir() {
				return addDir(tw, name)
			}
			if !fi.Mode().IsRegular() {
				return nil
			}
			return addFile(tw, p, name, fi)
		})
	}
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish tar stream: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return nil
}

func addDir(tw *tar.Writer, name string) error {
	return tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeDir,
		Name:     name + "/",
		Mode:     0755,
		ModTime:  archiveTime,
	})
}

func addFile(tw *tar.Writer, src, name string, fi fs.FileInfo) error {
	mode := int64(0644)
	if fi.Mode().Perm()&0111 != 0 {
		mode = 0755
	}
	if err := tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     mode,
		Size:     fi.Size(),
		ModTime:  archiveTime,
	}); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", name, err)
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	if _, err := io.CopyN(tw, f, fi.Size()); err != nil {
		return fmt.Errorf("failed to archive %s: %w", src, err)
	}
	return nil
}
