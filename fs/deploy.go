package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/bindery"
)

// SitemapFile is the name of the sitemap written at the deploy root.
const SitemapFile = "sitemap.xml"

// DeployMarker is written at the root of every deploy. An existing non-empty
// directory is only replaced when it carries the marker.
const DeployMarker = ".bindery-deploy"

var _ bindery.Deployer = (*Deployer)(nil)

// Deployer copies content trees for publication. The copy is assembled in
// a sibling temporary directory and swapped into place, so a failed deploy
// leaves the previous site at dst untouched.
type Deployer struct {
	// Sitemap, when set, writes sitemap.xml listing the deployed documents.
	Sitemap bindery.SitemapWriter
}

// NewDeployer creates a Deployer writing sitemaps with s. s may be nil.
func NewDeployer(s bindery.SitemapWriter) *Deployer {
	return &Deployer{Sitemap: s}
}

// Deploy replaces dst with a copy of src without development files. dst must
// not overlap src and must be missing, empty or a previous deploy.
func (d *Deployer) Deploy(ctx context.Context, src, dst string) ([]string, error) {
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, bindery.Errorf(bindery.ENOTFOUND, "path not found: %s", src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return nil, bindery.Errorf(bindery.EINVALID, "deploy requires a directory: %s", src)
	}

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return nil, err
	}
	if within(srcAbs, dstAbs) || within(dstAbs, srcAbs) {
		return nil, bindery.Errorf(bindery.EINVALID, "deploy directory must not overlap the source tree: %s", dst)
	}
	if err := replaceable(dstAbs); err != nil {
		return nil, err
	}

	parent := filepath.Dir(dstAbs)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", parent, err)
	}
	tmp, err := os.MkdirTemp(parent, "."+filepath.Base(dstAbs)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	pages, err := copyTree(ctx, srcAbs, tmp)
	if err == nil && d.Sitemap != nil {
		err = d.writeSitemap(tmp, pages)
	}
	if err == nil {
		err = os.WriteFile(filepath.Join(tmp, DeployMarker), nil, 0644)
	}
	if err == nil {
		err = swap(tmp, dstAbs, os.Rename)
	}
	if err != nil {
		_ = os.RemoveAll(tmp)
		return nil, err
	}
	return pages, nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && (rel == "." || filepath.IsLocal(rel))
}

// replaceable reports an error unless dst is missing, an empty directory or
// a directory written by a previous deploy.
func replaceable(dst string) error {
	info, err := os.Stat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", dst, err)
	}
	if !info.IsDir() {
		return bindery.Errorf(bindery.ECONFLICT, "deploy target is not a directory: %s", dst)
	}
	if _, err := os.Stat(filepath.Join(dst, DeployMarker)); err == nil {
		return nil
	}
	entries, err := os.ReadDir(dst)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dst, err)
	}
	if len(entries) > 0 {
		return bindery.Errorf(bindery.ECONFLICT, "refusing to replace non-empty directory that is not a deploy: %s", dst)
	}
	return nil
}

// swap moves staged into place at dst with rename. A previous dst is moved
// aside first and restored when the final rename fails.
func swap(staged, dst string, rename func(oldpath, newpath string) error) error {
	old := staged + ".old"
	_, err := os.Stat(dst)
	hadOld := err == nil
	if hadOld {
		if err := rename(dst, old); err != nil {
			return fmt.Errorf("failed to move aside %s: %w", dst, err)
		}
	}
	if err := rename(staged, dst); err != nil {
		if hadOld {
			_ = rename(old, dst)
		}
		return fmt.Errorf("failed to move deploy into place: %w", err)
	}
	if hadOld {
		if err := os.RemoveAll(old); err != nil {
			return fmt.Errorf("failed to remove previous deploy: %w", err)
		}
	}
	return nil
}

func (d *Deployer) writeSitemap(dir string, pages []string) error {
	var buf bytes.Buffer
	if err := d.Sitemap.WriteSitemap(&buf, pages); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, SitemapFile), buf.Bytes(), 0644)
}

// copyTree copies src to dst, skipping development files, and returns the
// "/"-rooted paths of the HTML documents copied.
func copyTree(ctx context.Context, src, dst string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if rel != "." && IsDevFile(d.Name(), true) {
				return filepath.SkipDir
			}
			return os.MkdirAll(target, 0755)
		}
		if IsDevFile(d.Name(), false) || d.Name() == DeployMarker || !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(p, target); err != nil {
			return err
		}
		if strings.EqualFold(filepath.Ext(p), ".html") {
			pages = append(pages, "/"+filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pages)
	return pages, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
