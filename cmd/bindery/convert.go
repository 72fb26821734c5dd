package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/fs"
	"github.com/fwojciec/bindery/markup"
	"github.com/fwojciec/bindery/render"
)

var formatExt = map[string]string{
	"text":     ".txt",
	"markdown": ".md",
	"docx":     ".docx",
	"json":     ".json",
	"substack": "_substack.html",
	"static":   "_static.html",
	"bibtex":   ".bib",
	"pdf":      ".pdf",
}

var formatLabel = map[string]string{
	"text":     "text",
	"markdown": "Markdown",
	"docx":     "Word document",
	"json":     "JSON",
	"substack": "Substack HTML",
	"static":   "static HTML",
	"bibtex":   "bibliography",
	"pdf":      "PDF",
}

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	info, err := os.Stat(c.Path)
	if err != nil {
		return fail(deps, bindery.Errorf(bindery.ENOTFOUND, "path not found: %s", c.Path))
	}
	dir := info.IsDir()

	if dir {
		switch c.To {
		case "docx", "substack", "static", "pdf":
			return fail(deps, bindery.Errorf(bindery.EINVALID, "%s export only works with single HTML files", c.To))
		}
	}
	if c.Split && (!dir || c.Output == "" || c.Output == "-") {
		return fail(deps, bindery.Errorf(bindery.EINVALID, "--split requires a directory input and an output directory"))
	}

	var werr error
	switch c.To {
	case "bibtex":
		werr = c.bibliography(deps)
	case "json":
		werr = c.json(deps, dir)
	case "docx":
		werr = c.docx(deps)
	case "static":
		werr = c.static(deps)
	case "pdf":
		werr = c.output(deps, func(w io.Writer) error {
			return deps.PDF.RenderPDF(deps.Ctx, c.Path, w)
		})
	default:
		if dir {
			werr = c.directory(deps)
		} else {
			werr = c.file(deps)
		}
	}
	if werr != nil {
		return fail(deps, werr)
	}
	return nil
}

// converter returns the string converter for the requested format.
func (c *ConvertCmd) converter(deps *Dependencies) bindery.Converter {
	name := c.To
	if name == "markdown" && c.Engine == "commonmark" {
		name = "commonmark"
	}
	return deps.Converters[name]
}

// source reads the document at path, applying main-content extraction when
// requested. A document without recognizable main content is used whole.
func (c *ConvertCmd) source(deps *Dependencies, path string) (string, error) {
	src, err := fs.ReadDocument(path)
	if err != nil {
		return "", err
	}
	if c.Extract == "" || c.Extract == "none" {
		return src, nil
	}
	ex, ok := deps.Extractors[c.Extract]
	if !ok {
		return "", bindery.Errorf(bindery.EINVALID, "unknown extractor %q", c.Extract)
	}
	res, err := ex.Extract(src)
	if bindery.ErrorCode(err) == bindery.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "Warning: no main content found in %s, converting the whole document\n", path)
		return src, nil
	}
	if err != nil {
		return "", err
	}
	return res.ContentHTML, nil
}

// static writes the document with its local stylesheets and scripts inlined.
func (c *ConvertCmd) static(deps *Dependencies) error {
	src, err := fs.ReadDocument(c.Path)
	if err != nil {
		return err
	}
	out, err := deps.Inliner.Inline(src, filepath.Dir(c.Path))
	if err != nil {
		return err
	}
	return c.output(deps, func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	})
}

func (c *ConvertCmd) file(deps *Dependencies) error {
	src, err := c.source(deps, c.Path)
	if err != nil {
		return err
	}
	out, err := c.converter(deps).Convert(src)
	if err != nil {
		return err
	}
	return c.output(deps, func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	})
}

// directory exports every document below c.Path, joined into one artifact
// bundle or split into one file each.
func (c *ConvertCmd) directory(deps *Dependencies) error {
	paths, err := fs.FindDocuments(c.Path)
	if err != nil {
		return err
	}

	conv := c.converter(deps)
	artifacts := make([]*bindery.Artifact, 0, len(paths))
	for _, path := range paths {
		src, err := c.source(deps, path)
		if err != nil {
			return err
		}
		out, err := conv.Convert(src)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		name := filepath.Base(path)
		if c.Split {
			rel, err := filepath.Rel(c.Path, path)
			if err != nil {
				return err
			}
			name = strings.TrimSuffix(rel, filepath.Ext(rel)) + formatExt[c.To]
		}
		artifacts = append(artifacts, &bindery.Artifact{Name: name, Content: out})
	}

	if c.Split {
		for _, a := range artifacts {
			path, err := deps.Artifacts.WriteArtifact(a)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "✓ Created %s: %s\n", formatLabel[c.To], path)
		}
		return nil
	}

	bundle := bindery.FormatArtifacts(artifacts)
	return c.output(deps, func(w io.Writer) error {
		_, err := io.WriteString(w, bundle)
		return err
	})
}

// json writes the document summary, or the collection metadata and file list
// for a directory.
func (c *ConvertCmd) json(deps *Dependencies, dir bool) error {
	var v any
	if dir {
		coll, err := fs.LoadCollection(c.Path)
		if err != nil {
			return err
		}
		v = coll
	} else {
		src, err := fs.ReadDocument(c.Path)
		if err != nil {
			return err
		}
		sum, err := deps.Summarizer.Summarize(filepath.Base(c.Path), src)
		if err != nil {
			return err
		}
		v = sum
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return c.output(deps, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// bibliography renders the reference collection next to the input. A missing
// collection is a warning and yields an empty bibliography.
func (c *ConvertCmd) bibliography(deps *Dependencies) error {
	refs, err := deps.References.LoadReferences(c.Path)
	if bindery.ErrorCode(err) == bindery.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "Warning: %s\n", bindery.ErrorMessage(err))
	} else if err != nil {
		return err
	}

	out := bindery.FormatBibliography(refs)
	return c.output(deps, func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	})
}

func (c *ConvertCmd) docx(deps *Dependencies) error {
	src, err := c.source(deps, c.Path)
	if err != nil {
		return err
	}

	r := render.NewRichRenderer(filepath.Dir(c.Path))
	r.ImageWidth = deps.Config.ImageWidth
	rich := r.Render(markup.Parse(src))
	for _, w := range rich.Warnings {
		fmt.Fprintf(deps.Stderr, "Warning: %s\n", w.Message)
	}

	return c.output(deps, func(w io.Writer) error {
		return deps.RichWriter.WriteRich(w, rich)
	})
}

// outputPath returns the destination derived from the input path when -o is
// not given.
func (c *ConvertCmd) outputPath() string {
	if c.Output != "" {
		return c.Output
	}
	base := strings.TrimSuffix(filepath.Clean(c.Path), string(filepath.Separator))
	if info, err := os.Stat(base); err == nil && !info.IsDir() {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + formatExt[c.To]
}

// output writes to stdout for "-" and otherwise to the output file, removing
// it again when write fails.
func (c *ConvertCmd) output(deps *Dependencies, write func(io.Writer) error) error {
	path := c.outputPath()
	if path == "-" {
		return write(deps.Stdout)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "✓ Created %s: %s\n", formatLabel[c.To], path)
	return nil
}
