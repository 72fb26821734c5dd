package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/bindery/fs"
)

// Run executes the preview command. HTML input is converted to Markdown
// first; Markdown input is shown as is.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	src, err := fs.ReadDocument(c.Path)
	if err != nil {
		return fail(deps, err)
	}

	md := src
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".md", ".markdown":
	default:
		if md, err = deps.Converters["markdown"].Convert(src); err != nil {
			return fail(deps, err)
		}
	}

	out, err := deps.Previewer.Preview(md)
	if err != nil {
		return fail(deps, err)
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}
