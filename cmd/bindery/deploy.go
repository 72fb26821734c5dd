package main

import (
	"fmt"
	"path/filepath"
)

// Run executes the deploy command.
func (c *DeployCmd) Run(deps *Dependencies) error {
	out := c.Output
	if out == "" {
		src := filepath.Clean(c.Path)
		out = filepath.Join(filepath.Dir(src), filepath.Base(src)+"_deploy")
	}

	pages, err := deps.Deployer.Deploy(deps.Ctx, c.Path, out)
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "✓ Created deploy bundle: %s (%d pages)\n", out, len(pages))
	if c.Sitemap {
		fmt.Fprintln(deps.Stdout, "  Generated sitemap.xml")
	}
	return nil
}
