package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fwojciec/bindery"
)

var historyStatus = map[string]bindery.Status{
	"passed":   bindery.StatusPassed,
	"warnings": bindery.StatusPassedWithWarnings,
	"failed":   bindery.StatusFailed,
}

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		r, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
		if err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", r.Path, r.CheckedAt.Local().Format(time.DateTime))
		if err := r.WriteText(deps.Stdout); err != nil {
			return fail(deps, err)
		}
		return nil
	}

	filter := bindery.ReportFilter{Limit: c.Limit}
	if c.Path != "" {
		path := c.Path
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		filter.Path = &path
	}
	if status, ok := historyStatus[c.Status]; ok {
		filter.Status = &status
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'bindery validate --record' to store one.")
		return nil
	}

	for _, r := range reports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-20s  %d errors, %d warnings  %s\n",
			r.CheckedAt.Local().Format(time.DateTime), r.ID, r.Status(),
			len(r.Errors), len(r.Warnings), r.Path)
	}
	return nil
}
