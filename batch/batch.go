// Package batch validates many documents concurrently.
package batch

import (
	"context"

	"github.com/fwojciec/bindery"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Validator.Concurrency is not positive.
const DefaultConcurrency = 4

// Result is the outcome of validating one document.
type Result struct {
	Path   string
	Report *bindery.Report
	Err    error
}

// Validator runs a single-document validator over a list of paths.
type Validator struct {
	Validator   bindery.Validator
	Concurrency int
}

// ValidateAll validates every path and returns one result per path, in input
// order. A per-file failure is recorded on its result and does not stop the
// others. The returned error is non-nil only when ctx is cancelled.
func (v *Validator) ValidateAll(ctx context.Context, paths []string) ([]Result, error) {
	concurrency := v.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i].Path = path
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Report, results[i].Err = v.Validator.Validate(gctx, path)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed reports whether any result carries an error or a failing report.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil || (r.Report != nil && !r.Report.IsValid()) {
			return true
		}
	}
	return false
}
