// Package batch analyses many spectrum files in parallel.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-lines/internal/logger"
	"github.com/cwbudde/algo-lines/lines"
	"github.com/cwbudde/algo-lines/reference"
	"github.com/cwbudde/algo-lines/spectrum/specio"
)

// Func analyses the spectrum stored at path.
type Func func(path string) (lines.Verdict, error)

// Result is the outcome for one input path. Err is set when the file could
// not be read or analysed; Verdict is then the zero value.
type Result struct {
	Path    string
	Verdict lines.Verdict
	Err     error
}

// FileAnalyzer returns a Func that reads a spectrum file and runs d against
// table. d and table are shared read-only between workers.
func FileAnalyzer(d *lines.Detector, table reference.Table) Func {
	return func(path string) (lines.Verdict, error) {
		s, err := specio.ReadFile(path)
		if err != nil {
			return lines.Verdict{}, err
		}
		return d.Analyze(s, table)
	}
}

// Run applies analyze to every path using at most jobs workers (GOMAXPROCS
// when jobs <= 0). Results are returned in input order. A failing file is
// recorded in its Result and does not stop the others; only cancellation of
// ctx aborts the batch, in which case ctx's error is returned.
func Run(ctx context.Context, paths []string, analyze Func, jobs int) ([]Result, error) {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			v, err := analyze(path)
			if err != nil {
				logger.Warnf("%s: %v", path, err)
			}
			results[i] = Result{Path: path, Verdict: v, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
