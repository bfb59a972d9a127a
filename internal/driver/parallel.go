package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GenerateAll generates every grammar file concurrently, at most jobs
// at a time (jobs <= 0 means one per CPU). Each file gets its own
// generator, so runs never share allocator or graph state. Results
// come back in input order; the first failure cancels the rest.
func GenerateAll(ctx context.Context, paths []string, jobs int, cache *DiskCache) ([]*Result, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]*Result, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Generate(path, cache)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
