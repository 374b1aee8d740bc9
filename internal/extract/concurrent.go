package extract

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type concurrent struct {
	inner   Extractor
	workers int
}

// Concurrent runs inner over contiguous chunks of the input on up to workers
// goroutines. Results keep input order. workers <= 1 returns inner unchanged.
func Concurrent(inner Extractor, workers int) Extractor {
	if workers <= 1 {
		return inner
	}
	return &concurrent{inner: inner, workers: workers}
}

func (c *concurrent) Name() string { return c.inner.Name() }

func (c *concurrent) Extract(ctx context.Context, paths []string) ([]Item, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	chunk := (len(paths) + c.workers - 1) / c.workers
	results := make([][]Item, (len(paths)+chunk-1)/chunk)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range results {
		start := i * chunk
		end := min(start+chunk, len(paths))
		g.Go(func() error {
			items, err := c.inner.Extract(gctx, paths[start:end])
			if err != nil {
				return err
			}
			if len(items) != end-start {
				return fmt.Errorf("%s extractor returned %d items for %d paths", c.inner.Name(), len(items), end-start)
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(paths))
	for _, items := range results {
		out = append(out, items...)
	}
	return out, nil
}
