package workers

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one item, at the same index as its input.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// Process runs fn over items with at most limit calls in flight. Results
// keep input order and a failing item does not stop the others. Items not
// started before ctx is done report the context error.
func Process[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) []Result[R] {
	startTime := time.Now()
	if limit <= 0 {
		limit = 1
	}

	log.Printf("Starting to process %d items with max concurrency %d", len(items), limit)

	results := make([]Result[R], len(items))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i].Index = i
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			v, err := fn(ctx, item)
			if err != nil {
				log.Printf("Error processing item %d: %v", i, err)
			}
			results[i].Value = v
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Printf("Processing completed in %v, %d/%d items failed", time.Since(startTime), failed, len(items))

	return results
}
