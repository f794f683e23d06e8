package waterbalance

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunBatch runs independent simulations concurrently. Results keep the order
// of reqs; the first failure cancels the rest and is returned wrapped with its
// index.
func RunBatch(ctx context.Context, sim *Simulator, reqs []Request) ([]*Result, error) {
	out := make([]*Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := sim.Run(req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
