package compare

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/routeflow/optimizer"
)

// ErrNoOptimizer is reported on the external side when Run gets a nil
// optimizer.
var ErrNoOptimizer = errors.New("compare: no external optimizer")

// RunBatch runs one comparison per input with at most limit runs in flight
// (limit ≤ 0 means unbounded). Results keep input order. The only error is
// ctx cancellation; runs not yet started are then skipped.
func (h *Harness) RunBatch(
	ctx context.Context,
	inputs []Input,
	opt optimizer.Optimizer,
	backend optimizer.Backend,
	shots int,
	limit int,
) ([]Comparison, error) {
	out := make([]Comparison, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = h.Run(gctx, inputs[i], opt, backend, shots)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
