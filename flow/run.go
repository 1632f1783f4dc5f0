package flow

import (
	"context"
	"fmt"
)

// Run dispatches to the algorithm selected by alg.
func Run(ctx context.Context, alg Algorithm, n *Network, source, sink string, opts Options) (Result, error) {
	switch alg {
	case AlgDinic:
		return Dinic(ctx, n, source, sink, opts)
	case AlgEdmondsKarp:
		return EdmondsKarp(ctx, n, source, sink, opts)
	case AlgFordFulkerson:
		return FordFulkerson(ctx, n, source, sink, opts)
	}

	return Result{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
}
