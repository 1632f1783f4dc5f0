package optimizer

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/routeflow/flow"
	"github.com/katalvlaran/routeflow/network"
	"github.com/katalvlaran/routeflow/validate"
)

const (
	superSource = "\x00source"
	superSink   = "\x00sink"
	inSuffix    = "\x00in"
	outSuffix   = "\x00out"
)

// FlowBackend selects the max-flow algorithm used by MaxFlow.
type FlowBackend struct {
	Algorithm flow.Algorithm
}

// MaxFlow activates routes by running max-flow on a node-split network:
//
//	⊤ ──supply──▶ src.in ──cap──▶ src.out ──∞──▶ hub.in ──cap──▶ hub.out ──∞──▶ …
//	… ──▶ sink.in ──cap──▶ sink.out ──demand──▶ ⊥
//
// Source inflow is bounded by Supply (Capacity when absent), sink outflow by
// Demand (Capacity when absent), and every node by its Capacity. Routes
// whose endpoints are unknown to the problem are skipped. Parallel routes
// share one arc; the cheapest of them is the one activated.
//
// The shot count is ignored: max-flow is deterministic.
type MaxFlow struct {
	Logger logr.Logger
}

// Solve implements Optimizer.
func (m MaxFlow) Solve(ctx context.Context, backend Backend, p *network.Problem, _ int) (Result, error) {
	if p == nil {
		return Result{}, ErrNilProblem
	}
	alg := flow.AlgDinic
	switch b := backend.(type) {
	case nil:
	case FlowBackend:
		alg = b.Algorithm
	case *FlowBackend:
		if b != nil {
			alg = b.Algorithm
		}
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnsupportedBackend, backend)
	}

	n, routeFor, err := buildFlowNetwork(p)
	if err != nil {
		return Result{}, err
	}
	opts := flow.DefaultOptions()
	if m.Logger.GetSink() != nil {
		opts.Logger = m.Logger
	}
	res, err := flow.Run(ctx, alg, n, superSource, superSink, opts)
	if err != nil {
		return Result{}, fmt.Errorf("optimizer: max-flow: %w", err)
	}

	var sel []network.Route
	for _, e := range p.Edges {
		arc := flow.Arc{From: e.From + outSuffix, To: e.To + inSuffix}
		if res.Flow[arc] <= 0 {
			continue
		}
		if best := routeFor[arc]; best == e {
			sel = append(sel, e)
		}
	}
	out := network.Dedup(sel)

	return Result{
		SelectedEdges: out,
		TotalCost:     out.TotalCost(),
		FillRate:      validate.FillRate(p, out),
	}, nil
}

// buildFlowNetwork converts p into a node-split capacity network and returns
// the cheapest route backing each route arc.
func buildFlowNetwork(p *network.Problem) (*flow.Network, map[flow.Arc]network.Route, error) {
	n := flow.NewNetwork()
	n.AddVertex(superSource)
	n.AddVertex(superSink)

	var unbounded int64 = 1
	for _, c := range p.Capacities {
		unbounded += c
	}

	nodeArc := func(id string) error {
		return n.AddArc(id+inSuffix, id+outSuffix, p.Capacities[id])
	}
	for _, id := range p.Sources {
		if err := nodeArc(id); err != nil {
			return nil, nil, err
		}
		limit, ok := p.Supplies[id]
		if !ok {
			limit = p.Capacities[id]
		}
		if err := n.AddArc(superSource, id+inSuffix, limit); err != nil {
			return nil, nil, err
		}
	}
	for _, id := range p.IntermediateNodes {
		if err := nodeArc(id); err != nil {
			return nil, nil, err
		}
	}
	for _, id := range p.Sinks {
		if err := nodeArc(id); err != nil {
			return nil, nil, err
		}
		limit, ok := p.Demands[id]
		if !ok {
			limit = p.Capacities[id]
		}
		if err := n.AddArc(id+outSuffix, superSink, limit); err != nil {
			return nil, nil, err
		}
	}

	routeFor := make(map[flow.Arc]network.Route)
	for _, e := range p.Edges {
		if _, ok := p.Role(e.From); !ok {
			continue
		}
		if _, ok := p.Role(e.To); !ok {
			continue
		}
		arc := flow.Arc{From: e.From + outSuffix, To: e.To + inSuffix}
		if best, seen := routeFor[arc]; seen {
			if e.Cost < best.Cost {
				routeFor[arc] = e
			}
			continue
		}
		routeFor[arc] = e
		if err := n.AddArc(arc.From, arc.To, unbounded); err != nil {
			return nil, nil, err
		}
	}

	return n, routeFor, nil
}
