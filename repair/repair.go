package repair

import (
	"github.com/katalvlaran/routeflow/network"
)

// Solve runs seed, bounded repair and dedup over p and returns the selection
// together with loop diagnostics. It never fails and never mutates p.
func Solve(p *network.Problem, opts Options) Result {
	opts.normalize()
	log := opts.Logger.WithName("repair")

	var res Result
	if p == nil {
		res.Converged = true
		return res
	}

	// Stage 1: seed one cheapest route into every reachable sink.
	selected := make(map[network.RouteKey]struct{}, len(p.Sinks))
	var sel []network.Route
	for _, sink := range p.Sinks {
		best, ok := network.Cheapest(network.Incoming(p.Edges, sink))
		if !ok {
			log.V(1).Info("sink has no incoming route", "sink", sink)
			continue
		}
		if _, dup := selected[best.Key()]; dup {
			continue
		}
		selected[best.Key()] = struct{}{}
		sel = append(sel, best)
		res.Seeded++
	}

	// Stage 2: counted repair loop; never exceeds opts.MaxPasses.
	for pass := 1; pass <= opts.MaxPasses; pass++ {
		res.Passes = pass
		added := 0
		for _, node := range p.IntermediateNodes {
			in, out := network.Degree(sel, node)
			if out <= in {
				continue
			}
			cand, ok := cheapestUnselected(p.Edges, node, selected)
			if !ok {
				continue
			}
			selected[cand.Key()] = struct{}{}
			sel = append(sel, cand)
			added++
		}
		res.Added += added
		log.V(1).Info("repair pass", "pass", pass, "added", added, "selected", len(sel))
		if added == 0 {
			res.Converged = true
			break
		}
	}

	// Stage 3: dedup and collect nodes left with an open gap.
	res.Selection = network.Dedup(sel)
	for _, node := range p.IntermediateNodes {
		if in, out := network.Degree(res.Selection, node); out > in {
			res.Unresolved = append(res.Unresolved, node)
		}
	}
	log.Info("greedy repair finished",
		"passes", res.Passes, "converged", res.Converged,
		"selected", len(res.Selection), "unresolved", len(res.Unresolved))

	return res
}

// cheapestUnselected returns the cheapest route into node whose (From,To) is
// not in selected. Ties keep input order.
func cheapestUnselected(edges []network.Route, node string, selected map[network.RouteKey]struct{}) (network.Route, bool) {
	var (
		best  network.Route
		found bool
	)
	for _, e := range edges {
		if e.To != node {
			continue
		}
		if _, taken := selected[e.Key()]; taken {
			continue
		}
		if !found || e.Cost < best.Cost {
			best = e
			found = true
		}
	}

	return best, found
}
