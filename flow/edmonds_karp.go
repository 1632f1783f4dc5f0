package flow

import (
	"context"
	"math"
)

// EdmondsKarp computes the maximum flow from source→sink using BFS shortest
// augmenting paths.
//
// Steps:
//  1. Validate endpoints and normalize options.
//  2. Build the residual network (parallel arcs summed, reverse arcs at 0).
//  3. Repeat: BFS for the fewest-arc path with positive residual capacity,
//     push its bottleneck, until the sink is unreachable.
//  4. Net residual against original capacities into Result.Flow.
//
// Complexity: O(V · E²) time, O(V + E) memory.
func EdmondsKarp(ctx context.Context, n *Network, source, sink string, opts Options) (Result, error) {
	if err := n.check(source, sink); err != nil {
		return Result{}, err
	}
	opts.normalize()
	log := opts.Logger.WithName("edmonds-karp")

	r := n.residual()
	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		path, bottle := r.bfsPath(source, sink)
		if len(path) == 0 {
			break
		}
		for i := 0; i+1 < len(path); i++ {
			r.push(path[i], path[i+1], bottle)
		}
		res.Value += bottle
		res.Augmentations++
		log.V(2).Info("augmenting path", "path", path, "flow", bottle, "total", res.Value)
	}
	res.Flow = n.flows(r)

	return res, nil
}

// bfsPath returns the shortest source→sink path with positive residual
// capacity and its bottleneck, or nil when the sink is unreachable.
func (r *residual) bfsPath(source, sink string) ([]string, int64) {
	parent := map[string]string{}
	visited := map[string]bool{source: true}
	queue := []string{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range r.adj[u] {
			if visited[v] || r.cap[u][v] <= 0 {
				continue
			}
			visited[v] = true
			parent[v] = u
			if v == sink {
				return r.tracePath(parent, source, sink)
			}
			queue = append(queue, v)
		}
	}

	return nil, 0
}

// tracePath rebuilds the source→sink path from parent links and computes
// its bottleneck capacity.
func (r *residual) tracePath(parent map[string]string, source, sink string) ([]string, int64) {
	path := []string{sink}
	bottle := int64(math.MaxInt64)
	for cur := sink; cur != source; {
		p := parent[cur]
		if c := r.cap[p][cur]; c < bottle {
			bottle = c
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, bottle
}
