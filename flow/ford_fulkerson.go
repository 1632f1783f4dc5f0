package flow

import "context"

// FordFulkerson computes the maximum flow from source→sink with DFS
// augmenting paths (iterative, explicit stack).
//
// Complexity: O(E · F) where F is the max-flow value; memory O(V + E).
// Suitable for small integral networks; prefer Dinic otherwise.
func FordFulkerson(ctx context.Context, n *Network, source, sink string, opts Options) (Result, error) {
	if err := n.check(source, sink); err != nil {
		return Result{}, err
	}
	opts.normalize()
	log := opts.Logger.WithName("ford-fulkerson")

	r := n.residual()
	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		path, bottle := r.dfsPath(source, sink)
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

// dfsPath finds any source→sink path with positive residual capacity.
func (r *residual) dfsPath(source, sink string) ([]string, int64) {
	parent := map[string]string{}
	visited := map[string]bool{source: true}
	stack := []string{source}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if u == sink {
			return r.tracePath(parent, source, sink)
		}
		// Push in reverse so the smallest neighbor is explored first.
		nbrs := r.adj[u]
		for i := len(nbrs) - 1; i >= 0; i-- {
			v := nbrs[i]
			if visited[v] || r.cap[u][v] <= 0 {
				continue
			}
			visited[v] = true
			parent[v] = u
			stack = append(stack, v)
		}
	}

	return nil, 0
}
