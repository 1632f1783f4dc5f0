package flow

import (
	"context"
	"math"
)

// Dinic computes the maximum flow from source→sink using level graphs and
// blocking flows.
//
// Steps:
//  1. Validate endpoints, normalize options, build the residual network.
//  2. Repeat until the sink is unreachable:
//     a. BFS from source to assign levels over positive residual arcs.
//     b. DFS pushes along strictly increasing levels until blocked, or
//     until LevelRebuildInterval pushes have been made.
//  3. Net residual against original capacities into Result.Flow.
//
// Complexity: O(V² · E) time, O(V + E) memory.
func Dinic(ctx context.Context, n *Network, source, sink string, opts Options) (Result, error) {
	if err := n.check(source, sink); err != nil {
		return Result{}, err
	}
	opts.normalize()
	log := opts.Logger.WithName("dinic")

	r := n.residual()
	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		level := r.levels(source)
		if _, ok := level[sink]; !ok {
			break
		}

		iter := make(map[string]int, len(level))
		pushes := 0
		for {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			pushed := r.blockingPush(level, iter, source, sink, math.MaxInt64)
			if pushed == 0 {
				break
			}
			res.Value += pushed
			res.Augmentations++
			pushes++
			log.V(2).Info("pushed", "flow", pushed, "total", res.Value)
			if opts.LevelRebuildInterval > 0 && pushes%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}
	res.Flow = n.flows(r)

	return res, nil
}

// levels returns BFS distances from source over arcs with positive residual
// capacity. Unreachable vertices are absent.
func (r *residual) levels(source string) map[string]int {
	level := map[string]int{source: 0}
	queue := []string{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, v := range r.adj[u] {
			if _, seen := level[v]; seen || r.cap[u][v] <= 0 {
				continue
			}
			level[v] = level[u] + 1
			queue = append(queue, v)
		}
	}

	return level
}

// blockingPush sends up to available units from u toward sink along the
// level graph, advancing iter[u] past exhausted neighbors.
func (r *residual) blockingPush(level map[string]int, iter map[string]int, u, sink string, available int64) int64 {
	if u == sink {
		return available
	}
	nbrs := r.adj[u]
	for ; iter[u] < len(nbrs); iter[u]++ {
		v := nbrs[iter[u]]
		c := r.cap[u][v]
		lv, ok := level[v]
		if c <= 0 || !ok || lv != level[u]+1 {
			continue
		}
		send := available
		if c < send {
			send = c
		}
		if pushed := r.blockingPush(level, iter, v, sink, send); pushed > 0 {
			r.push(u, v, pushed)
			return pushed
		}
	}

	return 0
}
