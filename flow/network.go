package flow

import "sort"

// Network is a directed capacity network. It is not safe for concurrent
// mutation; algorithms never mutate it and work on a private residual copy.
type Network struct {
	order []string
	seen  map[string]struct{}
	caps  map[string]map[string]int64
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		seen: make(map[string]struct{}),
		caps: make(map[string]map[string]int64),
	}
}

// AddVertex registers id. Adding an existing vertex is a no-op.
func (n *Network) AddVertex(id string) {
	if _, ok := n.seen[id]; ok {
		return
	}
	n.seen[id] = struct{}{}
	n.order = append(n.order, id)
	n.caps[id] = make(map[string]int64)
}

// HasVertex reports whether id is registered.
func (n *Network) HasVertex(id string) bool {
	_, ok := n.seen[id]

	return ok
}

// AddArc adds capacity c on from→to, creating both endpoints if needed.
// Parallel arcs are summed; self-loops are dropped after endpoint creation.
func (n *Network) AddArc(from, to string, c int64) error {
	if c < 0 {
		return EdgeError{From: from, To: to, Cap: c}
	}
	n.AddVertex(from)
	n.AddVertex(to)
	if from == to {
		return nil
	}
	n.caps[from][to] += c

	return nil
}

// Capacity returns the aggregated capacity on from→to.
func (n *Network) Capacity(from, to string) int64 {
	return n.caps[from][to]
}

// Vertices returns vertex IDs in insertion order.
func (n *Network) Vertices() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)

	return out
}

// VertexCount returns the number of vertices.
func (n *Network) VertexCount() int {
	return len(n.order)
}

// residual is the mutable working state shared by the algorithms.
// cap[u][v] is remaining capacity; adj[u] lists every v with an arc in
// either direction, sorted, so reverse arcs are traversable.
type residual struct {
	cap map[string]map[string]int64
	adj map[string][]string
}

func (n *Network) residual() *residual {
	r := &residual{
		cap: make(map[string]map[string]int64, len(n.order)),
		adj: make(map[string][]string, len(n.order)),
	}
	for _, u := range n.order {
		r.cap[u] = make(map[string]int64, len(n.caps[u]))
	}
	nbr := make(map[string]map[string]struct{}, len(n.order))
	for _, u := range n.order {
		nbr[u] = make(map[string]struct{})
	}
	for u, inner := range n.caps {
		for v, c := range inner {
			r.cap[u][v] += c
			nbr[u][v] = struct{}{}
			nbr[v][u] = struct{}{}
		}
	}
	for u, set := range nbr {
		list := make([]string, 0, len(set))
		for v := range set {
			list = append(list, v)
		}
		sort.Strings(list)
		r.adj[u] = list
	}

	return r
}

// push moves delta units along u→v in the residual network.
func (r *residual) push(u, v string, delta int64) {
	r.cap[u][v] -= delta
	r.cap[v][u] += delta
}

// flows nets original capacities against the residual state and returns
// the positive flow on every original arc.
func (n *Network) flows(r *residual) map[Arc]int64 {
	out := make(map[Arc]int64)
	for u, inner := range n.caps {
		for v, c := range inner {
			if f := c - r.cap[u][v]; f > 0 {
				out[Arc{From: u, To: v}] = f
			}
		}
	}

	return out
}

// check validates the endpoints shared by every algorithm.
func (n *Network) check(source, sink string) error {
	if n == nil || !n.HasVertex(source) {
		return ErrSourceNotFound
	}
	if !n.HasVertex(sink) {
		return ErrSinkNotFound
	}
	if source == sink {
		return ErrSameEndpoints
	}

	return nil
}
