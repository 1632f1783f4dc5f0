// Package network defines the supply-chain graph model used by the route
// activation solvers: typed nodes (source, intermediate, sink), directed
// weighted routes, the immutable Problem aggregate and the Selection of
// activated routes.
//
// A Problem is assembled once per run from already-validated node and route
// collections by NewProblem and is read-only afterwards. Solvers and the
// validator receive it by pointer and must never mutate it.
//
// Query helpers:
//
//	Incoming(edges, id) // edges with To == id, input order kept
//	Outgoing(edges, id) // edges with From == id, input order kept
//
// Both are plain O(|edges|) filters. No index is built: expected graphs hold
// tens to low hundreds of nodes and routes, and the repair loop re-reads the
// current selection on every pass anyway.
//
// Route identity:
//
//	Routes are identified by their (From,To) pair (RouteKey). Raw input may
//	carry duplicate pairs with different costs; a Selection never does. Use
//	Dedup to collapse a route list, first occurrence wins.
//
// Example:
//
//	p := network.NewProblem(nodes, routes)
//	for _, sink := range p.Sinks {
//	    in := network.Incoming(p.Edges, sink)
//	    _ = in
//	}
package network
