// Package flow implements integral maximum-flow algorithms on a small,
// self-contained capacity Network keyed by string vertex IDs.
//
// It backs the capacity-aware route activation collaborator in package
// optimizer: supply-chain nodes are split into in/out vertices carrying the
// node capacity, routes become arcs, and every route that carries positive
// flow in the result is activated.
//
// The algorithms offered are:
//
//   - Ford–Fulkerson
//
//   - Method: depth-first search for any augmenting path.
//
//   - Time:   O(E · F), where F is the max-flow value.
//
//   - Edmonds–Karp
//
//   - Method: breadth-first search for shortest augmenting paths.
//
//   - Time:   O(V · E²).
//
//   - Dinic
//
//   - Method: level graph + blocking flow via DFS.
//
//   - Time:   O(V² · E) in general, near O(E · √V) on unit networks.
//
// All three share one signature:
//
//	func Dinic(ctx context.Context, n *Network, source, sink string, opts Options) (Result, error)
//
// and Run dispatches on an Algorithm value.
//
// # Network
//
//	– Arcs are directed; parallel arcs are aggregated on insertion.
//	– Self-loops are ignored (they never lie on an augmenting path).
//	– Negative capacity is rejected with EdgeError.
//	– Neighbor iteration is sorted, so results are deterministic.
//
// # Result
//
// Result.Value is the max-flow value; Result.Flow holds the net positive
// flow per original arc. Antiparallel arcs u→v and v→u are netted, so at
// most one of them carries flow.
//
// # Errors
//
//	ErrSourceNotFound - source vertex missing.
//	ErrSinkNotFound   - sink vertex missing.
//	ErrSameEndpoints  - source equals sink.
//	EdgeError         - negative capacity passed to AddArc.
//	context.Canceled / context.DeadlineExceeded - ctx done mid-run.
package flow
