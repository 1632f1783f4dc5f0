// Package optimizer defines the boundary to external route-activation
// optimizers and ships two concrete collaborators.
//
// The harness treats every optimizer as a black box: it hands over the same
// read-only *network.Problem given to the greedy solver, an opaque Backend
// handle and a shot count, and receives either a Result or an error. It never
// inspects how the selection was produced.
//
//	type Optimizer interface {
//	    Solve(ctx context.Context, backend Backend, p *network.Problem, shots int) (Result, error)
//	}
//
// Collaborators:
//
//	MaxFlow  - node-split max-flow (package flow); activates every route that
//	           carries flow. Backend: FlowBackend or nil.
//	Sampler  - shot-based stochastic search; each shot draws an activation
//	           vector and the best scoring shot wins. Backend: SamplerBackend
//	           or nil.
//
// Func adapts a plain function to the interface, which is convenient for
// wiring remote backends and for tests.
package optimizer
