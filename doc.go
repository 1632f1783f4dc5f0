// Package routeflow plans goods movement across a supply-chain graph
// (sources → intermediate hubs → sinks) by deciding, per candidate route,
// whether it is activated or not, and checks any such decision against the
// network's structural rules.
//
// 🚚 What is in the box?
//
//	network/       Node, Route, Problem, Selection and degree/cheapest queries
//	repair/        greedy seed-and-repair solver with a hard pass budget
//	validate/      sink coverage + flow conservation checks, cost and fill rate
//	optimizer/     external optimizer contract plus max-flow and sampling backends
//	flow/          Ford–Fulkerson, Edmonds–Karp and Dinic on string-keyed networks
//	compare/       runs both solvers on one Problem through the same validator
//	ingest/        node/route CSV parsing with row-level diagnostics
//	report/        selection, violation, metrics CSVs and a JSON summary
//	metrics/       Prometheus collectors for runs, passes and violations
//	config/        YAML/TOML/env configuration for the CLI
//	cmd/routeflow  the command-line entry point
//
// ✨ Guarantees
//
//   - Termination: the repair loop never runs more than 100 passes.
//   - No fabrication: every selected route comes from Problem.Edges.
//   - Honest reporting: unresolved gaps surface as violations, never as errors.
//   - Fair comparison: both sides are scored by one validate.Validate call.
//
// Quick picture:
//
//	P1 ──▶ H ──▶ C1
//	P2 ──▶ H ──▶ C2
//
// The greedy solver first gives C1 and C2 their cheapest incoming route,
// then keeps adding the cheapest incoming route to H until H has at least as
// many inbound as outbound routes, or nothing changes, or the budget is spent.
//
//	go install github.com/katalvlaran/routeflow/cmd/routeflow@latest
package routeflow
