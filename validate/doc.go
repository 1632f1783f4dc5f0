// Package validate checks a candidate route Selection against the structural
// invariants of a network.Problem and reports every breach as a Violation.
//
// Checks, in report order:
//
//	SinkUnserved      every sink needs ≥1 incoming selected route.
//	FlowConservation  every intermediate node needs selected in-degree equal
//	                  to selected out-degree ("in=<n> out=<m>").
//
// Both checks count activated routes; they do not weigh flow volume. A route
// is either used or not, so conservation means "as many selected routes
// enter as leave".
//
// The same Validate call must be applied to every solver whose output is
// compared, so that cost, fill rate and violation counts line up.
//
// A collaborator that fails outright is represented by SolverFailure: a
// single SolverError violation in place of the structural checks.
//
// Validate is pure: no mutation of its inputs, no randomness, no hidden
// state; calling it twice on the same pair yields identical results.
package validate
