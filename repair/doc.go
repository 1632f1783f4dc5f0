// Package repair implements the greedy repair solver: a cheap, deterministic
// baseline that activates routes without search.
//
// Algorithm:
//
//  1. Seed. For every sink (problem order) activate its cheapest incoming
//     route. Equal costs keep the route that appears first in Problem.Edges.
//     Sinks with no incoming route stay unserved; the validator reports them.
//
//  2. Repair. Run at most MaxPasses passes (hard ceiling MaxPassBudget=100).
//     In each pass, for every intermediate node (problem order) count the
//     selected routes entering (in) and leaving (out). When out > in, add the
//     cheapest incoming route of Problem.Edges whose (From,To) is not selected
//     yet. When none exists the gap stays open. A pass that adds nothing ends
//     the loop early.
//
//  3. Deduplicate the selection by (From,To).
//
// The solver only ever adds routes. It never removes, swaps or invents them,
// so it may stop in a locally infeasible state once the pass budget runs out.
// Such gaps are not errors: Solve always returns a Selection and the
// validator turns what is left into violations.
//
// Complexity: O(P · I · E) for P passes, I intermediate nodes and E routes.
//
// Termination: the repair phase is a counted loop; there is no code path that
// iterates past MaxPassBudget, including on cyclic route graphs.
package repair
