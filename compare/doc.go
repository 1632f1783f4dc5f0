// Package compare orchestrates one comparison run: it builds the Problem,
// runs the greedy repair solver and the external optimizer on it, validates
// both selections with the same validate.Validate call and computes total
// cost, fill rate and violation counts per side.
//
// Both sides always go through identical validation.
//
// Collaborator failure (an error, or no optimizer at all) never aborts a run:
// the external side then carries exactly validate.SolverFailure(), a NaN
// total cost and a zero fill rate. No retry or timeout is applied to the
// optimizer call here; ctx is passed through untouched.
//
// RunBatch executes independent runs concurrently. Every run builds its own
// Problem, so nothing is shared between goroutines except the optional
// metrics registry, whose collectors are concurrency-safe.
package compare
