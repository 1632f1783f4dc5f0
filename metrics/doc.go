// Package metrics exposes Prometheus collectors for comparison runs: run
// counts, per-side solve latency, violations by side and kind, greedy
// repair pass counts and collaborator failures.
//
// Each Registry owns its own *prometheus.Registry so that independent runs
// (and tests) never share global collector state. All collectors are safe
// for concurrent use, which batch mode relies on.
package metrics
