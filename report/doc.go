// Package report persists the outcome of a comparison run.
//
// Selections become from,to,cost rows, violations become
// solution_label,kind,node,details rows and the per-side metrics summary is
// one row per side. WriteDir bundles all of them plus a summary.json into a
// directory. NaN costs (failed solvers) are written as "NaN" in CSV and as
// null in JSON.
package report
