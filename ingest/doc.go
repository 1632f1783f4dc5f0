// Package ingest turns node and route CSV files into network.Node and
// network.Route values.
//
// Files are header-driven: column order is free, names are matched
// case-insensitively after trimming. Node files need node_id, node_type and
// capacity; supply and demand are optional and may be blank. Route files
// need from, to and cost.
//
// Parsing is lenient per row and strict per file. A malformed row is skipped
// and reported as a *RowError; the rows that did parse are still returned
// next to the combined error, so callers can decide whether partial input is
// acceptable. Diagnostics flattens such an error into one line per row.
package ingest
