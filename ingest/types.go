package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when a required header column is absent.
	ErrMissingColumn = errors.New("ingest: missing required column")
	// ErrEmptyInput is returned for a file without a header row.
	ErrEmptyInput = errors.New("ingest: empty input")
	// ErrDanglingRoute marks a route whose endpoint is not a known node.
	ErrDanglingRoute = errors.New("ingest: route references unknown node")
)

// RowError is a diagnostic for a single input row.
type RowError struct {
	// File is an optional label, set by LoadFiles.
	File string
	// Line is the 1-based line in the input, header included.
	Line int
	Msg  string
	Err  error
}

func (e *RowError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}

	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *RowError) Unwrap() error { return e.Err }

// nodeRecord mirrors one node row after type conversion.
type nodeRecord struct {
	ID       string `validate:"required"`
	Type     string `validate:"required,oneof=source intermediate sink"`
	Capacity int64  `validate:"gte=0"`
	Supply   *int64 `validate:"omitempty,gte=0"`
	Demand   *int64 `validate:"omitempty,gte=0"`
}

// routeRecord mirrors one route row after type conversion.
type routeRecord struct {
	From string `validate:"required"`
	To   string `validate:"required"`
	Cost float64
}

const (
	colNodeID   = "node_id"
	colNodeType = "node_type"
	colCapacity = "capacity"
	colSupply   = "supply"
	colDemand   = "demand"

	colFrom = "from"
	colTo   = "to"
	colCost = "cost"
)
