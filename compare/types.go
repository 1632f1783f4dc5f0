package compare

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/routeflow/metrics"
	"github.com/katalvlaran/routeflow/network"
	"github.com/katalvlaran/routeflow/repair"
	"github.com/katalvlaran/routeflow/validate"
)

// Side labels used in reports and metrics.
const (
	LabelClassical = "classical"
	LabelExternal  = "external"
)

// Input is the raw, already-validated material for one run.
type Input struct {
	Nodes  []network.Node
	Routes []network.Route
}

// Side is the evaluated outcome of one solver.
type Side struct {
	Label      string
	Selection  network.Selection
	Violations []validate.Violation

	// TotalCost is the validator-side cost; NaN when the solver failed.
	TotalCost float64
	// FillRate is the validator-side fill rate; 0 when the solver failed.
	FillRate float64

	// DeclaredCost and DeclaredFillRate are what the solver itself reported.
	DeclaredCost     float64
	DeclaredFillRate float64

	// ForeignEdges counts selected routes absent from Problem.Edges.
	ForeignEdges int

	Elapsed time.Duration

	// Passes is the repair pass count (classical side only).
	Passes int

	// Err is the collaborator error, if any.
	Err error
}

// Failed reports whether the solver behind s returned an error.
func (s Side) Failed() bool {
	return s.Err != nil
}

// Comparison is the full result of one run.
type Comparison struct {
	RunID     string
	Problem   *network.Problem
	Classical Side
	External  Side
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the run logger.
func WithLogger(log logr.Logger) Option {
	return func(h *Harness) { h.log = log }
}

// WithMetrics records every run into reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(h *Harness) { h.metrics = reg }
}

// WithRepairOptions overrides the greedy solver options. The logger inside
// opts is replaced by the harness logger when left empty.
func WithRepairOptions(opts repair.Options) Option {
	return func(h *Harness) { h.repair = opts }
}

// WithClock replaces time.Now for elapsed-time measurement.
func WithClock(now func() time.Time) Option {
	return func(h *Harness) {
		if now != nil {
			h.now = now
		}
	}
}

// WithRunID replaces the random run identifier generator.
func WithRunID(next func() string) Option {
	return func(h *Harness) {
		if next != nil {
			h.newID = next
		}
	}
}
