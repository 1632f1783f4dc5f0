package compare

import (
	"context"
	"math"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/katalvlaran/routeflow/metrics"
	"github.com/katalvlaran/routeflow/network"
	"github.com/katalvlaran/routeflow/optimizer"
	"github.com/katalvlaran/routeflow/repair"
	"github.com/katalvlaran/routeflow/validate"
)

// Harness runs comparisons. A Harness holds no per-run state and may be
// shared across goroutines.
type Harness struct {
	log     logr.Logger
	metrics *metrics.Registry
	repair  repair.Options
	now     func() time.Time
	newID   func() string
}

// New returns a Harness with a discarding logger, default repair options,
// no metrics and time.Now as clock.
func New(opts ...Option) *Harness {
	h := &Harness{
		log:    logr.Discard(),
		repair: repair.DefaultOptions(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log.GetSink() == nil {
		h.log = logr.Discard()
	}
	if h.repair.Logger.GetSink() == nil {
		h.repair.Logger = h.log
	}

	return h
}

// Run executes one comparison. It never fails: solver problems surface as
// violations on the corresponding side.
func (h *Harness) Run(ctx context.Context, in Input, opt optimizer.Optimizer, backend optimizer.Backend, shots int) Comparison {
	runID := h.newID()
	log := h.log.WithValues("run", runID)

	p := network.NewProblem(in.Nodes, in.Routes)
	cmp := Comparison{RunID: runID, Problem: p}
	log.Info("problem built",
		"sources", len(p.Sources), "intermediates", len(p.IntermediateNodes),
		"sinks", len(p.Sinks), "routes", len(p.Edges))

	cmp.Classical = h.runClassical(p)
	cmp.External = h.runExternal(ctx, log, p, opt, backend, shots)

	for _, side := range []Side{cmp.Classical, cmp.External} {
		log.Info("side evaluated", "side", side.Label,
			"cost", side.TotalCost, "fillRate", side.FillRate,
			"violations", len(side.Violations), "elapsed", side.Elapsed)
	}
	h.record(cmp)

	return cmp
}

func (h *Harness) runClassical(p *network.Problem) Side {
	start := h.now()
	res := repair.Solve(p, h.repair)
	elapsed := h.now().Sub(start)

	side := evaluate(LabelClassical, p, res.Selection)
	side.DeclaredCost = side.TotalCost
	side.DeclaredFillRate = side.FillRate
	side.Passes = res.Passes
	side.Elapsed = elapsed

	return side
}

func (h *Harness) runExternal(
	ctx context.Context,
	log logr.Logger,
	p *network.Problem,
	opt optimizer.Optimizer,
	backend optimizer.Backend,
	shots int,
) Side {
	if opt == nil {
		log.Info("no external optimizer configured")
		return failed(ErrNoOptimizer, 0)
	}

	start := h.now()
	res, err := opt.Solve(ctx, backend, p, shots)
	elapsed := h.now().Sub(start)
	if err != nil {
		log.Error(err, "external optimizer failed", "shots", shots)
		return failed(err, elapsed)
	}

	side := evaluate(LabelExternal, p, res.SelectedEdges)
	side.DeclaredCost = res.TotalCost
	side.DeclaredFillRate = res.FillRate
	side.Elapsed = elapsed
	if side.ForeignEdges > 0 {
		log.Info("external selection contains routes outside the problem", "count", side.ForeignEdges)
	}

	return side
}

// evaluate applies the shared validator and metrics to a selection.
func evaluate(label string, p *network.Problem, sel network.Selection) Side {
	side := Side{
		Label:      label,
		Selection:  sel,
		Violations: validate.Validate(p, sel),
		TotalCost:  validate.TotalCost(sel),
		FillRate:   validate.FillRate(p, sel),
	}
	for _, e := range sel {
		if !p.HasEdge(e) {
			side.ForeignEdges++
		}
	}

	return side
}

// failed is the uniform shape of a side whose solver did not deliver.
func failed(err error, elapsed time.Duration) Side {
	return Side{
		Label:        LabelExternal,
		Violations:   validate.SolverFailure(),
		TotalCost:    math.NaN(),
		FillRate:     0,
		DeclaredCost: math.NaN(),
		Elapsed:      elapsed,
		Err:          err,
	}
}

func (h *Harness) record(cmp Comparison) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordRun()
	h.metrics.RecordPasses(cmp.Classical.Passes)
	if cmp.External.Failed() {
		h.metrics.RecordCollaboratorFailure()
	}
	for _, side := range []Side{cmp.Classical, cmp.External} {
		byKind := make(map[string]int)
		for kind, n := range validate.CountByKind(side.Violations) {
			byKind[kind.String()] = n
		}
		h.metrics.RecordSide(side.Label, side.Elapsed, side.FillRate, byKind)
	}
}
