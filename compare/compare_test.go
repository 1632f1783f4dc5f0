package compare_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/routeflow/compare"
	"github.com/katalvlaran/routeflow/metrics"
	"github.com/katalvlaran/routeflow/network"
	"github.com/katalvlaran/routeflow/optimizer"
	"github.com/katalvlaran/routeflow/validate"
)

func i64(v int64) *int64 { return &v }

// hubInput: S feeds M, M feeds C, plus a costly direct S->C.
func hubInput() compare.Input {
	return compare.Input{
		Nodes: []network.Node{
			{ID: "S", Role: network.Source, Capacity: 10, Supply: i64(5)},
			{ID: "M", Role: network.Intermediate, Capacity: 10},
			{ID: "C", Role: network.Sink, Capacity: 10, Demand: i64(5)},
		},
		Routes: []network.Route{
			{From: "S", To: "M", Cost: 1},
			{From: "M", To: "C", Cost: 1},
			{From: "S", To: "C", Cost: 5},
		},
	}
}

// fixed returns an optimizer that always answers with sel.
func fixed(sel network.Selection) optimizer.Optimizer {
	return optimizer.Func(func(_ context.Context, _ optimizer.Backend, _ *network.Problem, _ int) (optimizer.Result, error) {
		return optimizer.Result{SelectedEdges: sel, TotalCost: 42, FillRate: 1}, nil
	})
}

// stepClock advances by one second on every read.
func stepClock() func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

type HarnessSuite struct {
	suite.Suite
	ctx context.Context
	reg *metrics.Registry
	h   *compare.Harness
}

func (s *HarnessSuite) SetupTest() {
	s.ctx = context.Background()
	s.reg = metrics.NewRegistry()
	s.h = compare.New(
		compare.WithMetrics(s.reg),
		compare.WithClock(stepClock()),
		compare.WithRunID(func() string { return "run-1" }),
	)
}

func (s *HarnessSuite) TestClassicalSide() {
	cmp := s.h.Run(s.ctx, hubInput(), fixed(nil), nil, 1)
	c := cmp.Classical

	require.Equal(s.T(), "run-1", cmp.RunID)
	require.Equal(s.T(), compare.LabelClassical, c.Label)
	require.Equal(s.T(), network.Selection{
		{From: "M", To: "C", Cost: 1},
		{From: "S", To: "M", Cost: 1},
	}, c.Selection)
	require.Empty(s.T(), c.Violations)
	require.Equal(s.T(), 2.0, c.TotalCost)
	require.Equal(s.T(), 1.0, c.FillRate)
	require.Equal(s.T(), c.TotalCost, c.DeclaredCost)
	require.Equal(s.T(), 2, c.Passes)
	require.Equal(s.T(), time.Second, c.Elapsed)
	require.NoError(s.T(), c.Err)
}

// TestSameValidatorBothSides: identical selections give identical findings.
func (s *HarnessSuite) TestSameValidatorBothSides() {
	sel := network.Selection{{From: "S", To: "M", Cost: 1}}
	cmp := s.h.Run(s.ctx, hubInput(), fixed(sel), nil, 1)
	e := cmp.External

	require.Equal(s.T(), validate.Validate(cmp.Problem, sel), e.Violations)
	require.Equal(s.T(), []validate.Violation{
		{Kind: validate.SinkUnserved, Node: "C", Details: "no incoming selected routes"},
		{Kind: validate.FlowConservation, Node: "M", Details: "in=1 out=0"},
	}, e.Violations)
	require.Equal(s.T(), 0.0, e.FillRate)
	require.Equal(s.T(), 1.0, e.TotalCost)
	require.Equal(s.T(), 42.0, e.DeclaredCost, "declared values are kept apart")
	require.Equal(s.T(), 1.0, e.DeclaredFillRate)
}

func (s *HarnessSuite) TestCollaboratorFailure() {
	boom := errors.New("backend offline")
	fail := optimizer.Func(func(context.Context, optimizer.Backend, *network.Problem, int) (optimizer.Result, error) {
		return optimizer.Result{}, boom
	})
	cmp := s.h.Run(s.ctx, hubInput(), fail, nil, 100)
	e := cmp.External

	require.ErrorIs(s.T(), e.Err, boom)
	require.True(s.T(), e.Failed())
	require.Equal(s.T(), []validate.Violation{
		{Kind: validate.SolverError, Node: "", Details: "quantum solver failed"},
	}, e.Violations)
	require.True(s.T(), math.IsNaN(e.TotalCost))
	require.Zero(s.T(), e.FillRate)
	require.Empty(s.T(), e.Selection)

	// The classical side is unaffected.
	require.Empty(s.T(), cmp.Classical.Violations)

	require.Equal(s.T(), 1.0, testutil.ToFloat64(s.reg.CollaboratorFailureTotal))
	require.Equal(s.T(), 1.0, testutil.ToFloat64(s.reg.ViolationsTotal.WithLabelValues("external", "solver_error")))
}

func (s *HarnessSuite) TestNilOptimizer() {
	cmp := s.h.Run(s.ctx, hubInput(), nil, nil, 0)
	require.ErrorIs(s.T(), cmp.External.Err, compare.ErrNoOptimizer)
	require.Equal(s.T(), validate.SolverFailure(), cmp.External.Violations)
	require.True(s.T(), math.IsNaN(cmp.External.TotalCost))
}

func (s *HarnessSuite) TestForeignEdgesCounted() {
	sel := network.Selection{
		{From: "S", To: "C", Cost: 5},
		{From: "S", To: "C", Cost: 0.1},
	}
	cmp := s.h.Run(s.ctx, hubInput(), fixed(sel), nil, 1)
	require.Equal(s.T(), 1, cmp.External.ForeignEdges)
	require.Empty(s.T(), cmp.External.Violations)
}

func (s *HarnessSuite) TestUnreachableSink() {
	in := hubInput()
	in.Nodes = append(in.Nodes, network.Node{ID: "D", Role: network.Sink, Capacity: 1, Demand: i64(1)})
	cmp := s.h.Run(s.ctx, in, fixed(nil), nil, 1)

	require.Equal(s.T(), 0.5, cmp.Classical.FillRate)
	require.Equal(s.T(), []validate.Violation{
		{Kind: validate.SinkUnserved, Node: "D", Details: "no incoming selected routes"},
	}, cmp.Classical.Violations)
	require.Equal(s.T(), 1.0, testutil.ToFloat64(s.reg.ViolationsTotal.WithLabelValues("classical", "sink_unserved")))
}

func (s *HarnessSuite) TestMetricsRecorded() {
	s.h.Run(s.ctx, hubInput(), fixed(nil), nil, 1)
	s.h.Run(s.ctx, hubInput(), fixed(nil), nil, 1)
	require.Equal(s.T(), 2.0, testutil.ToFloat64(s.reg.RunsTotal))
	require.Zero(s.T(), testutil.ToFloat64(s.reg.CollaboratorFailureTotal))
	require.Equal(s.T(), 2, testutil.CollectAndCount(s.reg.SolveDuration))
}

func TestHarnessSuite(t *testing.T) {
	suite.Run(t, new(HarnessSuite))
}

func TestRunIDsAreUnique(t *testing.T) {
	h := compare.New()
	a := h.Run(context.Background(), hubInput(), nil, nil, 0)
	b := h.Run(context.Background(), hubInput(), nil, nil, 0)
	require.NotEmpty(t, a.RunID)
	require.NotEqual(t, a.RunID, b.RunID)
}

func TestRunBatchKeepsOrder(t *testing.T) {
	var inputs []compare.Input
	for i := 0; i < 8; i++ {
		sink := fmt.Sprintf("C%d", i)
		inputs = append(inputs, compare.Input{
			Nodes: []network.Node{
				{ID: "S", Role: network.Source, Capacity: 1, Supply: i64(1)},
				{ID: sink, Role: network.Sink, Capacity: 1, Demand: i64(1)},
			},
			Routes: []network.Route{{From: "S", To: sink, Cost: float64(i)}},
		})
	}

	var calls atomic.Int32
	opt := optimizer.Func(func(_ context.Context, _ optimizer.Backend, p *network.Problem, _ int) (optimizer.Result, error) {
		calls.Add(1)
		return optimizer.Result{SelectedEdges: network.Selection(p.Edges)}, nil
	})

	out, err := compare.New().RunBatch(context.Background(), inputs, opt, nil, 1, 3)
	require.NoError(t, err)
	require.Len(t, out, len(inputs))
	require.EqualValues(t, len(inputs), calls.Load())
	for i, cmp := range out {
		require.Equal(t, []string{fmt.Sprintf("C%d", i)}, cmp.Problem.Sinks)
		require.Equal(t, float64(i), cmp.Classical.TotalCost)
		require.Equal(t, cmp.Classical.Selection, cmp.External.Selection)
	}
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := compare.New().RunBatch(ctx, []compare.Input{hubInput(), hubInput()}, nil, nil, 0, 1)
	require.ErrorIs(t, err, context.Canceled)
}
