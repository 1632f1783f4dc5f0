package optimizer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/routeflow/flow"
	"github.com/katalvlaran/routeflow/network"
	"github.com/katalvlaran/routeflow/optimizer"
	"github.com/katalvlaran/routeflow/validate"
)

func i64(v int64) *int64 { return &v }

// supplyChain returns two plants, one hub and two stores.
//
//	P1 ─1─▶ H ─1─▶ C1
//	P2 ─3─▶ H ─2─▶ C2
//	P2 ─────9─────▶ C2
func supplyChain() *network.Problem {
	return network.NewProblem(
		[]network.Node{
			{ID: "P1", Role: network.Source, Capacity: 10, Supply: i64(5)},
			{ID: "P2", Role: network.Source, Capacity: 10, Supply: i64(5)},
			{ID: "H", Role: network.Intermediate, Capacity: 20},
			{ID: "C1", Role: network.Sink, Capacity: 10, Demand: i64(5)},
			{ID: "C2", Role: network.Sink, Capacity: 10, Demand: i64(5)},
		},
		[]network.Route{
			{From: "P1", To: "H", Cost: 1},
			{From: "P2", To: "H", Cost: 3},
			{From: "H", To: "C1", Cost: 1},
			{From: "H", To: "C2", Cost: 2},
			{From: "P2", To: "C2", Cost: 9},
			{From: "P1", To: "H", Cost: 0.5},
		},
	)
}

// MaxFlowSuite covers the flow-backed collaborator.
type MaxFlowSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *MaxFlowSuite) SetupTest() {
	s.ctx = context.Background()
}

// TestServesAllSinks: full demand fits, both stores are reached.
func (s *MaxFlowSuite) TestServesAllSinks() {
	p := supplyChain()
	for _, alg := range []flow.Algorithm{flow.AlgDinic, flow.AlgEdmondsKarp, flow.AlgFordFulkerson} {
		res, err := optimizer.MaxFlow{}.Solve(s.ctx, optimizer.FlowBackend{Algorithm: alg}, p, 0)
		require.NoError(s.T(), err, alg.String())
		require.Equal(s.T(), 1.0, res.FillRate, alg.String())
		require.Equal(s.T(), res.SelectedEdges.TotalCost(), res.TotalCost)
		require.Len(s.T(), res.SelectedEdges.Keys(), len(res.SelectedEdges), "deduplicated")
		for _, e := range res.SelectedEdges {
			require.True(s.T(), p.HasEdge(e), "route %s must come from the problem", e)
		}
		require.True(s.T(), res.SelectedEdges.Contains(network.RouteKey{From: "H", To: "C1"}), "C1 is only reachable via H")
	}
}

// TestCheapestParallelRoute: the 0.5 duplicate of P1→H is the one activated.
func (s *MaxFlowSuite) TestCheapestParallelRoute() {
	res, err := optimizer.MaxFlow{}.Solve(s.ctx, nil, supplyChain(), 0)
	require.NoError(s.T(), err)
	for _, e := range res.SelectedEdges {
		if e.From == "P1" && e.To == "H" {
			require.Equal(s.T(), 0.5, e.Cost)
		}
	}
}

// TestCapacityBlocksRoute: a zero-capacity hub carries nothing.
func (s *MaxFlowSuite) TestCapacityBlocksRoute() {
	p := network.NewProblem(
		[]network.Node{
			{ID: "P", Role: network.Source, Capacity: 5},
			{ID: "H", Role: network.Intermediate, Capacity: 0},
			{ID: "C", Role: network.Sink, Capacity: 5},
		},
		[]network.Route{{From: "P", To: "H", Cost: 1}, {From: "H", To: "C", Cost: 1}},
	)
	res, err := optimizer.MaxFlow{}.Solve(s.ctx, &optimizer.FlowBackend{Algorithm: flow.AlgEdmondsKarp}, p, 0)
	require.NoError(s.T(), err)
	require.Empty(s.T(), res.SelectedEdges)
	require.Zero(s.T(), res.FillRate)
	require.Equal(s.T(), []validate.Violation{{
		Kind: validate.SinkUnserved, Node: "C", Details: "no incoming selected routes",
	}}, validate.Validate(p, res.SelectedEdges))
}

// TestDanglingRouteSkipped: unknown endpoints never enter the network.
func (s *MaxFlowSuite) TestDanglingRouteSkipped() {
	p := network.NewProblem(
		[]network.Node{{ID: "P", Role: network.Source, Capacity: 5}, {ID: "C", Role: network.Sink, Capacity: 5}},
		[]network.Route{{From: "ghost", To: "C", Cost: 0}, {From: "P", To: "C", Cost: 4}},
	)
	res, err := optimizer.MaxFlow{}.Solve(s.ctx, nil, p, 0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), network.Selection{{From: "P", To: "C", Cost: 4}}, res.SelectedEdges)
}

// TestErrors covers nil problem and foreign backends.
func (s *MaxFlowSuite) TestErrors() {
	_, err := optimizer.MaxFlow{}.Solve(s.ctx, nil, nil, 0)
	require.ErrorIs(s.T(), err, optimizer.ErrNilProblem)

	_, err = optimizer.MaxFlow{}.Solve(s.ctx, "ibm_brisbane", supplyChain(), 0)
	require.ErrorIs(s.T(), err, optimizer.ErrUnsupportedBackend)

	_, err = optimizer.MaxFlow{}.Solve(s.ctx, optimizer.FlowBackend{Algorithm: flow.Algorithm(9)}, supplyChain(), 0)
	require.ErrorIs(s.T(), err, flow.ErrUnknownAlgorithm)
}

func TestMaxFlowSuite(t *testing.T) {
	suite.Run(t, new(MaxFlowSuite))
}

// SamplerSuite covers the shot-based collaborator.
type SamplerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *SamplerSuite) SetupTest() {
	s.ctx = context.Background()
}

// TestDeterministicPerSeed: same seed, same answer.
func (s *SamplerSuite) TestDeterministicPerSeed() {
	p := supplyChain()
	b := optimizer.SamplerBackend{Seed: 7}
	a, err := optimizer.Sampler{}.Solve(s.ctx, b, p, 64)
	require.NoError(s.T(), err)
	c, err := optimizer.Sampler{}.Solve(s.ctx, &b, p, 64)
	require.NoError(s.T(), err)
	require.Equal(s.T(), a, c)
}

// TestFindsFeasibleSelection: with enough shots the optimum-ish answer has
// no violations on this small chain.
func (s *SamplerSuite) TestFindsFeasibleSelection() {
	p := supplyChain()
	res, err := optimizer.Sampler{}.Solve(s.ctx, nil, p, 2048)
	require.NoError(s.T(), err)
	require.Empty(s.T(), validate.Validate(p, res.SelectedEdges))
	require.Equal(s.T(), 1.0, res.FillRate)
	for _, e := range res.SelectedEdges {
		require.True(s.T(), p.HasEdge(e))
	}
}

// TestInvalidShots returns ErrInvalidShots.
func (s *SamplerSuite) TestInvalidShots() {
	_, err := optimizer.Sampler{}.Solve(s.ctx, nil, supplyChain(), 0)
	require.True(s.T(), errors.Is(err, optimizer.ErrInvalidShots))
}

// TestBackendErrors covers nil problem, foreign backends and cancellation.
func (s *SamplerSuite) TestBackendErrors() {
	_, err := optimizer.Sampler{}.Solve(s.ctx, nil, nil, 1)
	require.ErrorIs(s.T(), err, optimizer.ErrNilProblem)

	_, err = optimizer.Sampler{}.Solve(s.ctx, optimizer.FlowBackend{}, supplyChain(), 1)
	require.ErrorIs(s.T(), err, optimizer.ErrUnsupportedBackend)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err = optimizer.Sampler{}.Solve(ctx, nil, supplyChain(), 10)
	require.ErrorIs(s.T(), err, context.Canceled)
}

func TestSamplerSuite(t *testing.T) {
	suite.Run(t, new(SamplerSuite))
}

func TestFuncAdapter(t *testing.T) {
	boom := errors.New("backend down")
	var got optimizer.Backend
	var opt optimizer.Optimizer = optimizer.Func(func(_ context.Context, b optimizer.Backend, _ *network.Problem, shots int) (optimizer.Result, error) {
		got = b
		require.Equal(t, 128, shots)
		return optimizer.Result{}, boom
	})
	_, err := opt.Solve(context.Background(), "handle", supplyChain(), 128)
	require.ErrorIs(t, err, boom)
	require.Equal(t, "handle", got)
}
