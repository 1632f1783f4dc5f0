package optimizer

import (
	"context"
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/routeflow/network"
	"github.com/katalvlaran/routeflow/validate"
)

// defaultActivationProbability is the per-route activation chance per shot.
const defaultActivationProbability = 0.5

// SamplerBackend configures Sampler.
//   - Seed: RNG seed, 0 selects the fixed default stream.
//   - ActivationProbability: chance that a route is on in a shot; values
//     outside (0,1) fall back to 0.5.
//   - Penalty: score added per violation; ≤ 0 selects 1 + Σ|cost|, so any
//     violation outweighs every possible cost saving.
type SamplerBackend struct {
	Seed                  int64
	ActivationProbability float64
	Penalty               float64
}

// Sampler is a shot-based stochastic optimizer. Each shot draws an
// independent activation vector over the deduplicated candidate routes
// (cheapest route per (From,To)) and scores it as
//
//	cost + penalty · len(validate.Validate(p, selection))
//
// The lowest score wins; ties keep the earliest shot.
type Sampler struct {
	Logger logr.Logger
}

// Solve implements Optimizer.
func (s Sampler) Solve(ctx context.Context, backend Backend, p *network.Problem, shots int) (Result, error) {
	if p == nil {
		return Result{}, ErrNilProblem
	}
	if shots <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}
	var cfg SamplerBackend
	switch b := backend.(type) {
	case nil:
	case SamplerBackend:
		cfg = b
	case *SamplerBackend:
		if b != nil {
			cfg = *b
		}
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnsupportedBackend, backend)
	}

	log := s.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	log = log.WithName("sampler")

	candidates := cheapestPerKey(p.Edges)
	q := cfg.ActivationProbability
	if q <= 0 || q >= 1 {
		q = defaultActivationProbability
	}
	penalty := cfg.Penalty
	if penalty <= 0 {
		penalty = 1
		for _, e := range candidates {
			penalty += math.Abs(e.Cost)
		}
	}

	rng := rngFromSeed(cfg.Seed)
	var (
		best      network.Selection
		bestScore = math.Inf(1)
	)
	for shot := 0; shot < shots; shot++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		sel := make(network.Selection, 0, len(candidates))
		for _, e := range candidates {
			if rng.Float64() < q {
				sel = append(sel, e)
			}
		}
		score := sel.TotalCost() + penalty*float64(len(validate.Validate(p, sel)))
		if score < bestScore {
			best, bestScore = sel, score
			log.V(1).Info("improved", "shot", shot, "score", score, "selected", len(sel))
		}
	}

	return Result{
		SelectedEdges: best,
		TotalCost:     best.TotalCost(),
		FillRate:      validate.FillRate(p, best),
	}, nil
}

// cheapestPerKey keeps, for each (From,To), the cheapest route; ties keep
// the first. Output order follows first appearance.
func cheapestPerKey(edges []network.Route) []network.Route {
	idx := make(map[network.RouteKey]int, len(edges))
	out := make([]network.Route, 0, len(edges))
	for _, e := range edges {
		if i, ok := idx[e.Key()]; ok {
			if e.Cost < out[i].Cost {
				out[i] = e
			}
			continue
		}
		idx[e.Key()] = len(out)
		out = append(out, e)
	}

	return out
}
