package repair

import (
	"github.com/go-logr/logr"

	"github.com/katalvlaran/routeflow/network"
)

// MaxPassBudget is the hard upper bound on repair passes.
const MaxPassBudget = 100

// Options configures Solve.
//   - MaxPasses: repair pass budget; values ≤ 0 or above MaxPassBudget are
//     normalized to MaxPassBudget.
//   - Logger: receives per-pass progress at V(1); zero value discards.
type Options struct {
	MaxPasses int
	Logger    logr.Logger
}

// DefaultOptions returns the production defaults: the full pass budget and a
// discarding logger.
func DefaultOptions() Options {
	return Options{
		MaxPasses: MaxPassBudget,
		Logger:    logr.Discard(),
	}
}

func (o *Options) normalize() {
	if o.MaxPasses <= 0 || o.MaxPasses > MaxPassBudget {
		o.MaxPasses = MaxPassBudget
	}
	if o.Logger.GetSink() == nil {
		o.Logger = logr.Discard()
	}
}

// Result is the outcome of Solve.
type Result struct {
	// Selection holds the activated routes, deduplicated by (From,To).
	Selection network.Selection

	// Seeded counts routes chosen by the seed step.
	Seeded int

	// Added counts routes added by the repair loop.
	Added int

	// Passes is the number of repair passes executed (≤ MaxPasses).
	Passes int

	// Converged is true when the last executed pass changed nothing.
	Converged bool

	// Unresolved lists intermediate nodes still having out > in after the
	// final pass. Informational only; validate.Validate is authoritative.
	Unresolved []string
}
