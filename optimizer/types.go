package optimizer

import (
	"context"
	"errors"

	"github.com/katalvlaran/routeflow/network"
)

var (
	// ErrNilProblem is returned when Solve receives a nil problem.
	ErrNilProblem = errors.New("optimizer: problem is nil")

	// ErrInvalidShots is returned when a shot-based backend gets shots ≤ 0.
	ErrInvalidShots = errors.New("optimizer: shot count must be positive")

	// ErrUnsupportedBackend is returned when the backend handle has a type
	// the optimizer does not understand.
	ErrUnsupportedBackend = errors.New("optimizer: unsupported backend")
)

// Backend is an opaque handle selecting where and how an optimizer runs.
// The harness passes it through untouched.
type Backend any

// Result is what a collaborator declares about its own output.
type Result struct {
	SelectedEdges network.Selection
	TotalCost     float64
	FillRate      float64
}

// Optimizer is an external route-activation solver.
type Optimizer interface {
	Solve(ctx context.Context, backend Backend, p *network.Problem, shots int) (Result, error)
}

// Func adapts an ordinary function to Optimizer.
type Func func(ctx context.Context, backend Backend, p *network.Problem, shots int) (Result, error)

// Solve calls f.
func (f Func) Solve(ctx context.Context, backend Backend, p *network.Problem, shots int) (Result, error) {
	return f(ctx, backend, p, shots)
}
