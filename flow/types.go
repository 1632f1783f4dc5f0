package flow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// ErrSourceNotFound is returned when the specified source vertex is missing.
var ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)
var errSourceNotFound = errors.New("source vertex not found")

// ErrSinkNotFound is returned when the specified sink vertex is missing.
var ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)
var errSinkNotFound = errors.New("sink vertex not found")

// ErrSameEndpoints is returned when source and sink are the same vertex.
var ErrSameEndpoints = errors.New("flow: source equals sink")

// ErrUnknownAlgorithm is returned by ParseAlgorithm and Run.
var ErrUnknownAlgorithm = errors.New("flow: unknown algorithm")

// EdgeError is returned when an arc has a negative capacity.
type EdgeError struct {
	From, To string
	Cap      int64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on arc %q→%q: %d", e.From, e.To, e.Cap)
}

// Arc identifies a directed pair of vertices.
type Arc struct {
	From, To string
}

// Result is the outcome of a max-flow run.
type Result struct {
	// Value is the total flow from source to sink.
	Value int64

	// Flow maps each original arc to its net positive flow. Arcs that carry
	// nothing are absent.
	Flow map[Arc]int64

	// Augmentations counts successful augmenting pushes.
	Augmentations int
}

// Options configures all max-flow algorithms.
//   - Logger: each augmentation is logged at V(2); zero value discards.
//   - LevelRebuildInterval: Dinic only, rebuild the level graph every N
//     pushes (0 = only when blocked).
type Options struct {
	Logger               logr.Logger
	LevelRebuildInterval int
}

// DefaultOptions returns a discarding logger and no forced level rebuilds.
func DefaultOptions() Options {
	return Options{Logger: logr.Discard()}
}

func (o *Options) normalize() {
	if o.Logger.GetSink() == nil {
		o.Logger = logr.Discard()
	}
	if o.LevelRebuildInterval < 0 {
		o.LevelRebuildInterval = 0
	}
}

// Algorithm selects a max-flow method.
type Algorithm int

const (
	// AlgDinic is the default: level graph plus blocking flows.
	AlgDinic Algorithm = iota
	// AlgEdmondsKarp uses BFS shortest augmenting paths.
	AlgEdmondsKarp
	// AlgFordFulkerson uses DFS augmenting paths.
	AlgFordFulkerson
)

// String returns the CLI/config name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgDinic:
		return "dinic"
	case AlgEdmondsKarp:
		return "edmonds-karp"
	case AlgFordFulkerson:
		return "ford-fulkerson"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a config value onto an Algorithm. An empty string
// selects AlgDinic.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dinic":
		return AlgDinic, nil
	case "edmonds-karp", "edmondskarp", "ek":
		return AlgEdmondsKarp, nil
	case "ford-fulkerson", "fordfulkerson", "ff":
		return AlgFordFulkerson, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}
