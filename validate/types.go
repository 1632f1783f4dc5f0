package validate

import "fmt"

// Kind classifies a Violation.
type Kind int

const (
	// SinkUnserved marks a sink without any incoming selected route.
	SinkUnserved Kind = iota
	// FlowConservation marks an intermediate node with in-degree ≠ out-degree.
	FlowConservation
	// SolverError marks a collaborator that failed to produce a selection.
	SolverError
)

// String returns the snake_case report name of the kind.
func (k Kind) String() string {
	switch k {
	case SinkUnserved:
		return "sink_unserved"
	case FlowConservation:
		return "flow_conservation"
	case SolverError:
		return "solver_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Violation is one breached invariant. Node is empty for SolverError.
type Violation struct {
	Kind    Kind
	Node    string
	Details string
}

// String renders "kind node: details".
func (v Violation) String() string {
	if v.Node == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Details)
	}

	return fmt.Sprintf("%s %s: %s", v.Kind, v.Node, v.Details)
}

const (
	detailsSinkUnserved  = "no incoming selected routes"
	detailsSolverFailure = "quantum solver failed"
)
