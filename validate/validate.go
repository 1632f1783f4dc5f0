package validate

import (
	"fmt"

	"github.com/katalvlaran/routeflow/network"
)

// Validate returns the violations of sel against p: sink coverage first,
// then conservation at intermediate nodes. A nil problem yields no
// violations. The result is freshly allocated on every call.
//
// Complexity: O((S + I) · |sel|) for S sinks and I intermediate nodes.
func Validate(p *network.Problem, sel network.Selection) []Violation {
	if p == nil {
		return nil
	}
	var out []Violation

	for _, sink := range p.Sinks {
		if len(network.Incoming(sel, sink)) == 0 {
			out = append(out, Violation{
				Kind:    SinkUnserved,
				Node:    sink,
				Details: detailsSinkUnserved,
			})
		}
	}

	for _, node := range p.IntermediateNodes {
		in := len(network.Incoming(sel, node))
		outDeg := len(network.Outgoing(sel, node))
		if in != outDeg {
			out = append(out, Violation{
				Kind:    FlowConservation,
				Node:    node,
				Details: fmt.Sprintf("in=%d out=%d", in, outDeg),
			})
		}
	}

	return out
}

// SolverFailure is the violation list reported for a side whose solver
// returned an error instead of a selection.
func SolverFailure() []Violation {
	return []Violation{{Kind: SolverError, Node: "", Details: detailsSolverFailure}}
}

// FillRate is the fraction of sinks with at least one incoming selected
// route. A problem without sinks has fill rate 0.
func FillRate(p *network.Problem, sel network.Selection) float64 {
	if p == nil || len(p.Sinks) == 0 {
		return 0
	}
	served := 0
	for _, sink := range p.Sinks {
		if len(network.Incoming(sel, sink)) > 0 {
			served++
		}
	}

	return float64(served) / float64(len(p.Sinks))
}

// TotalCost sums the costs of the selected routes.
func TotalCost(sel network.Selection) float64 {
	return sel.TotalCost()
}

// CountByKind tallies violations per kind.
func CountByKind(vs []Violation) map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, v := range vs {
		counts[v.Kind]++
	}

	return counts
}

// Filter returns the violations of the given kind, in report order.
func Filter(vs []Violation, kind Kind) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.Kind == kind {
			out = append(out, v)
		}
	}

	return out
}
