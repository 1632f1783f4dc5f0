// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node/Route/Problem/Selection types, Role enum and sentinel errors.

package network

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned by ParseRole for any value other than
// "source", "intermediate" or "sink" (case-insensitive).
var ErrUnknownRole = errors.New("network: unknown node role")

// Role classifies a node inside the supply chain.
type Role int

const (
	// Source nodes inject goods; only they carry a Supply.
	Source Role = iota
	// Intermediate nodes are hubs; they must keep selected in/out degree equal.
	Intermediate
	// Sink nodes consume goods; only they carry a Demand.
	Sink
)

// String returns the lower-case wire name of the role.
func (r Role) String() string {
	switch r {
	case Source:
		return "source"
	case Intermediate:
		return "intermediate"
	case Sink:
		return "sink"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole maps a node_type value onto a Role. Surrounding spaces and case
// are ignored.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source":
		return Source, nil
	case "intermediate":
		return Intermediate, nil
	case "sink":
		return Sink, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Node is a single location in the network.
//
// Supply is only meaningful for Source nodes and Demand only for Sink nodes;
// NewProblem ignores them on any other role.
type Node struct {
	// ID uniquely identifies the node.
	ID string

	// Role is the node's single classification.
	Role Role

	// Capacity is the non-negative throughput ceiling.
	Capacity int64

	// Supply is nil when absent.
	Supply *int64

	// Demand is nil when absent.
	Demand *int64
}

// Route is a directed candidate edge From→To with an activation cost.
// Endpoints are not checked against any node set here.
type Route struct {
	From string
	To   string
	Cost float64
}

// RouteKey is the identity of a route inside a Selection.
type RouteKey struct {
	From string
	To   string
}

// Key returns the (From,To) identity of r.
func (r Route) Key() RouteKey {
	return RouteKey{From: r.From, To: r.To}
}

// String renders the route as "from->to(cost)".
func (r Route) String() string {
	return fmt.Sprintf("%s->%s(%g)", r.From, r.To, r.Cost)
}

// Problem is the immutable input shared read-only by both solvers and the
// validator for the duration of one run.
//
// Sources, Sinks and IntermediateNodes are disjoint and keep the order in
// which nodes were supplied. Edges keeps the input order of routes, which is
// the tie-breaking order for every cheapest-edge choice.
type Problem struct {
	Sources           []string
	Sinks             []string
	IntermediateNodes []string

	Edges []Route

	Capacities map[string]int64
	Demands    map[string]int64
	Supplies   map[string]int64

	roles map[string]Role
}

// Selection is the set of activated routes. Order carries no meaning and
// no two entries share a (From,To) pair.
type Selection []Route
