package network

// NewProblem partitions nodes by role and projects their numeric fields into
// the Problem maps.
//
// Contract:
//   - nodes and routes are already validated upstream (ids, types, numbers).
//   - Every node contributes a Capacities entry.
//   - Supplies holds sources whose Supply is set; Demands holds sinks whose
//     Demand is set. Values on other roles are dropped.
//   - Role lists and Edges keep input order; routes are copied, so later
//     changes to the caller's slice do not leak into the Problem.
//
// NewProblem is total and side-effect free.
// Complexity: O(|nodes| + |routes|).
func NewProblem(nodes []Node, routes []Route) *Problem {
	p := &Problem{
		Edges:      make([]Route, len(routes)),
		Capacities: make(map[string]int64, len(nodes)),
		Demands:    make(map[string]int64),
		Supplies:   make(map[string]int64),
		roles:      make(map[string]Role, len(nodes)),
	}
	copy(p.Edges, routes)

	for _, n := range nodes {
		p.Capacities[n.ID] = n.Capacity
		p.roles[n.ID] = n.Role

		switch n.Role {
		case Source:
			p.Sources = append(p.Sources, n.ID)
			if n.Supply != nil {
				p.Supplies[n.ID] = *n.Supply
			}
		case Sink:
			p.Sinks = append(p.Sinks, n.ID)
			if n.Demand != nil {
				p.Demands[n.ID] = *n.Demand
			}
		case Intermediate:
			p.IntermediateNodes = append(p.IntermediateNodes, n.ID)
		}
	}

	return p
}

// Role reports the role of node id and whether the node is known.
func (p *Problem) Role(id string) (Role, bool) {
	r, ok := p.roles[id]

	return r, ok
}

// NodeCount returns the number of distinct nodes in the problem.
func (p *Problem) NodeCount() int {
	return len(p.roles)
}

// HasEdge reports whether r (matched on From, To and Cost) is one of the
// problem's candidate routes.
func (p *Problem) HasEdge(r Route) bool {
	for _, e := range p.Edges {
		if e == r {
			return true
		}
	}

	return false
}
