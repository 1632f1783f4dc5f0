package network

// Incoming returns the edges whose To equals node, in input order.
// Complexity: O(len(edges)).
func Incoming(edges []Route, node string) []Route {
	var out []Route
	for _, e := range edges {
		if e.To == node {
			out = append(out, e)
		}
	}

	return out
}

// Outgoing returns the edges whose From equals node, in input order.
// Complexity: O(len(edges)).
func Outgoing(edges []Route, node string) []Route {
	var out []Route
	for _, e := range edges {
		if e.From == node {
			out = append(out, e)
		}
	}

	return out
}

// Degree returns the number of edges entering and leaving node.
// Complexity: O(len(edges)).
func Degree(edges []Route, node string) (in, out int) {
	for _, e := range edges {
		if e.To == node {
			in++
		}
		if e.From == node {
			out++
		}
	}

	return in, out
}

// Cheapest returns the lowest-cost route in candidates. Ties keep the
// earliest candidate, so callers get input-order tie-breaking for free.
// ok is false when candidates is empty.
func Cheapest(candidates []Route) (best Route, ok bool) {
	for i, e := range candidates {
		if i == 0 || e.Cost < best.Cost {
			best = e
			ok = true
		}
	}

	return best, ok
}
