package network

// Dedup collapses routes by (From,To), keeping the first occurrence of each
// pair in input order.
// Complexity: O(n) time, O(n) extra space.
func Dedup(routes []Route) Selection {
	seen := make(map[RouteKey]struct{}, len(routes))
	out := make(Selection, 0, len(routes))
	for _, r := range routes {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}

	return out
}

// Contains reports whether a route with the given (From,To) is selected.
func (s Selection) Contains(k RouteKey) bool {
	for _, r := range s {
		if r.Key() == k {
			return true
		}
	}

	return false
}

// TotalCost sums the cost of every selected route.
func (s Selection) TotalCost() float64 {
	var total float64
	for _, r := range s {
		total += r.Cost
	}

	return total
}

// Keys returns the set of selected (From,To) pairs.
func (s Selection) Keys() map[RouteKey]struct{} {
	keys := make(map[RouteKey]struct{}, len(s))
	for _, r := range s {
		keys[r.Key()] = struct{}{}
	}

	return keys
}
