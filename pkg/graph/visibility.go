package graph

// =============================================================================
// Visibility - Expansion-Gated Subgraph
// =============================================================================

// Visible computes the currently visible subgraph: a breadth-first traversal
// seeded by the index roots that descends only through expanded nodes. A node
// is visible iff it is reachable from a root through a chain of exclusively
// expanded ancestors, so a collapsed node hides its whole subtree even when a
// descendant is itself expanded.
//
// The returned edge list is a pure filter of edges: an edge is visible iff
// both endpoints are visible. Traversal order is BFS order; only set
// membership is contractual.
func Visible(idx *Index, edges []Edge) ([]*Node, []Edge) {
	if len(idx.ByID) == 0 {
		return nil, nil
	}

	var nodes []*Node
	seen := make(map[string]bool, len(idx.ByID))
	queue := append([]string(nil), idx.Roots...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		n := idx.ByID[id]
		if n == nil {
			continue
		}
		seen[id] = true
		nodes = append(nodes, n)
		if n.Expanded {
			queue = append(queue, idx.Children[id]...)
		}
	}

	var visEdges []Edge
	for _, e := range edges {
		if seen[e.From] && seen[e.To] {
			visEdges = append(visEdges, e)
		}
	}
	return nodes, visEdges
}
