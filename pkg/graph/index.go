package graph

// =============================================================================
// Index - Derived Lookup Structures
// =============================================================================

// Index holds lookup structures derived from a document: node-by-id,
// children-by-id, and the root set. It is a pure function of its input and
// carries no mutable state beyond its own maps; rebuild it wholesale on any
// data change.
type Index struct {
	// ByID maps node ids to nodes.
	ByID map[string]*Node

	// Children maps a node id to its ordered, de-duplicated child ids.
	// Built strictly from edges; ChildrenIDs hints play no part.
	Children map[string][]string

	// Roots lists ids with no incoming edge, in node-list order. Never
	// empty when the document has nodes: a graph where every node has an
	// incoming edge falls back to the first node as sole root.
	Roots []string
}

// BuildIndex derives an Index from the given nodes and edges. It always
// succeeds: edges referencing unknown nodes are excluded, and a degenerate
// root set falls back to the first node.
func BuildIndex(nodes []*Node, edges []Edge) *Index {
	idx := &Index{
		ByID:     make(map[string]*Node, len(nodes)),
		Children: make(map[string][]string),
	}
	for _, n := range nodes {
		idx.ByID[n.ID] = n
	}

	hasParent := make(map[string]bool)
	for _, e := range edges {
		if idx.ByID[e.From] == nil || idx.ByID[e.To] == nil {
			continue // malformed reference, drop the edge
		}
		if !containsID(idx.Children[e.From], e.To) {
			idx.Children[e.From] = append(idx.Children[e.From], e.To)
		}
		hasParent[e.To] = true
	}

	for _, n := range nodes {
		if !hasParent[n.ID] {
			idx.Roots = append(idx.Roots, n.ID)
		}
	}
	if len(idx.Roots) == 0 && len(nodes) > 0 {
		idx.Roots = []string{nodes[0].ID}
	}

	return idx
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
