package layout

import "github.com/matzehuels/canopy/pkg/graph"

// =============================================================================
// Tree - Deterministic Horizontal Hierarchy Layout
// =============================================================================

// Tree is the deterministic single-pass tree layout. Depth increases along
// the x axis at a fixed gap per level; siblings spread along the y axis. A
// parent is vertically centered on the total span of its children, and no
// two sibling subtrees overlap along the cross axis.
type Tree struct {
	p Params
}

// NewTree creates a tree layout with the given tuning parameters.
func NewTree(p Params) *Tree {
	return &Tree{p: p}
}

// Layout places every visible node in place. An empty visible set is a
// no-op. Multiple visible roots are stacked vertically like sibling
// subtrees.
func (t *Tree) Layout(nodes []*graph.Node, edges []graph.Edge, canvas graph.Size) {
	if len(nodes) == 0 {
		return
	}

	s := deriveStructure(nodes, edges)
	visited := make(map[string]bool, len(nodes))

	cursor := 0.0
	for _, root := range s.roots {
		ext := t.place(s, root, 0, cursor, visited)
		cursor += ext + t.p.SiblingGap
	}
}

// place positions the subtree rooted at id with its allotted span starting
// at cross-axis coordinate top, and returns the subtree extent: the
// cross-axis space the node and all its descendants require. The visited set
// guards against cycles in the visible edge set; a back edge is treated as
// if the child were absent.
func (t *Tree) place(s *structure, id string, depth int, top float64, visited map[string]bool) float64 {
	n := s.byID[id]
	if n == nil || visited[id] {
		return 0
	}
	visited[id] = true

	own := n.Extent().Height
	x := float64(depth) * t.p.LevelGap

	var children []string
	for _, c := range s.children[id] {
		if !visited[c] {
			children = append(children, c)
		}
	}

	if len(children) == 0 {
		n.Position = graph.Point{X: x, Y: top + own/2}
		return own
	}

	cursor := top
	for _, c := range children {
		ext := t.place(s, c, depth+1, cursor, visited)
		cursor += ext + t.p.SiblingGap
	}
	span := cursor - t.p.SiblingGap - top

	n.Position = graph.Point{X: x, Y: top + span/2}

	if own > span {
		return own
	}
	return span
}

// Extent returns the cross-axis space the subtree rooted at id requires,
// without assigning positions. Exposed for tests asserting that sibling
// spans are disjoint.
func (t *Tree) Extent(nodes []*graph.Node, edges []graph.Edge, id string) float64 {
	s := deriveStructure(nodes, edges)
	return t.extent(s, id, make(map[string]bool))
}

func (t *Tree) extent(s *structure, id string, visited map[string]bool) float64 {
	n := s.byID[id]
	if n == nil || visited[id] {
		return 0
	}
	visited[id] = true

	own := n.Extent().Height
	sum := 0.0
	count := 0
	for _, c := range s.children[id] {
		if visited[c] {
			continue
		}
		sum += t.extent(s, c, visited)
		count++
	}
	if count == 0 {
		return own
	}
	sum += float64(count-1) * t.p.SiblingGap
	if own > sum {
		return own
	}
	return sum
}
