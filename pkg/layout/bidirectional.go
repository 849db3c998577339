package layout

import "github.com/matzehuels/canopy/pkg/graph"

// =============================================================================
// Bidirectional - Dual-Sided Tree Layout
// =============================================================================

// Bidirectional places the root at the origin and fans its direct children
// into two independent halves along the x axis: children at even index go
// right, odd index left. The split is a fixed alternation in declaration
// order; it deliberately ignores subtree size, so one huge and one tiny
// subtree yield an unbalanced picture. Each half is laid out by a shared
// two-pass routine: measure subtree extents first, then place, so positions
// never influence size computation.
type Bidirectional struct {
	p Params
}

// NewBidirectional creates a bidirectional layout with the given tuning
// parameters.
func NewBidirectional(p Params) *Bidirectional {
	return &Bidirectional{p: p}
}

// Layout places every visible node in place. The first visible root becomes
// the origin node; any additional roots join the alternating split after the
// root's direct children so every visible node still gets a position. A root
// with zero children places only the root at the origin.
func (b *Bidirectional) Layout(nodes []*graph.Node, edges []graph.Edge, canvas graph.Size) {
	if len(nodes) == 0 {
		return
	}

	s := deriveStructure(nodes, edges)
	root := s.byID[s.roots[0]]
	root.Position = graph.Point{}

	visited := map[string]bool{root.ID: true}

	fanout := append([]string(nil), s.children[root.ID]...)
	for _, extra := range s.roots[1:] {
		if !containsID(fanout, extra) {
			fanout = append(fanout, extra)
		}
	}

	var right, left []string
	for i, id := range fanout {
		if i%2 == 0 {
			right = append(right, id)
		} else {
			left = append(left, id)
		}
	}

	// Measure pass shares one visited set per side so a node reachable
	// twice is only accounted once, mirroring the placement pass.
	b.placeSiblings(s, right, 1, 0, +1, visited)
	b.placeSiblings(s, left, 1, 0, -1, visited)
}

// placeSiblings stacks the given sibling list along the cross axis centered
// on centerY at the given depth, each sibling centered within its allotted
// span, then recurses one depth-unit further from the origin in the same
// direction.
func (b *Bidirectional) placeSiblings(s *structure, ids []string, depth int, centerY, dir float64, visited map[string]bool) {
	var fresh []string
	for _, id := range ids {
		if s.byID[id] != nil && !visited[id] {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		return
	}

	extents := make([]float64, len(fresh))
	total := 0.0
	measured := copyVisited(visited)
	for i, id := range fresh {
		extents[i] = b.extent(s, id, measured)
		total += extents[i]
	}
	total += float64(len(fresh)-1) * b.p.SiblingGap

	x := dir * float64(depth) * b.p.LevelGap
	cursor := centerY - total/2
	for i, id := range fresh {
		if visited[id] {
			continue // reached through an earlier sibling's subtree
		}
		visited[id] = true
		y := cursor + extents[i]/2
		s.byID[id].Position = graph.Point{X: x, Y: y}
		b.placeSiblings(s, s.children[id], depth+1, y, dir, visited)
		cursor += extents[i] + b.p.SiblingGap
	}
}

// extent is the pre-measurement pass: a node's subtree cross-axis extent is
// its own footprint height when it has no children, otherwise the
// accumulated extent of its children. Computed independently from placement.
func (b *Bidirectional) extent(s *structure, id string, visited map[string]bool) float64 {
	n := s.byID[id]
	if n == nil || visited[id] {
		return 0
	}
	visited[id] = true

	sum := 0.0
	count := 0
	for _, c := range s.children[id] {
		if visited[c] {
			continue
		}
		sum += b.extent(s, c, visited)
		count++
	}
	if count == 0 {
		return n.Extent().Height
	}
	return sum + float64(count-1)*b.p.SiblingGap
}

func copyVisited(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
