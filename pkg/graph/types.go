package graph

// =============================================================================
// Geometry Primitives
// =============================================================================

// Point is a 2D position or vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the component-wise difference of two points.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns the point scaled by f.
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// IsZero reports whether the point is the origin. The zero point doubles as
// the "not yet placed" sentinel for node positions.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Size is a width×height footprint.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether the size is unmeasured.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Default footprint used when a node has not been measured yet. Geometry
// calculations must never operate on undefined extents.
const (
	DefaultNodeWidth  = 100.0
	DefaultNodeHeight = 60.0
)

// DefaultFootprint returns the fallback footprint for unmeasured nodes.
func DefaultFootprint() Size {
	return Size{Width: DefaultNodeWidth, Height: DefaultNodeHeight}
}

// =============================================================================
// Node and Edge
// =============================================================================

// Node is a diagram node. Position and Velocity are mutated in place by the
// layout algorithms; all other fields are input data.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"` // Display label (defaults to ID)

	// ChildrenIDs is the child ordering declared by hierarchical input.
	// It is a structure hint only: layout truth is derived from edges.
	ChildrenIDs []string `json:"children_ids,omitempty"`

	// Position is owned by whichever layout last ran. The zero value means
	// "not yet placed" and layouts treat it as needing initial placement.
	Position Point `json:"position"`

	// Velocity is meaningful only under force-directed layout.
	Velocity Point `json:"velocity"`

	// Footprint is supplied by the measurement collaborator and read-only
	// for layouts. The zero value means unmeasured.
	Footprint Size `json:"footprint"`

	// Expanded controls whether this node's children are part of the
	// visible subgraph. Always defined after initialization.
	Expanded bool `json:"expanded"`

	// ExpandedOverride, when present, wins over the document-level default
	// during initialization.
	ExpandedOverride *bool `json:"expanded_override,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Extent returns the node's footprint, falling back to the default when the
// node has not been measured.
func (n *Node) Extent() Size {
	if n.Footprint.IsZero() {
		return DefaultFootprint()
	}
	return n.Footprint
}

// Edge is a directed edge. Equality is structural: two edges are the same
// edge iff both endpoint ids match.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Document - The Mutable Diagram State
// =============================================================================

// Document owns the node and edge records that layouts mutate. It is the
// single "document context" shared by index building, visibility resolution,
// layout, and rendering; there is no global registry.
type Document struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`
}

// Node returns the node with the given id, or nil.
func (d *Document) Node(id string) *Node {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// ResetPlacement clears every node's position and velocity, returning the
// document to the "not yet placed" state. Used on data reload, never on
// expand/collapse.
func (d *Document) ResetPlacement() {
	for _, n := range d.Nodes {
		n.Position = Point{}
		n.Velocity = Point{}
	}
}

// ResolveExpanded resolves a node's initial expansion state from the
// precedence chain: per-node override > document default > expanded.
func ResolveExpanded(override, def *bool) bool {
	if override != nil {
		return *override
	}
	if def != nil {
		return *def
	}
	return true
}
