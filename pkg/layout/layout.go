package layout

import (
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/graph"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Algorithm names.
const (
	AlgorithmTree          = "tree"
	AlgorithmBidirectional = "bidirectional"
	AlgorithmForce         = "force"
)

// ValidAlgorithms is the set of supported layout algorithms.
var ValidAlgorithms = map[string]bool{
	AlgorithmTree:          true,
	AlgorithmBidirectional: true,
	AlgorithmForce:         true,
}

// =============================================================================
// Params - Layout Tuning
// =============================================================================

// Params holds the tuning knobs shared by the layout algorithms and the
// overlap resolver. Zero values are not meaningful; start from
// [DefaultParams] and override selectively (the TOML config does exactly
// that).
type Params struct {
	// LevelGap is the fixed depth-axis distance between tree columns.
	LevelGap float64 `toml:"level_gap"`

	// SiblingGap is the minimum cross-axis gap between sibling subtrees.
	SiblingGap float64 `toml:"sibling_gap"`

	// OverlapPadding is the extra clearance required between footprints
	// before two nodes count as non-overlapping.
	OverlapPadding float64 `toml:"overlap_padding"`

	// OverlapPasses bounds the overlap resolver's iteration. Resolution is
	// best-effort: a pathological dense cluster can exhaust the budget.
	OverlapPasses int `toml:"overlap_passes"`

	// Repulsion scales the inverse-square pair repulsion force.
	Repulsion float64 `toml:"repulsion"`

	// Stiffness scales the spring force along edges.
	Stiffness float64 `toml:"stiffness"`

	// RestLength is the target edge distance the spring force pulls toward.
	RestLength float64 `toml:"rest_length"`

	// Damping is applied to velocity each tick, in (0,1).
	Damping float64 `toml:"damping"`

	// MinDistance floors pair distances to avoid singularities when two
	// nodes coincide.
	MinDistance float64 `toml:"min_distance"`
}

// DefaultParams returns the built-in tuning values.
func DefaultParams() Params {
	return Params{
		LevelGap:       180,
		SiblingGap:     24,
		OverlapPadding: 8,
		OverlapPasses:  10,
		Repulsion:      60000,
		Stiffness:      0.02,
		RestLength:     160,
		Damping:        0.85,
		MinDistance:    10,
	}
}

// =============================================================================
// Engine - Common Algorithm Contract
// =============================================================================

// Engine is a layout algorithm step: it mutates the position (and for force,
// velocity) of every visible node in place. For the deterministic algorithms
// a single call produces the final layout; for [Force] each call is one
// relaxation tick.
type Engine interface {
	Layout(nodes []*graph.Node, edges []graph.Edge, canvas graph.Size)
}

// New constructs the engine for the named algorithm. The seed is only used
// by the force engine for reproducible initial placement.
func New(algorithm string, p Params, seed uint64) (Engine, error) {
	switch algorithm {
	case AlgorithmTree:
		return NewTree(p), nil
	case AlgorithmBidirectional:
		return NewBidirectional(p), nil
	case AlgorithmForce:
		return NewForce(p, seed), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown layout algorithm %q", algorithm)
	}
}

// =============================================================================
// Local Structure Derivation
// =============================================================================

// structure is the root/children view of the visible subgraph. It is
// recomputed locally from the passed edge list rather than reused from the
// global index, because the visible edge set differs from the full graph: a
// node whose children are all collapsed away is a leaf here even if the full
// graph gave it children.
type structure struct {
	byID     map[string]*graph.Node
	children map[string][]string
	roots    []string
}

func deriveStructure(nodes []*graph.Node, edges []graph.Edge) *structure {
	s := &structure{
		byID:     make(map[string]*graph.Node, len(nodes)),
		children: make(map[string][]string),
	}
	for _, n := range nodes {
		s.byID[n.ID] = n
	}

	hasParent := make(map[string]bool)
	for _, e := range edges {
		if s.byID[e.From] == nil || s.byID[e.To] == nil {
			continue
		}
		if !containsID(s.children[e.From], e.To) {
			s.children[e.From] = append(s.children[e.From], e.To)
		}
		hasParent[e.To] = true
	}

	for _, n := range nodes {
		if !hasParent[n.ID] {
			s.roots = append(s.roots, n.ID)
		}
	}
	if len(s.roots) == 0 && len(nodes) > 0 {
		s.roots = []string{nodes[0].ID}
	}
	return s
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
