package layout

import (
	"math"

	"github.com/matzehuels/canopy/pkg/graph"
)

// =============================================================================
// Viewport Centering
// =============================================================================

// CenteringOffset computes the camera translation that centers the bounding
// box of the visible set in the given canvas: canvas center minus bounding
// box center. It is a pure function of the current layout state; how the
// target is approached (instant jump or smoothed over frames) is the
// animation driver's concern.
//
// The second return value is false when the visible set is empty or any node
// has a non-finite position or footprint (a degenerate mid-initialization
// state).
func CenteringOffset(nodes []*graph.Node, canvas graph.Size) (graph.Point, bool) {
	min, max, ok := Bounds(nodes)
	if !ok {
		return graph.Point{}, false
	}
	return graph.Point{
		X: canvas.Width/2 - (min.X+max.X)/2,
		Y: canvas.Height/2 - (min.Y+max.Y)/2,
	}, true
}

// Bounds returns the axis-aligned bounding box over all node footprints
// (position ± half footprint per axis). ok is false for an empty set or
// non-finite geometry.
func Bounds(nodes []*graph.Node) (min, max graph.Point, ok bool) {
	if len(nodes) == 0 {
		return graph.Point{}, graph.Point{}, false
	}

	min = graph.Point{X: math.Inf(1), Y: math.Inf(1)}
	max = graph.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, n := range nodes {
		ext := n.Extent()
		if !finite(n.Position.X) || !finite(n.Position.Y) || !finite(ext.Width) || !finite(ext.Height) {
			return graph.Point{}, graph.Point{}, false
		}
		min.X = math.Min(min.X, n.Position.X-ext.Width/2)
		min.Y = math.Min(min.Y, n.Position.Y-ext.Height/2)
		max.X = math.Max(max.X, n.Position.X+ext.Width/2)
		max.Y = math.Max(max.Y, n.Position.Y+ext.Height/2)
	}
	return min, max, true
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
