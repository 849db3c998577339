package layout

import (
	"math"

	"github.com/matzehuels/canopy/pkg/graph"
)

// =============================================================================
// Overlap Resolution
// =============================================================================

// ResolveOverlaps is a corrective pass that nudges visible nodes apart until
// no two footprints intersect, while preserving the set's centroid so the
// layout's overall position is unchanged. It mutates positions in place and
// is idempotent once no pairs overlap.
//
// For each overlapping pair the push happens along whichever axis has the
// smaller overlap amount (minimal displacement), split equally between the
// two nodes. When the centers are exactly aligned on that axis, the push
// direction alternates by pair index parity to avoid a zero-displacement
// deadlock. Iteration stops after a clean pass or after p.OverlapPasses
// passes, whichever comes first - a pathological dense cluster can exhaust
// the budget, so non-overlap is a best-effort bound, not a guarantee.
//
// Any node that was moved has its velocity reset to zero so a following
// force tick does not immediately reintroduce the resolved overlap.
func ResolveOverlaps(nodes []*graph.Node, p Params) {
	if len(nodes) < 2 {
		return
	}

	before := centroid(nodes)
	moved := make(map[*graph.Node]bool)

	for pass := 0; pass < p.OverlapPasses; pass++ {
		pair := 0
		clean := true
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				a, b := nodes[i], nodes[j]
				ea, eb := a.Extent(), b.Extent()

				dx := b.Position.X - a.Position.X
				dy := b.Position.Y - a.Position.Y
				overlapX := (ea.Width+eb.Width)/2 + p.OverlapPadding - math.Abs(dx)
				overlapY := (ea.Height+eb.Height)/2 + p.OverlapPadding - math.Abs(dy)
				pair++
				if overlapX <= 0 || overlapY <= 0 {
					continue
				}
				clean = false

				if overlapX < overlapY {
					sign := tieBreak(dx, pair)
					shift := sign * overlapX / 2
					a.Position.X -= shift
					b.Position.X += shift
				} else {
					sign := tieBreak(dy, pair)
					shift := sign * overlapY / 2
					a.Position.Y -= shift
					b.Position.Y += shift
				}
				moved[a] = true
				moved[b] = true
			}
		}
		if clean {
			break
		}
	}

	if len(moved) == 0 {
		return
	}

	// Restore the original centroid so internal spacing shifts do not move
	// the layout as a whole.
	after := centroid(nodes)
	delta := before.Sub(after)
	for _, n := range nodes {
		n.Position = n.Position.Add(delta)
	}

	for n := range moved {
		n.Velocity = graph.Point{}
	}
}

// tieBreak picks the push sign: the sign of the center delta when the
// centers differ, otherwise an alternating sign keyed by pair parity.
func tieBreak(delta float64, pair int) float64 {
	if delta > 0 {
		return 1
	}
	if delta < 0 {
		return -1
	}
	if pair%2 == 0 {
		return 1
	}
	return -1
}

// centroid returns the arithmetic mean position of the node set, the
// stability anchor for overlap resolution.
func centroid(nodes []*graph.Node) graph.Point {
	var sum graph.Point
	for _, n := range nodes {
		sum = sum.Add(n.Position)
	}
	return sum.Scale(1 / float64(len(nodes)))
}
