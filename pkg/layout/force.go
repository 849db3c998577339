package layout

import (
	"math"
	"math/rand"

	"github.com/matzehuels/canopy/pkg/graph"
)

// =============================================================================
// Force - Iterative Physics Relaxation
// =============================================================================

// Force is the force-directed layout. Unlike the deterministic layouts it is
// stateful across calls: positions and velocities from one tick feed the
// next, and the engine owns a seeded random source for first-seen placement.
// It never terminates on its own; the caller's timer decides when to stop
// ticking, and ticks must be applied strictly in temporal order from a
// single timer source.
type Force struct {
	p   Params
	rng *rand.Rand
}

// NewForce creates a force engine with the given tuning parameters and seed.
// The seed only affects the initial random placement of unseen nodes, which
// makes runs reproducible in tests and batch mode.
func NewForce(p Params, seed uint64) *Force {
	return &Force{p: p, rng: rand.New(rand.NewSource(int64(seed)))}
}

// Layout applies a single relaxation tick, satisfying [Engine]. Batch
// callers run a fixed number of ticks; interactive callers tick on a timer.
func (f *Force) Layout(nodes []*graph.Node, edges []graph.Edge, canvas graph.Size) {
	f.Tick(nodes, edges, canvas)
}

// Tick advances the simulation by one step: every node accumulates an
// inverse-square repulsion from every other node and a spring force toward
// the rest length along each of its edges, then integrates
// velocity = (velocity + force) * damping and position += velocity.
//
// Nodes are updated in place node-by-node, so later nodes see the already
// updated positions of earlier ones within the same tick. The force law is
// pairwise symmetric, so this minor asymmetry is an accepted approximation
// rather than a correctness bug.
func (f *Force) Tick(nodes []*graph.Node, edges []graph.Edge, canvas graph.Size) {
	if len(nodes) == 0 {
		return
	}

	for _, n := range nodes {
		if n.Position.IsZero() {
			n.Position = graph.Point{
				X: f.rng.Float64() * canvas.Width,
				Y: f.rng.Float64() * canvas.Height,
			}
		}
	}

	byID := make(map[string]*graph.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	for _, n := range nodes {
		var force graph.Point

		for _, other := range nodes {
			if other == n {
				continue
			}
			dx := n.Position.X - other.Position.X
			dy := n.Position.Y - other.Position.Y
			dist := math.Hypot(dx, dy)
			if dist < f.p.MinDistance {
				dist = f.p.MinDistance
			}
			mag := f.p.Repulsion / (dist * dist)
			force.X += dx / dist * mag
			force.Y += dy / dist * mag
		}

		for _, e := range edges {
			var other *graph.Node
			switch n.ID {
			case e.From:
				other = byID[e.To]
			case e.To:
				other = byID[e.From]
			default:
				continue
			}
			if other == nil || other == n {
				continue
			}
			dx := other.Position.X - n.Position.X
			dy := other.Position.Y - n.Position.Y
			dist := math.Hypot(dx, dy)
			if dist < f.p.MinDistance {
				dist = f.p.MinDistance
			}
			mag := f.p.Stiffness * (dist - f.p.RestLength)
			force.X += dx / dist * mag
			force.Y += dy / dist * mag
		}

		n.Velocity = n.Velocity.Add(force).Scale(f.p.Damping)
		n.Position = n.Position.Add(n.Velocity)
	}
}
