// Package layout computes 2D placements for the visible subgraph of a canopy
// document.
//
// Three algorithms are provided:
//
//   - [Tree]: deterministic single-pass recursive placement of a hierarchy,
//     horizontal orientation (depth grows rightward, siblings spread
//     vertically).
//   - [Bidirectional]: deterministic placement with the root at the origin
//     and its direct children alternately fanned into a right and a left
//     half, each laid out as an independent tree.
//   - [Force]: iterative physics relaxation (pairwise repulsion, spring
//     attraction along edges, velocity damping). Stateful across ticks; the
//     caller's timer decides when to stop.
//
// Two corrective passes run after any layout: [ResolveOverlaps] nudges
// intersecting footprints apart while preserving the set's centroid, and
// [CenteringOffset] computes the camera translation that centers the visible
// bounding box in the canvas.
//
// All functions mutate node state in place and are synchronous, non-blocking
// pure computation. Callers are expected to invoke them from a single logical
// thread of control; in particular force ticks must be applied strictly in
// temporal order from one timer source. No condition here is fatal: the
// engine always produces some finite geometry rather than fail, because it
// runs inside an interactive render loop.
package layout
