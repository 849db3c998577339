// Package graph defines the core data model for canopy diagrams: nodes,
// edges, derived lookup structures, and the expansion-gated visible subgraph.
//
// # Data model
//
// A [Document] is a flat list of nodes and directed edges, parsed from one of
// two JSON input forms (see [ParseDocument]). Node positions and velocities
// are mutable and owned by whichever layout algorithm last ran; everything
// else is input data.
//
// # Derived structure
//
// [BuildIndex] derives lookup structures from a document: node-by-id,
// children-by-id (built strictly from edges, preserving insertion order and
// dropping duplicates), and the root set (nodes with no incoming edge).
// Edges naming unknown nodes are silently excluded - a malformed reference
// must never take down the layout engine.
//
// [Visible] computes the currently visible subgraph by breadth-first
// traversal from the roots, descending only through expanded nodes. A
// collapsed node hides its entire subtree, even when a descendant is itself
// marked expanded.
//
// # Lifecycle
//
// Index and visibility structures are cheap and rebuilt wholesale on any
// change. Positions and velocities persist across expand/collapse so the
// surviving subtree does not jump; they are reset only on a data reload.
package graph
