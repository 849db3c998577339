// Package render turns computed layout documents into image artifacts.
//
// The layout engine owns geometry; this package only transcribes it. A
// [graph.Layout] is exported to Graphviz DOT with every node's position
// pinned (neato "pos=x,y!" semantics), so Graphviz draws boxes and edge
// curves without re-running any placement of its own. The DOT string can
// then be rendered to SVG or PNG via goccy/go-graphviz.
package render
