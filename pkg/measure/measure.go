// Package measure supplies node footprints to the layout engine.
//
// Layout algorithms treat a node's footprint as read-only input; this
// package is the collaborator that produces it. [Text] derives a box from
// the display label using terminal cell metrics, and [Memoized] caches
// results per node id so a footprint is computed once and reused until
// explicitly invalidated - never recomputed mid-layout.
package measure

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/canopy/pkg/graph"
)

// Measurer computes the visual footprint for a node.
type Measurer interface {
	Measure(n *graph.Node) graph.Size
}

// =============================================================================
// Text - Label-Based Measurement
// =============================================================================

// Default cell metrics for label measurement, in layout units.
const (
	DefaultCellWidth  = 9.0
	DefaultLineHeight = 20.0
	DefaultPaddingX   = 16.0
	DefaultPaddingY   = 12.0
)

// Text measures nodes from their display label using lipgloss cell metrics
// (ANSI-aware width and line count), scaled to layout units with padding.
// The zero value is not usable; construct with [NewText].
type Text struct {
	CellWidth  float64
	LineHeight float64
	PaddingX   float64
	PaddingY   float64
}

// NewText creates a text measurer with the default cell metrics.
func NewText() *Text {
	return &Text{
		CellWidth:  DefaultCellWidth,
		LineHeight: DefaultLineHeight,
		PaddingX:   DefaultPaddingX,
		PaddingY:   DefaultPaddingY,
	}
}

// Measure returns the footprint for n's display label. An empty label falls
// back to the default footprint so geometry never sees a zero extent.
func (t *Text) Measure(n *graph.Node) graph.Size {
	label := n.DisplayLabel()
	if label == "" {
		return graph.DefaultFootprint()
	}
	w := float64(lipgloss.Width(label))*t.CellWidth + 2*t.PaddingX
	h := float64(lipgloss.Height(label))*t.LineHeight + 2*t.PaddingY
	if w < graph.DefaultNodeWidth {
		w = graph.DefaultNodeWidth
	}
	if h < graph.DefaultNodeHeight {
		h = graph.DefaultNodeHeight
	}
	return graph.Size{Width: w, Height: h}
}

// =============================================================================
// Memoized - Per-Node Caching
// =============================================================================

// Memoized wraps a Measurer with a per-node-id cache. Safe for use from the
// single UI thread the engine assumes; the mutex only covers reuse from a
// background HTTP handler.
type Memoized struct {
	inner Measurer

	mu    sync.Mutex
	sizes map[string]graph.Size
}

// NewMemoized wraps the given measurer with memoization. A nil inner
// measurer defaults to [NewText].
func NewMemoized(inner Measurer) *Memoized {
	if inner == nil {
		inner = NewText()
	}
	return &Memoized{inner: inner, sizes: make(map[string]graph.Size)}
}

// Measure returns the cached footprint for n, computing it on first use.
func (m *Memoized) Measure(n *graph.Node) graph.Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sizes[n.ID]; ok {
		return s
	}
	s := m.inner.Measure(n)
	m.sizes[n.ID] = s
	return s
}

// Invalidate drops the cached footprint for a single node, forcing
// recomputation on next use (e.g. after a label edit).
func (m *Memoized) Invalidate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sizes, id)
}

// Reset drops all cached footprints. Called on data reload.
func (m *Memoized) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizes = make(map[string]graph.Size)
}

// Apply measures every node in the document that does not already carry a
// footprint and writes the result onto the node. Nodes with an explicit
// input footprint keep it.
func Apply(m Measurer, doc *graph.Document) {
	for _, n := range doc.Nodes {
		if n.Footprint.IsZero() {
			n.Footprint = m.Measure(n)
		}
	}
}
