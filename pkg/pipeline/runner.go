package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canopy/pkg/cache"
	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/layout"
	"github.com/matzehuels/canopy/pkg/measure"
	"github.com/matzehuels/canopy/pkg/observability"
)

// Runner encapsulates pipeline execution with caching. CLI, TUI, and API
// share one implementation to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, measurer, and logger - it
// doesn't store pipeline results between calls.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Measurer measure.Measurer
	Logger   *log.Logger

	// TTL bounds cache entry lifetime; zero stores without expiration.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Measurer: measure.NewMemoized(nil),
		Logger:   logger,
	}
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Compute runs the full pipeline on a parsed document: measure footprints,
// derive the visible subgraph, run the selected layout, resolve overlaps,
// and compute the centering offset. Results are cached by content hash of
// the document plus the options that shaped the layout.
//
// Compute mutates node positions in the document; a cache hit leaves them
// untouched and returns the cached placement document.
func (r *Runner) Compute(ctx context.Context, doc *graph.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{
		Stats: Stats{NodeCount: len(doc.Nodes), EdgeCount: len(doc.Edges)},
	}

	data, err := graph.MarshalDocument(doc)
	if err == nil {
		result.GraphHash = cache.Hash(data)
	}

	key := r.Keyer.LayoutKey(result.GraphHash, opts.keyOpts())
	if result.GraphHash != "" {
		if cached, found, err := r.Cache.Get(ctx, key); err == nil && found {
			if l, err := graph.UnmarshalLayout(cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Layout = l
				result.Stats.VisibleNodes = len(l.Placements)
				result.Stats.VisibleEdges = len(l.Edges)
				result.CacheInfo.LayoutHit = true
				logger.Debug("layout cache hit", "key", key)
				return result, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	measure.Apply(r.Measurer, doc)

	idx := graph.BuildIndex(doc.Nodes, doc.Edges)
	visNodes, visEdges := graph.Visible(idx, doc.Edges)
	observability.Engine().OnVisibilityResolved(ctx, len(visNodes), len(visEdges))
	result.Stats.VisibleNodes = len(visNodes)
	result.Stats.VisibleEdges = len(visEdges)

	canvas := graph.Size{Width: opts.Width, Height: opts.Height}
	engine, err := layout.New(opts.Algorithm, opts.Params, opts.Seed)
	if err != nil {
		return nil, err
	}

	observability.Engine().OnLayoutStart(ctx, opts.Algorithm, len(visNodes))
	if opts.Algorithm == layout.AlgorithmForce {
		tickStart := time.Now()
		for i := 0; i < opts.Ticks; i++ {
			engine.Layout(visNodes, visEdges, canvas)
		}
		observability.Engine().OnTicks(ctx, opts.Ticks, time.Since(tickStart))
	} else {
		engine.Layout(visNodes, visEdges, canvas)
	}

	if !opts.SkipOverlap {
		overlapStart := time.Now()
		layout.ResolveOverlaps(visNodes, opts.Params)
		observability.Engine().OnOverlapResolved(ctx, len(visNodes), time.Since(overlapStart))
	}

	var offset graph.Point
	if !opts.SkipCenter {
		offset, _ = layout.CenteringOffset(visNodes, canvas)
	}

	result.Layout = buildLayout(opts, visNodes, visEdges, offset)
	result.Stats.LayoutTime = time.Since(start)
	observability.Engine().OnLayoutComplete(ctx, opts.Algorithm, result.Stats.LayoutTime, nil)

	logger.Info("computed layout",
		"algorithm", opts.Algorithm,
		"visible", len(visNodes),
		"duration", result.Stats.LayoutTime)

	if result.GraphHash != "" {
		if data, err := graph.MarshalLayout(result.Layout); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.TTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return result, nil
}

// ComputeFromBytes parses raw document JSON and computes its layout. Used by
// the HTTP API and batch CLI where input arrives as bytes.
func (r *Runner) ComputeFromBytes(ctx context.Context, data []byte, opts Options) (*Result, error) {
	doc, err := graph.ParseDocument(data)
	observability.Engine().OnParseComplete(ctx, docNodeCount(doc), docEdgeCount(doc), err)
	if err != nil {
		return nil, err
	}
	return r.Compute(ctx, doc, opts)
}

func buildLayout(opts Options, nodes []*graph.Node, edges []graph.Edge, offset graph.Point) graph.Layout {
	l := graph.Layout{
		Algorithm:  opts.Algorithm,
		Width:      opts.Width,
		Height:     opts.Height,
		Offset:     offset,
		Placements: make([]graph.Placement, len(nodes)),
		Edges:      edges,
	}
	for i, n := range nodes {
		ext := n.Extent()
		l.Placements[i] = graph.Placement{
			ID:       n.ID,
			Label:    n.DisplayLabel(),
			X:        n.Position.X,
			Y:        n.Position.Y,
			Width:    ext.Width,
			Height:   ext.Height,
			Expanded: n.Expanded,
		}
	}
	return l
}

func docNodeCount(d *graph.Document) int {
	if d == nil {
		return 0
	}
	return len(d.Nodes)
}

func docEdgeCount(d *graph.Document) int {
	if d == nil {
		return 0
	}
	return len(d.Edges)
}
