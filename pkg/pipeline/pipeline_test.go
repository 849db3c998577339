package pipeline

import (
	"context"
	"testing"

	"github.com/matzehuels/canopy/pkg/cache"
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/layout"
)

func testDocument() *graph.Document {
	return &graph.Document{
		Nodes: []*graph.Node{
			{ID: "root", Label: "Root", Expanded: true},
			{ID: "a", Expanded: true},
			{ID: "b", Expanded: false},
			{ID: "b1", Expanded: true},
		},
		Edges: []graph.Edge{
			{From: "root", To: "a"},
			{From: "root", To: "b"},
			{From: "b", To: "b1"},
		},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Algorithm != DefaultAlgorithm {
		t.Errorf("algorithm = %q, want %q", opts.Algorithm, DefaultAlgorithm)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("canvas = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if opts.Params != layout.DefaultParams() {
		t.Errorf("params = %+v, want defaults", opts.Params)
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "UnknownAlgorithm",
			opts:     Options{Algorithm: "radial"},
			wantCode: errors.ErrCodeInvalidAlgorithm,
		},
		{
			name:     "NegativeWidth",
			opts:     Options{Width: -10, Height: 100},
			wantCode: errors.ErrCodeInvalidCanvas,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetCode(err) != tt.wantCode {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestComputeTree(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	doc := testDocument()

	result, err := r.Compute(context.Background(), doc, Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if result.Stats.NodeCount != 4 || result.Stats.EdgeCount != 3 {
		t.Errorf("document stats = %+v", result.Stats)
	}
	// b is collapsed, so b1 is hidden.
	if result.Stats.VisibleNodes != 3 {
		t.Errorf("visible nodes = %d, want 3", result.Stats.VisibleNodes)
	}
	if result.Stats.VisibleEdges != 2 {
		t.Errorf("visible edges = %d, want 2", result.Stats.VisibleEdges)
	}

	if result.Layout.Algorithm != layout.AlgorithmTree {
		t.Errorf("algorithm = %q, want tree", result.Layout.Algorithm)
	}
	if len(result.Layout.Placements) != 3 {
		t.Fatalf("placements = %d, want 3", len(result.Layout.Placements))
	}
	for _, p := range result.Layout.Placements {
		if p.ID == "b1" {
			t.Error("hidden node b1 should have no placement")
		}
		if p.Width <= 0 || p.Height <= 0 {
			t.Errorf("placement %s has degenerate footprint %vx%v", p.ID, p.Width, p.Height)
		}
	}
	if result.GraphHash == "" {
		t.Error("graph hash should be populated")
	}
	if result.CacheInfo.LayoutHit {
		t.Error("first compute should not be a cache hit")
	}
}

func TestComputeForceIsReproducible(t *testing.T) {
	run := func() graph.Layout {
		r := NewRunner(nil, nil, nil)
		result, err := r.Compute(context.Background(), testDocument(), Options{
			Algorithm: layout.AlgorithmForce,
			Seed:      7,
			Ticks:     50,
		})
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		return result.Layout
	}

	first := run()
	second := run()
	if len(first.Placements) != len(second.Placements) {
		t.Fatalf("placement counts differ: %d vs %d", len(first.Placements), len(second.Placements))
	}
	for i := range first.Placements {
		if first.Placements[i] != second.Placements[i] {
			t.Errorf("placement %d differs: %+v vs %+v", i, first.Placements[i], second.Placements[i])
		}
	}
}

func TestComputeCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	first, err := r.Compute(ctx, testDocument(), Options{})
	if err != nil {
		t.Fatalf("first Compute: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Fatal("first compute should miss")
	}

	second, err := r.Compute(ctx, testDocument(), Options{})
	if err != nil {
		t.Fatalf("second Compute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Fatal("second compute should hit the cache")
	}
	if second.Stats.VisibleNodes != first.Stats.VisibleNodes {
		t.Errorf("cached visible nodes = %d, want %d", second.Stats.VisibleNodes, first.Stats.VisibleNodes)
	}
	if len(second.Layout.Placements) != len(first.Layout.Placements) {
		t.Errorf("cached placements = %d, want %d", len(second.Layout.Placements), len(first.Layout.Placements))
	}
}

func TestComputeOptionsChangeCacheKey(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	if _, err := r.Compute(ctx, testDocument(), Options{}); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	other, err := r.Compute(ctx, testDocument(), Options{Algorithm: layout.AlgorithmBidirectional})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if other.CacheInfo.LayoutHit {
		t.Error("different algorithm should not hit the tree cache entry")
	}
}

func TestComputeFromBytes(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	result, err := r.ComputeFromBytes(context.Background(), []byte(`{
		"nodes": [{"id": "a"}, {"id": "b"}],
		"edges": [{"from": "a", "to": "b"}]
	}`), Options{})
	if err != nil {
		t.Fatalf("ComputeFromBytes: %v", err)
	}
	if len(result.Layout.Placements) != 2 {
		t.Errorf("placements = %d, want 2", len(result.Layout.Placements))
	}

	if _, err := r.ComputeFromBytes(context.Background(), []byte(`{bad`), Options{}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestComputeSkipCenter(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	result, err := r.Compute(context.Background(), testDocument(), Options{SkipCenter: true})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Layout.Offset != (graph.Point{}) {
		t.Errorf("offset = %+v, want zero with centering skipped", result.Layout.Offset)
	}
}
