package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/canopy/pkg/graph"
)

func TestCenteringOffset(t *testing.T) {
	canvas := graph.Size{Width: 800, Height: 600}

	tests := []struct {
		name   string
		nodes  []*graph.Node
		want   graph.Point
		wantOK bool
	}{
		{
			name:   "Empty",
			wantOK: false,
		},
		{
			name: "SingleNodeOffCenter",
			nodes: []*graph.Node{
				{ID: "a", Position: graph.Point{X: 100, Y: 100}},
			},
			want:   graph.Point{X: 300, Y: 200},
			wantOK: true,
		},
		{
			name: "AlreadyCentered",
			nodes: []*graph.Node{
				{ID: "a", Position: graph.Point{X: 400, Y: 300}},
			},
			want:   graph.Point{},
			wantOK: true,
		},
		{
			name: "PairBoundingBox",
			nodes: []*graph.Node{
				{ID: "a", Position: graph.Point{X: 0, Y: 0}},
				{ID: "b", Position: graph.Point{X: 200, Y: 100}},
			},
			// Bounding box center is the midpoint of the pair; footprints are
			// symmetric so they cancel.
			want:   graph.Point{X: 300, Y: 250},
			wantOK: true,
		},
		{
			name: "NonFinitePosition",
			nodes: []*graph.Node{
				{ID: "a", Position: graph.Point{X: math.NaN(), Y: 0}},
			},
			wantOK: false,
		},
		{
			name: "InfinitePosition",
			nodes: []*graph.Node{
				{ID: "a", Position: graph.Point{X: math.Inf(1), Y: 0}},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CenteringOffset(tt.nodes, canvas)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("offset = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	nodes := []*graph.Node{
		{ID: "a", Position: graph.Point{X: 0, Y: 0}, Footprint: graph.Size{Width: 100, Height: 60}},
		{ID: "b", Position: graph.Point{X: 300, Y: 200}, Footprint: graph.Size{Width: 200, Height: 100}},
	}

	min, max, ok := Bounds(nodes)
	if !ok {
		t.Fatal("Bounds returned not ok")
	}

	if min != (graph.Point{X: -50, Y: -30}) {
		t.Errorf("min = %+v, want {-50 -30}", min)
	}
	if max != (graph.Point{X: 400, Y: 250}) {
		t.Errorf("max = %+v, want {400 250}", max)
	}
}

func TestBoundsUsesDefaultFootprint(t *testing.T) {
	nodes := []*graph.Node{{ID: "a", Position: graph.Point{X: 100, Y: 100}}}

	min, max, ok := Bounds(nodes)
	if !ok {
		t.Fatal("Bounds returned not ok")
	}

	def := graph.DefaultFootprint()
	if max.X-min.X != def.Width || max.Y-min.Y != def.Height {
		t.Errorf("box = %vx%v, want %vx%v", max.X-min.X, max.Y-min.Y, def.Width, def.Height)
	}
}
