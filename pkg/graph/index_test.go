package graph

import (
	"reflect"
	"testing"
)

func nodeSet(ids ...string) []*Node {
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = &Node{ID: id, Expanded: true}
	}
	return nodes
}

func TestBuildIndex(t *testing.T) {
	tests := []struct {
		name         string
		nodes        []*Node
		edges        []Edge
		wantRoots    []string
		wantChildren map[string][]string
	}{
		{
			name:      "Empty",
			wantRoots: nil,
		},
		{
			name:      "SingleNode",
			nodes:     nodeSet("a"),
			wantRoots: []string{"a"},
		},
		{
			name:      "Chain",
			nodes:     nodeSet("a", "b", "c"),
			edges:     []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}},
			wantRoots: []string{"a"},
			wantChildren: map[string][]string{
				"a": {"b"},
				"b": {"c"},
			},
		},
		{
			name:      "MultipleRoots",
			nodes:     nodeSet("a", "b", "c"),
			edges:     []Edge{{From: "a", To: "c"}},
			wantRoots: []string{"a", "b"},
			wantChildren: map[string][]string{
				"a": {"c"},
			},
		},
		{
			name:  "DuplicateEdgesDeduplicated",
			nodes: nodeSet("a", "b"),
			edges: []Edge{
				{From: "a", To: "b"},
				{From: "a", To: "b"},
			},
			wantRoots: []string{"a"},
			wantChildren: map[string][]string{
				"a": {"b"},
			},
		},
		{
			name:  "UnknownEndpointDropped",
			nodes: nodeSet("a"),
			edges: []Edge{
				{From: "a", To: "ghost"},
				{From: "ghost", To: "a"},
			},
			wantRoots: []string{"a"},
		},
		{
			name:      "CycleFallsBackToFirstNode",
			nodes:     nodeSet("a", "b"),
			edges:     []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
			wantRoots: []string{"a"},
		},
		{
			name:  "ChildOrderFollowsEdgeOrder",
			nodes: nodeSet("p", "x", "y", "z"),
			edges: []Edge{
				{From: "p", To: "z"},
				{From: "p", To: "x"},
				{From: "p", To: "y"},
			},
			wantRoots: []string{"p"},
			wantChildren: map[string][]string{
				"p": {"z", "x", "y"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildIndex(tt.nodes, tt.edges)

			if !reflect.DeepEqual(idx.Roots, tt.wantRoots) {
				t.Errorf("Roots = %v, want %v", idx.Roots, tt.wantRoots)
			}

			for id, want := range tt.wantChildren {
				if got := idx.Children[id]; !reflect.DeepEqual(got, want) {
					t.Errorf("Children[%s] = %v, want %v", id, got, want)
				}
			}

			if len(idx.ByID) != len(tt.nodes) {
				t.Errorf("ByID size = %d, want %d", len(idx.ByID), len(tt.nodes))
			}
		})
	}
}

func TestBuildIndexSharesNodePointers(t *testing.T) {
	nodes := nodeSet("a")
	idx := BuildIndex(nodes, nil)

	idx.ByID["a"].Position = Point{X: 3, Y: 4}
	if nodes[0].Position != (Point{X: 3, Y: 4}) {
		t.Error("index should reference the original nodes, not copies")
	}
}
