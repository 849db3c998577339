package graph

import (
	"testing"
)

// buildTree constructs a three-level tree:
//
//	root → a → a1, a2
//	root → b → b1
func buildTree(expanded map[string]bool) ([]*Node, []Edge) {
	ids := []string{"root", "a", "b", "a1", "a2", "b1"}
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		exp, ok := expanded[id]
		if !ok {
			exp = true
		}
		nodes[i] = &Node{ID: id, Expanded: exp}
	}
	edges := []Edge{
		{From: "root", To: "a"},
		{From: "root", To: "b"},
		{From: "a", To: "a1"},
		{From: "a", To: "a2"},
		{From: "b", To: "b1"},
	}
	return nodes, edges
}

func visibleIDs(nodes []*Node) map[string]bool {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}
	return ids
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name      string
		expanded  map[string]bool
		wantIDs   []string
		wantEdges int
	}{
		{
			name:      "AllExpanded",
			expanded:  nil,
			wantIDs:   []string{"root", "a", "b", "a1", "a2", "b1"},
			wantEdges: 5,
		},
		{
			name:      "CollapsedRootShowsOnlyRoot",
			expanded:  map[string]bool{"root": false},
			wantIDs:   []string{"root"},
			wantEdges: 0,
		},
		{
			name:      "CollapseRemovesExactlyItsSubtree",
			expanded:  map[string]bool{"a": false},
			wantIDs:   []string{"root", "a", "b", "b1"},
			wantEdges: 3,
		},
		{
			name: "ExpandedDescendantOfCollapsedAncestorStaysHidden",
			expanded: map[string]bool{
				"a":  false,
				"a1": true,
			},
			wantIDs:   []string{"root", "a", "b", "b1"},
			wantEdges: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, edges := buildTree(tt.expanded)
			idx := BuildIndex(nodes, edges)

			vis, visEdges := Visible(idx, edges)

			got := visibleIDs(vis)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("visible = %d nodes, want %d", len(got), len(tt.wantIDs))
			}
			for _, id := range tt.wantIDs {
				if !got[id] {
					t.Errorf("node %s should be visible", id)
				}
			}

			if len(visEdges) != tt.wantEdges {
				t.Errorf("edges = %d, want %d", len(visEdges), tt.wantEdges)
			}
			for _, e := range visEdges {
				if !got[e.From] || !got[e.To] {
					t.Errorf("edge %s→%s references hidden node", e.From, e.To)
				}
			}
		})
	}
}

func TestVisibleEmpty(t *testing.T) {
	idx := BuildIndex(nil, nil)
	nodes, edges := Visible(idx, nil)
	if nodes != nil || edges != nil {
		t.Errorf("Visible on empty index = %v, %v, want nil, nil", nodes, edges)
	}
}

func TestVisibleDiamondAppearsOnce(t *testing.T) {
	nodes := []*Node{
		{ID: "a", Expanded: true},
		{ID: "b", Expanded: true},
		{ID: "c", Expanded: true},
		{ID: "d", Expanded: true},
	}
	edges := []Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "d"},
		{From: "c", To: "d"},
	}
	idx := BuildIndex(nodes, edges)

	vis, visEdges := Visible(idx, edges)
	if len(vis) != 4 {
		t.Errorf("visible nodes = %d, want 4", len(vis))
	}
	if len(visEdges) != 4 {
		t.Errorf("visible edges = %d, want 4", len(visEdges))
	}

	counts := make(map[string]int)
	for _, n := range vis {
		counts[n.ID]++
	}
	if counts["d"] != 1 {
		t.Errorf("node d appears %d times, want 1", counts["d"])
	}
}

func TestResolveExpanded(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name     string
		override *bool
		def      *bool
		want     bool
	}{
		{"NothingSet", nil, nil, true},
		{"GlobalDefaultFalse", nil, &no, false},
		{"GlobalDefaultTrue", nil, &yes, true},
		{"OverrideWinsOverDefault", &yes, &no, true},
		{"OverrideFalseWinsOverDefaultTrue", &no, &yes, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveExpanded(tt.override, tt.def); got != tt.want {
				t.Errorf("ResolveExpanded = %v, want %v", got, tt.want)
			}
		})
	}
}
