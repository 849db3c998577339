package graph

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/canopy/pkg/errors"
)

// =============================================================================
// Input Parsing - Two JSON Forms
// =============================================================================

// ParseDocument parses diagram input into a Document. Two forms are accepted:
//
// Hierarchical, edges implied parent→child:
//
//	{"expand_all": false,
//	 "root": {"id": "a", "label": "A", "children": [{"id": "b"}]}}
//
// Flat nodes-and-edges:
//
//	{"nodes": [{"id": "a"}, {"id": "b", "expanded": false}],
//	 "edges": [{"from": "a", "to": "b"}]}
//
// Each node's expansion state is initialized from the precedence chain
// implemented by [ResolveExpanded]: per-node "expanded" flag > document-level
// "expand_all" > expanded. Structural problems (missing or duplicate ids)
// are reported as coded errors; the layout core is never run on invalid data.
func ParseDocument(data []byte) (*Document, error) {
	var in inputJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse document JSON")
	}

	if in.Root != nil {
		if len(in.Nodes) > 0 || len(in.Edges) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "document mixes hierarchical root with flat nodes/edges")
		}
		return parseHierarchical(in.Root, in.ExpandAll)
	}
	return parseFlat(in)
}

// ReadDocumentFile reads and parses a document from a JSON file.
func ReadDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return ParseDocument(data)
}

// MarshalDocument serializes a Document to JSON bytes. Used for content
// hashing and API responses; the output round-trips through the flat form.
func MarshalDocument(d *Document) ([]byte, error) {
	return json.Marshal(d)
}

// =============================================================================
// JSON Shapes
// =============================================================================

type inputJSON struct {
	// Hierarchical form
	Root *treeNodeJSON `json:"root,omitempty"`

	// Flat form
	Nodes []flatNodeJSON `json:"nodes,omitempty"`
	Edges []Edge         `json:"edges,omitempty"`

	// ExpandAll is the document-level expansion default.
	ExpandAll *bool `json:"expand_all,omitempty"`
}

type flatNodeJSON struct {
	ID       string  `json:"id"`
	Label    string  `json:"label,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Expanded *bool   `json:"expanded,omitempty"`
}

type treeNodeJSON struct {
	ID       string         `json:"id"`
	Label    string         `json:"label,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Expanded *bool          `json:"expanded,omitempty"`
	Children []treeNodeJSON `json:"children,omitempty"`
}

// =============================================================================
// Form Builders
// =============================================================================

func parseFlat(in inputJSON) (*Document, error) {
	doc := &Document{}
	seen := make(map[string]bool, len(in.Nodes))
	for _, nj := range in.Nodes {
		if err := errors.ValidateNodeID(nj.ID); err != nil {
			return nil, err
		}
		if seen[nj.ID] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", nj.ID)
		}
		seen[nj.ID] = true
		doc.Nodes = append(doc.Nodes, &Node{
			ID:               nj.ID,
			Label:            nj.Label,
			Footprint:        Size{Width: nj.Width, Height: nj.Height},
			Expanded:         ResolveExpanded(nj.Expanded, in.ExpandAll),
			ExpandedOverride: nj.Expanded,
		})
	}
	doc.Edges = append(doc.Edges, in.Edges...)
	return doc, nil
}

func parseHierarchical(root *treeNodeJSON, expandAll *bool) (*Document, error) {
	doc := &Document{}
	seen := make(map[string]bool)

	var walk func(tn *treeNodeJSON) error
	walk = func(tn *treeNodeJSON) error {
		if err := errors.ValidateNodeID(tn.ID); err != nil {
			return err
		}
		if seen[tn.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", tn.ID)
		}
		seen[tn.ID] = true

		n := &Node{
			ID:               tn.ID,
			Label:            tn.Label,
			Footprint:        Size{Width: tn.Width, Height: tn.Height},
			Expanded:         ResolveExpanded(tn.Expanded, expandAll),
			ExpandedOverride: tn.Expanded,
		}
		doc.Nodes = append(doc.Nodes, n)

		for i := range tn.Children {
			child := &tn.Children[i]
			n.ChildrenIDs = append(n.ChildrenIDs, child.ID)
			doc.Edges = append(doc.Edges, Edge{From: tn.ID, To: child.ID})
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return doc, nil
}
