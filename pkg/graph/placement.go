package graph

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/canopy/pkg/errors"
)

// =============================================================================
// Layout - Serialized Placement Document
// =============================================================================

// Layout is the serialization format for a computed layout: the final
// position and footprint of every visible node plus the visible edge set.
// It is what the render command and the HTTP API emit, and what external
// renderers consume.
type Layout struct {
	// Algorithm that produced the placements ("tree", "bidirectional",
	// "force").
	Algorithm string `json:"algorithm"`

	// Canvas dimensions the layout was computed for.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Offset is the camera translation that centers the layout's bounding
	// box in the canvas. How the offset is approached (jump or smoothed)
	// is the animation driver's concern.
	Offset Point `json:"offset"`

	Placements []Placement `json:"placements"`
	Edges      []Edge      `json:"edges,omitempty"`
}

// Placement is a positioned node in a layout document. X and Y are the node
// center; the box spans position ± half the footprint per axis.
type Placement struct {
	ID       string  `json:"id"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Expanded bool    `json:"expanded"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if len(l.Placements) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout contains no placements")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
