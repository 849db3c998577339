package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/canopy/pkg/graph"
)

// Graphviz measures node sizes in inches and positions in points.
const pointsPerInch = 72.0

// Options configures DOT export.
type Options struct {
	// Detailed includes the placement coordinates in node labels.
	Detailed bool
}

// ToDOT converts a layout document to Graphviz DOT with pinned positions.
// Every node carries pos="x,y!" so neato keeps the engine's placement; the y
// axis is flipped because Graphviz grows upward while layouts grow downward.
// The centering offset is baked into the emitted coordinates.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, p := range l.Placements {
		label := fmtLabel(p, opts.Detailed)
		x := p.X + l.Offset.X
		y := l.Height - (p.Y + l.Offset.Y)
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.2f,%.2f!\", width=%.3f, height=%.3f%s];\n",
			p.ID, label, x, y, p.Width/pointsPerInch, p.Height/pointsPerInch, collapsedAttrs(p))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p graph.Placement, detailed bool) string {
	label := p.Label
	if label == "" {
		label = p.ID
	}
	if !detailed {
		return label
	}
	return label + "\n" + fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
}

// collapsedAttrs renders collapsed nodes dashed so a viewer can tell that a
// subtree is hidden behind them.
func collapsedAttrs(p graph.Placement) string {
	if p.Expanded {
		return ""
	}
	return `, style="rounded,filled,dashed", fillcolor=lightgrey`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidFormats is the set of supported render output formats.
var ValidFormats = map[string]bool{
	"svg": true,
	"png": true,
	"dot": true,
}

// FormatList returns the supported formats for help text.
func FormatList() string {
	return strings.Join([]string{"svg", "png", "dot"}, ", ")
}
