package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/render"
)

// renderCommand creates the render command for producing image artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed layout to SVG, PNG, or DOT",
		Long: `Render a computed layout to SVG, PNG, or DOT.

The render command takes a layout.json file (produced by 'layout') and
transcribes it into the requested format. Node positions are pinned, so
Graphviz only draws boxes and edge curves on top of the engine's geometry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !render.ValidFormats[format] {
				return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (supported: %s)", format, render.FormatList())
			}
			return c.runRender(cmd.Context(), args[0], format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include placement coordinates in labels")

	return cmd
}

// runRender loads the layout and writes the rendered artifact.
func (c *CLI) runRender(ctx context.Context, input, format, output string, detailed bool) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	dot := render.ToDOT(l, render.Options{Detailed: detailed})

	p := newProgress(loggerFromContext(ctx))
	var artifact []byte
	switch format {
	case "dot":
		artifact = []byte(dot)
	case "svg":
		artifact, err = render.RenderSVG(dot)
	case "png":
		artifact, err = render.RenderPNG(dot)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	p.done(fmt.Sprintf("Rendered %d placements", len(l.Placements)))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}
	if err := os.WriteFile(outputPath, artifact, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Render complete")
	printFile(outputPath)
	return nil
}
