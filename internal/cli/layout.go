package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [document.json]",
		Short: "Compute node placements for a diagram document",
		Long: `Compute node placements for a diagram document.

The layout command takes a document.json file (hierarchical or flat
nodes-and-edges form), derives the visible subgraph from the expansion
state, and computes positions with the selected algorithm. The output is a
layout.json file that can be rendered with the 'render' command.

Algorithms: tree (default), bidirectional, force. The force algorithm runs
a fixed number of relaxation ticks in batch mode; use 'view' for the live
simulation.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", pipeline.DefaultAlgorithm, "layout algorithm: tree (default), bidirectional, force")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "random seed for force placement")
	cmd.Flags().IntVar(&opts.Ticks, "ticks", pipeline.DefaultTicks, "force relaxation steps")
	cmd.Flags().BoolVar(&opts.SkipOverlap, "no-overlap", false, "skip overlap resolution")
	cmd.Flags().BoolVar(&opts.SkipCenter, "no-center", false, "skip viewport centering")

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := graph.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Params = c.Config.Layout

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Algorithm))
	spinner.Start()

	result, err := runner.Compute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.VisibleNodes, result.Stats.VisibleEdges, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", "canopy render "+outputPath)

	return nil
}
