// Package pipeline provides the core computation pipeline for canopy.
//
// This package implements the parse → index → visibility → layout →
// overlap → center sequence that the CLI, the interactive viewer, and the
// HTTP API all share. Centralizing it keeps behavior consistent across
// entry points and gives caching a single home.
//
// # Usage
//
// Create a Runner and compute a layout:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//	opts := pipeline.Options{Algorithm: "tree"}
//	result, err := runner.Compute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	graph.WriteLayoutFile(result.Layout, "out.layout.json")
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canopy/pkg/cache"
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI, and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultSeed is the default random seed for reproducible force runs.
	DefaultSeed = uint64(42)

	// DefaultTicks is the number of force relaxation steps in batch mode.
	// Interactive callers ignore it and tick on a timer instead.
	DefaultTicks = 300
)

// DefaultAlgorithm is the default layout algorithm.
const DefaultAlgorithm = layout.AlgorithmTree

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a layout computation.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Algorithm selects the layout: tree, bidirectional, force.
	Algorithm string `json:"algorithm,omitempty"`

	// Canvas dimensions.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Seed for the force engine's initial placement.
	Seed uint64 `json:"seed,omitempty"`

	// Ticks is the number of force relaxation steps in batch mode.
	Ticks int `json:"ticks,omitempty"`

	// SkipOverlap disables the post-layout overlap resolution pass.
	SkipOverlap bool `json:"skip_overlap,omitempty"`

	// SkipCenter disables the viewport centering offset computation.
	SkipCenter bool `json:"skip_center,omitempty"`

	// Params tunes the layout algorithms. The zero value means "use the
	// defaults" (or whatever the config file provides).
	Params layout.Params `json:"params,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults validates the options and fills in defaults.
// Safe to call more than once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if !layout.ValidAlgorithms[o.Algorithm] {
		return errors.New(errors.ErrCodeInvalidAlgorithm, "unknown layout algorithm %q", o.Algorithm)
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Ticks == 0 {
		o.Ticks = DefaultTicks
	}
	if o.Ticks < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ticks must be non-negative, got %d", o.Ticks)
	}
	if (o.Params == layout.Params{}) {
		o.Params = layout.DefaultParams()
	}

	o.validated = true
	return nil
}

// keyOpts projects the options onto the fields that affect cache identity.
func (o *Options) keyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm: o.Algorithm,
		Width:     o.Width,
		Height:    o.Height,
		Seed:      o.Seed,
		Ticks:     o.Ticks,
		Overlap:   !o.SkipOverlap,
		Center:    !o.SkipCenter,
	}
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed placement document.
	Layout graph.Layout

	// GraphHash is the content hash of the input document.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the layout came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	VisibleNodes int
	VisibleEdges int
	LayoutTime   time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	LayoutHit bool
}
