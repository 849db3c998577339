// Package cli implements the canopy command-line interface.
//
// This package provides commands for computing diagram layouts from JSON
// documents, rendering them as images, exploring them interactively in the
// terminal, and serving the layout pipeline over HTTP. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute node placements for a diagram document
//   - render: Generate SVG, PNG, or DOT output from a computed layout
//   - view: Explore a diagram interactively (expand/collapse, algorithms)
//   - serve: Expose the layout pipeline as an HTTP API
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/buildinfo"
	"github.com/matzehuels/canopy/pkg/cache"
	"github.com/matzehuels/canopy/pkg/config"
	"github.com/matzehuels/canopy/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "canopy"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the user's
// config file loaded over the defaults. A broken config file is reported
// and replaced by defaults rather than aborting startup.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: config.Default(),
	}

	if path, err := config.DefaultPath(); err == nil {
		cfg, err := config.Load(path)
		if err != nil {
			c.Logger.Warn("ignoring config file", "path", path, "err", err)
		}
		c.Config = cfg
	}

	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "canopy",
		Short:        "Canopy lays out dynamic node-link diagrams",
		Long:         `Canopy is a layout engine and viewer for dynamic tree and graph diagrams: it computes stable, collision-free 2D placements for the visible part of a diagram, driven by per-node expand/collapse state.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, honoring the configured
// cache backend. Cache setup failures fall back to a disabled cache; the
// layout pipeline must keep working without one.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	r := pipeline.NewRunner(c.newCache(ctx, noCache), nil, c.Logger)
	r.TTL = c.cacheTTL()
	return r
}

func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache()
	}

	if c.Config.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: c.Config.Cache.RedisAddr,
			DB:   c.Config.Cache.RedisDB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return rc
	}

	dir, err := c.Config.Cache.CacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheTTL returns the configured cache entry lifetime.
func (c *CLI) cacheTTL() time.Duration {
	return time.Duration(c.Config.Cache.TTLHours) * time.Hour
}
