// Package cli implements the slatedeck command-line interface.
//
// This package provides commands for editing slide layouts, deriving
// connections, rendering slides, and running the HTTP API server. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Apply layout mutations (resize, assign, span, unassign) to a slide file
//   - connections: Derive and display the connection set of a slide
//   - render: Generate SVG, DOT, PNG, or JSON outputs
//   - inspect: Print a slide's grid and statistics
//   - edit: Interactive terminal grid editor
//   - serve: Run the HTTP API server
//   - cache: Manage the derivation cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/slatedeck/slatedeck/pkg/buildinfo"
	"github.com/slatedeck/slatedeck/pkg/cache"
	"github.com/slatedeck/slatedeck/pkg/engine"
)

// appName is the application name used for directories and display.
const appName = "slatedeck"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "slatedeck",
		Short:        "Slatedeck arranges slide content on a grid",
		Long:         `Slatedeck is a CLI tool for building and editing teaching slides: content blocks are placed on a per-slide grid, spans and groups are derived into display connections, and slides render to SVG or Graphviz diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.connectionsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newEngine creates a layout engine for CLI use, backed by the file cache
// unless caching is disabled.
func (c *CLI) newEngine(noCache bool) (*engine.Engine, error) {
	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return engine.New(cch, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/slatedeck/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{engine.FormatSVG}
	}
	return strings.Split(s, ",")
}
