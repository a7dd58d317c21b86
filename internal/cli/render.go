package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slatedeck/slatedeck/pkg/slide"
)

// renderCommand creates the render command for generating slide artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [slide.json]",
		Short: "Render a slide to SVG, DOT, PNG, or JSON",
		Long: `Render a slide to one or more output formats.

Formats:
  svg   the slide grid with blocks and connection lines
  dot   the connection set as a Graphviz digraph
  png   the connection digraph rasterized with Graphviz
  json  the slide document itself

Artifacts are cached locally; an unchanged slide renders from cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], parseFormats(formats), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated output formats: svg, dot, png, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: alongside input)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, formats []string, output string, noCache bool) error {
	s, err := slide.ReadSlideFile(input)
	if err != nil {
		return fmt.Errorf("load slide %s: %w", input, err)
	}

	eng, err := c.newEngine(noCache)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
	spinner.Start()

	artifacts, cached, err := eng.Render(ctx, s, formats)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	dir := output
	if dir == "" {
		dir = filepath.Dir(input)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	printSuccess("Rendered %s", displayTitle(s))
	for _, f := range formats {
		path := filepath.Join(dir, base+"."+f)
		if err := os.WriteFile(path, artifacts[f], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(s.Blocks), -1, cached)

	return nil
}
