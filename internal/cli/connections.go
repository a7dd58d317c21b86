package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/slatedeck/slatedeck/pkg/grid/connect"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

// connectionsCommand creates the connections command for deriving display
// connections from a slide's geometry.
func (c *CLI) connectionsCommand() *cobra.Command {
	var (
		noCache bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "connections [slide.json]",
		Short: "Derive the display connections of a slide",
		Long: `Derive the display connections of a slide.

Connections are pure derivations of the slide's grid geometry and block
groups: blocks spanning multiple cells produce span connections, blocks
sharing a group produce a chain of group connections in reading order.

Results are cached locally; an unchanged slide is served from cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConnections(cmd.Context(), args[0], noCache, asJSON)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print connections as JSON")

	return cmd
}

func (c *CLI) runConnections(ctx context.Context, input string, noCache, asJSON bool) error {
	s, err := slide.ReadSlideFile(input)
	if err != nil {
		return fmt.Errorf("load slide %s: %w", input, err)
	}

	eng, err := c.newEngine(noCache)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	prog := newProgress(c.Logger)
	conns, cached, err := eng.Connections(ctx, s)
	if err != nil {
		return fmt.Errorf("derive connections: %w", err)
	}
	prog.done(fmt.Sprintf("Derived %d connections", len(conns)))

	if asJSON {
		return printConnectionsJSON(os.Stdout, conns)
	}

	printSuccess("Connections for %s", displayTitle(s))
	printStats(len(s.Blocks), len(conns), cached)
	printNewline()
	for _, conn := range conns {
		switch conn.Kind {
		case connect.KindSpan:
			printDetail("span   %s", blockLabel(s, conn.From))
		case connect.KindGroup:
			printDetail("group  %s %s %s", blockLabel(s, conn.From), iconArrow, blockLabel(s, conn.To))
		}
	}
	if len(conns) == 0 {
		printDetail("none")
	}
	return nil
}

func printConnectionsJSON(w io.Writer, conns []connect.Connection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(conns)
}

func displayTitle(s slide.Slide) string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// blockLabel renders a block as "title (id)" or just the ID when the
// block is untitled or unknown.
func blockLabel(s slide.Slide, id string) string {
	if b, ok := s.Block(id); ok && b.Title != "" {
		return fmt.Sprintf("%s (%s)", b.Title, shortID(id))
	}
	return shortID(id)
}

// shortID truncates UUID-length identifiers for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
