package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slatedeck/slatedeck/pkg/slide"
)

// inspectCommand creates the inspect command for examining slide files.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [slide.json]",
		Short: "Print a slide's grid, blocks, and connection summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := slide.ReadSlideFile(args[0])
			if err != nil {
				return fmt.Errorf("load slide %s: %w", args[0], err)
			}
			printSlide(s)
			return nil
		},
	}
	return cmd
}

func printSlide(s slide.Slide) {
	fmt.Println(StyleTitle.Render(displayTitle(s)))
	printKeyValue("grid", fmt.Sprintf("%dx%d", s.Layout.Rows, s.Layout.Columns))
	printKeyValue("blocks", fmt.Sprintf("%d (%d placed)", len(s.Blocks), len(s.Layout.Positions)))
	printNewline()

	fmt.Println(renderGridASCII(s))

	unplaced := unplacedBlocks(s)
	if len(unplaced) > 0 {
		printNewline()
		printInfo("Unassigned blocks")
		for _, b := range unplaced {
			printDetail("%s  %s", b.Kind, blockLabel(s, b.ID))
		}
	}

	conns := s.Connections()
	printNewline()
	printInfo("%d connections", len(conns))
	for _, conn := range conns {
		printDetail("%-5s  %s %s %s", conn.Kind, blockLabel(s, conn.From), iconArrow, blockLabel(s, conn.To))
	}
}

// renderGridASCII draws the grid one cell per column, marking each cell
// with the occupying block's display character. Cells covered by a span
// repeat the origin's character; empty cells show a dot.
func renderGridASCII(s slide.Slide) string {
	chars := blockChars(s)

	var b strings.Builder
	for row := 0; row < s.Layout.Rows; row++ {
		b.WriteString("  ")
		for col := 0; col < s.Layout.Columns; col++ {
			ch := "·"
			for _, id := range s.BlockIDs() {
				if r, ok := s.Layout.RectOf(id); ok && r.Contains(row, col) {
					ch = chars[id]
					break
				}
			}
			if ch == "·" {
				b.WriteString(StyleDim.Render(ch))
			} else {
				b.WriteString(StyleHighlight.Render(ch))
			}
			if col < s.Layout.Columns-1 {
				b.WriteString(" ")
			}
		}
		if row < s.Layout.Rows-1 {
			b.WriteString("\n")
		}
	}

	if len(chars) > 0 {
		b.WriteString("\n\n")
		for _, id := range s.BlockIDs() {
			if _, placed := s.Layout.PositionOf(id); !placed {
				continue
			}
			kind := "?"
			if blk, ok := s.Block(id); ok {
				kind = blk.Kind
			}
			b.WriteString("  " + StyleHighlight.Render(chars[id]) + " " + StyleDim.Render(fmt.Sprintf("%s %s", kind, blockLabel(s, id))) + "\n")
		}
	}
	return b.String()
}

// blockChars assigns each block a single display character (A, B, C...)
// in block-list order.
func blockChars(s slide.Slide) map[string]string {
	chars := make(map[string]string, len(s.Blocks))
	for i, b := range s.Blocks {
		chars[b.ID] = string(rune('A' + i%26))
	}
	return chars
}

func unplacedBlocks(s slide.Slide) []slide.Block {
	var out []slide.Block
	for _, b := range s.Blocks {
		if _, placed := s.Layout.PositionOf(b.ID); !placed {
			out = append(out, b)
		}
	}
	return out
}
