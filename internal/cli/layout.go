package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/slatedeck/slatedeck/pkg/engine"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

// layoutCommand creates the layout command with one subcommand per
// mutation. Every subcommand reads a slide file, applies the mutation,
// and writes the result back (or to --output).
func (c *CLI) layoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Apply layout mutations to a slide file",
		Long: `Apply layout mutations to a slide file.

Mutations follow drag-and-drop semantics: an operation the grid cannot
accept (occupied cell, overlapping span) is refused and the slide file is
left untouched. Refusals exit with status 0 - they are outcomes, not
errors.`,
	}

	cmd.AddCommand(c.layoutResizeCommand())
	cmd.AddCommand(c.layoutAssignCommand())
	cmd.AddCommand(c.layoutSpanCommand())
	cmd.AddCommand(c.layoutUnassignCommand())

	return cmd
}

func (c *CLI) layoutResizeCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "resize [slide.json] [rows] [columns]",
		Short: "Change the grid dimensions, clamping blocks to the new bounds",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, cols, err := parseIntPair(args[1], args[2])
			if err != nil {
				return err
			}
			op := engine.Op{Op: engine.OpResize, Rows: rows, Columns: cols}
			return c.runLayoutOp(cmd.Context(), args[0], output, op)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}

func (c *CLI) layoutAssignCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "assign [slide.json] [block] [row] [column]",
		Short: "Place a block's origin at a grid cell",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseIntPair(args[2], args[3])
			if err != nil {
				return err
			}
			op := engine.Op{Op: engine.OpAssign, Block: args[1], Row: row, Column: col}
			return c.runLayoutOp(cmd.Context(), args[0], output, op)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}

func (c *CLI) layoutSpanCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "span [slide.json] [block] [rowSpan] [columnSpan]",
		Short: "Change how many cells a block covers from its origin",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, cs, err := parseIntPair(args[2], args[3])
			if err != nil {
				return err
			}
			op := engine.Op{Op: engine.OpSpan, Block: args[1], RowSpan: rs, ColumnSpan: cs}
			return c.runLayoutOp(cmd.Context(), args[0], output, op)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}

func (c *CLI) layoutUnassignCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "unassign [slide.json] [block]",
		Short: "Remove a block from the grid, keeping its span for re-placement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := engine.Op{Op: engine.OpUnassign, Block: args[1]}
			return c.runLayoutOp(cmd.Context(), args[0], output, op)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}

// runLayoutOp loads the slide, applies one operation, and writes the
// result. A refused operation leaves the file untouched and reports the
// refusal without failing the command.
func (c *CLI) runLayoutOp(ctx context.Context, input, output string, op engine.Op) error {
	s, err := slide.ReadSlideFile(input)
	if err != nil {
		return fmt.Errorf("load slide %s: %w", input, err)
	}

	eng := engine.New(nil, nil, c.Logger)
	next, results, err := eng.Apply(ctx, s, []engine.Op{op})
	if err != nil {
		return fmt.Errorf("apply %s: %w", op.Op, err)
	}

	if !results[0].Applied {
		printWarning("%s refused by the grid", op.Op)
		printDetail("Slide unchanged: %s", input)
		return nil
	}

	if output == "" {
		output = input
	}
	if err := slide.WriteSlideFile(next, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Applied %s", op.Op)
	printFile(output)
	printNextStep("Inspect", "slatedeck inspect "+output)
	return nil
}

func parseIntPair(a, b string) (int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}
