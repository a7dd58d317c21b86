package engine

import (
	"fmt"

	"github.com/slatedeck/slatedeck/pkg/grid"
)

// Operation names for edit scripts.
const (
	OpResize   = "resize"
	OpAssign   = "assign"
	OpSpan     = "span"
	OpUnassign = "unassign"
)

// ValidOps is the set of supported operations.
var ValidOps = map[string]bool{
	OpResize:   true,
	OpAssign:   true,
	OpSpan:     true,
	OpUnassign: true,
}

// Format constants for rendered artifacts.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Op is one step of a layout edit script. The Op field selects the
// operation; the remaining fields are the arguments that operation reads.
// This struct supports JSON serialization for API requests.
type Op struct {
	Op    string `json:"op"`
	Block string `json:"block,omitempty"`

	// Resize arguments
	Rows    int `json:"rows,omitempty"`
	Columns int `json:"columns,omitempty"`

	// Assign arguments
	Row    int `json:"row,omitempty"`
	Column int `json:"column,omitempty"`

	// Span arguments
	RowSpan    int `json:"rowSpan,omitempty"`
	ColumnSpan int `json:"columnSpan,omitempty"`
}

// OpResult reports the outcome of one applied operation. Applied is false
// when the layout refused the mutation; the script still continues.
type OpResult struct {
	Op      Op   `json:"op"`
	Applied bool `json:"applied"`
}

// Validate checks that the operation is well-formed before it reaches the
// layout. Argument legality (bounds, occupancy) is the layout's job; this
// only rejects scripts that could never be legal.
func (op Op) Validate() error {
	if !ValidOps[op.Op] {
		return fmt.Errorf("invalid op: %q (must be one of: resize, assign, span, unassign)", op.Op)
	}
	switch op.Op {
	case OpResize:
		if op.Rows < 1 || op.Columns < 1 {
			return fmt.Errorf("resize requires rows and columns of at least 1, got %dx%d", op.Rows, op.Columns)
		}
	case OpAssign:
		if op.Block == "" {
			return fmt.Errorf("assign requires a block")
		}
	case OpSpan:
		if op.Block == "" {
			return fmt.Errorf("span requires a block")
		}
		if op.RowSpan < 1 || op.ColumnSpan < 1 {
			return fmt.Errorf("span requires rowSpan and columnSpan of at least 1, got %dx%d", op.RowSpan, op.ColumnSpan)
		}
	case OpUnassign:
		if op.Block == "" {
			return fmt.Errorf("unassign requires a block")
		}
	}
	return nil
}

// apply runs the operation against a layout snapshot, returning the next
// snapshot and whether the mutation was applied.
func (op Op) apply(l grid.Layout) (grid.Layout, bool, error) {
	switch op.Op {
	case OpResize:
		next, err := l.Resize(op.Rows, op.Columns)
		if err != nil {
			return l, false, err
		}
		return next, true, nil
	case OpAssign:
		return l.Assign(op.Block, op.Row, op.Column)
	case OpSpan:
		return l.SetSpan(op.Block, op.RowSpan, op.ColumnSpan)
	case OpUnassign:
		return l.Unassign(op.Block), true, nil
	}
	return l, false, fmt.Errorf("invalid op: %q", op.Op)
}
