package grid

import (
	"errors"
	"maps"
)

var (
	// ErrInvalidDimensions is returned by [NewSized] and [Layout.Resize] when
	// rows or columns is less than 1. A grid always has at least one cell.
	ErrInvalidDimensions = errors.New("grid dimensions must be at least 1x1")

	// ErrInvalidBlockID is returned by mutations when the block ID is empty.
	// All blocks must have non-empty identifiers.
	ErrInvalidBlockID = errors.New("block ID must not be empty")

	// ErrUnknownBlock is returned by [Layout.SetSpan] when the block has no
	// assigned position. Spans are anchored at an origin cell, so a block
	// must be placed before its span can change.
	ErrUnknownBlock = errors.New("block has no assigned position")

	// ErrInvalidSpan is returned by [Layout.SetSpan] when a span dimension is
	// less than 1, and by [Layout.Validate] when a stored span is malformed.
	ErrInvalidSpan = errors.New("span must be at least 1x1")

	// ErrBlockOutOfBounds is returned by [Layout.Validate] when a positioned
	// block's rectangle extends past the grid edge. This indicates layout
	// corruption, since every mutation preserves the bounds invariant.
	ErrBlockOutOfBounds = errors.New("block rectangle exceeds grid bounds")

	// ErrBlockOverlap is returned by [Layout.Validate] when two positioned
	// blocks occupy intersecting rectangles.
	ErrBlockOverlap = errors.New("block rectangles overlap")
)

// Position is the origin (top-left) cell a block is anchored to.
// Coordinates are zero-based cell indices.
type Position struct {
	Row    int `json:"row" bson:"row"`
	Column int `json:"column" bson:"column"`
}

// Span is the extent of a block from its origin cell, in whole cells.
// A block absent from the span map has an implicit 1x1 span.
type Span struct {
	RowSpan    int `json:"rowSpan" bson:"rowSpan"`
	ColumnSpan int `json:"columnSpan" bson:"columnSpan"`
}

// Layout maps blocks to non-overlapping rectangles on a 2D grid.
//
// Layout is a value type with snapshot semantics: every mutation returns a
// new Layout and leaves the receiver untouched, so a host can keep the
// previous snapshot and decide atomically whether the result becomes the
// new current state. Mutations either produce a layout satisfying the
// bounds and no-overlap invariants or report non-success without changes.
//
// The zero value is not usable - use [New] or [NewSized].
type Layout struct {
	Rows      int                 `json:"gridRows" bson:"gridRows"`
	Columns   int                 `json:"gridColumns" bson:"gridColumns"`
	Positions map[string]Position `json:"blockPositions,omitempty" bson:"blockPositions,omitempty"`
	Spans     map[string]Span     `json:"blockSpans,omitempty" bson:"blockSpans,omitempty"`
}

// New creates an empty 1x1 layout, the state of a freshly created slide.
func New() Layout {
	return Layout{Rows: 1, Columns: 1}
}

// NewSized creates an empty layout with the given dimensions.
// Returns ErrInvalidDimensions if rows or columns is less than 1.
func NewSized(rows, columns int) (Layout, error) {
	if rows < 1 || columns < 1 {
		return Layout{}, ErrInvalidDimensions
	}
	return Layout{Rows: rows, Columns: columns}, nil
}

// PositionOf returns the origin cell of a block and whether it is placed.
func (l Layout) PositionOf(blockID string) (Position, bool) {
	p, ok := l.Positions[blockID]
	return p, ok
}

// SpanOf returns the span of a block. Blocks without an explicit span
// entry report the implicit 1x1 span.
func (l Layout) SpanOf(blockID string) Span {
	if s, ok := l.Spans[blockID]; ok {
		return s
	}
	return Span{RowSpan: 1, ColumnSpan: 1}
}

// RectOf returns the occupied rectangle of a block and whether it is placed.
func (l Layout) RectOf(blockID string) (Rect, bool) {
	p, ok := l.Positions[blockID]
	if !ok {
		return Rect{}, false
	}
	return rectAt(p, l.SpanOf(blockID)), true
}

// CellOccupant returns the block whose origin equals the given cell.
// Span coverage does not count; use [Layout.IsCellCovered] for that.
func (l Layout) CellOccupant(row, column int) (string, bool) {
	for id, p := range l.Positions {
		if p.Row == row && p.Column == column {
			return id, true
		}
	}
	return "", false
}

// IsCellCovered reports whether the cell lies inside some block's span
// rectangle without being that block's own origin. Covered cells are
// visually occupied by a spanning neighbor: they accept no new placements
// and are not rendered independently.
func (l Layout) IsCellCovered(row, column int) bool {
	_, ok := l.coveredBy(row, column, "")
	return ok
}

// coveredBy returns the block (other than excludeID) whose span rectangle
// contains the cell while the cell is not that block's origin.
func (l Layout) coveredBy(row, column int, excludeID string) (string, bool) {
	for id, p := range l.Positions {
		if id == excludeID {
			continue
		}
		if p.Row == row && p.Column == column {
			continue // origin, not coverage
		}
		if rectAt(p, l.SpanOf(id)).Contains(row, column) {
			return id, true
		}
	}
	return "", false
}

// Fits reports whether the given rectangle is a legal placement for
// blockID: inside the grid and not intersecting any other positioned
// block's rectangle. The block itself is excluded from the comparison,
// so shrinking or re-confirming an existing span always fits.
//
// This is the single source of truth for placement legality - Assign and
// SetSpan both delegate here rather than repeating the arithmetic.
func (l Layout) Fits(blockID string, r Rect) bool {
	if !r.Within(l.Rows, l.Columns) {
		return false
	}
	for id, p := range l.Positions {
		if id == blockID {
			continue
		}
		if r.Intersects(rectAt(p, l.SpanOf(id))) {
			return false
		}
	}
	return true
}

// Validate checks the layout invariants: positive dimensions, well-formed
// spans, every positioned block inside the grid, and no two positioned
// blocks with intersecting rectangles. A non-nil error indicates the
// layout was corrupted outside the mutation API (e.g., hand-edited JSON).
func (l Layout) Validate() error {
	if l.Rows < 1 || l.Columns < 1 {
		return ErrInvalidDimensions
	}
	for id, s := range l.Spans {
		if id == "" {
			return ErrInvalidBlockID
		}
		if s.RowSpan < 1 || s.ColumnSpan < 1 {
			return ErrInvalidSpan
		}
	}
	ids := l.placedIDs()
	for i, id := range ids {
		if id == "" {
			return ErrInvalidBlockID
		}
		r := rectAt(l.Positions[id], l.SpanOf(id))
		if !r.Within(l.Rows, l.Columns) {
			return ErrBlockOutOfBounds
		}
		for _, other := range ids[:i] {
			if r.Intersects(rectAt(l.Positions[other], l.SpanOf(other))) {
				return ErrBlockOverlap
			}
		}
	}
	return nil
}

// clone returns a deep copy of the layout. Mutations operate on the copy
// so the receiver snapshot stays valid.
func (l Layout) clone() Layout {
	out := Layout{Rows: l.Rows, Columns: l.Columns}
	if l.Positions != nil {
		out.Positions = maps.Clone(l.Positions)
	}
	if l.Spans != nil {
		out.Spans = maps.Clone(l.Spans)
	}
	return out
}
