package grid

import (
	"cmp"
	"slices"
)

// Resize changes the grid dimensions, clamping blocks that would fall
// outside the new bounds: origins move to the nearest legal cell and spans
// shrink so no edge exceeds the grid. Shrinking is always accepted -
// geometry is sacrificed before the operation is refused.
//
// Clamping several blocks into a smaller grid can land them on the same
// cells. Collisions are resolved in reading order: the first block keeps
// its clamped rectangle, later blocks collapse to a 1x1 span, and a block
// whose origin cell is still taken loses its position entirely. The result
// always satisfies the bounds and no-overlap invariants.
//
// Returns ErrInvalidDimensions if rows or columns is less than 1.
func (l Layout) Resize(rows, columns int) (Layout, error) {
	if rows < 1 || columns < 1 {
		return Layout{}, ErrInvalidDimensions
	}

	out := l.clone()
	out.Rows = rows
	out.Columns = columns

	for id, p := range out.Positions {
		if p.Row > rows-1 {
			p.Row = rows - 1
		}
		if p.Column > columns-1 {
			p.Column = columns - 1
		}
		out.Positions[id] = p

		s := out.SpanOf(id)
		clamped := s
		if clamped.RowSpan > rows-p.Row {
			clamped.RowSpan = rows - p.Row
		}
		if clamped.ColumnSpan > columns-p.Column {
			clamped.ColumnSpan = columns - p.Column
		}
		if clamped != s {
			out.setSpanEntry(id, clamped)
		}
	}

	out.resolveCollisions()
	return out, nil
}

// Assign places a block's origin at the target cell, reporting false
// without mutation when the placement is refused. Refusal is an expected
// outcome the host uses to reject a drop target, not an error.
//
// The target is refused when it lies outside the grid, is the origin of a
// different block, or is covered by another block's span. The moved
// block's own span is left unchanged and is not re-validated here: a wide
// block dropped near the edge may temporarily exceed bounds until the next
// SetSpan or Resize, which is where span legality is enforced.
//
// Returns ErrInvalidBlockID if blockID is empty.
func (l Layout) Assign(blockID string, row, column int) (Layout, bool, error) {
	if blockID == "" {
		return Layout{}, false, ErrInvalidBlockID
	}
	if row < 0 || column < 0 || row >= l.Rows || column >= l.Columns {
		return l, false, nil
	}
	if id, ok := l.CellOccupant(row, column); ok && id != blockID {
		return l, false, nil
	}
	if _, ok := l.coveredBy(row, column, blockID); ok {
		return l, false, nil
	}

	out := l.clone()
	if out.Positions == nil {
		out.Positions = make(map[string]Position)
	}
	out.Positions[blockID] = Position{Row: row, Column: column}
	return out, true, nil
}

// SetSpan changes a block's extent from its current origin, reporting
// false without mutation when the resulting rectangle would leave the grid
// or intersect another positioned block. A block is never checked against
// itself, so confirming or shrinking an existing span always succeeds.
//
// Returns ErrUnknownBlock if the block has no position and ErrInvalidSpan
// if a span dimension is less than 1 - both indicate a host bug rather
// than a user action.
func (l Layout) SetSpan(blockID string, rowSpan, columnSpan int) (Layout, bool, error) {
	if rowSpan < 1 || columnSpan < 1 {
		return Layout{}, false, ErrInvalidSpan
	}
	p, ok := l.Positions[blockID]
	if !ok {
		return Layout{}, false, ErrUnknownBlock
	}

	s := Span{RowSpan: rowSpan, ColumnSpan: columnSpan}
	if !l.Fits(blockID, rectAt(p, s)) {
		return l, false, nil
	}

	out := l.clone()
	out.setSpanEntry(blockID, s)
	return out, true, nil
}

// Unassign removes a block from the grid. Its span entry is kept so the
// block regains its size when placed again. Removing an absent block is a
// no-op.
func (l Layout) Unassign(blockID string) Layout {
	if _, ok := l.Positions[blockID]; !ok {
		return l
	}
	out := l.clone()
	delete(out.Positions, blockID)
	return out
}

// Prune drops position and span entries for blocks not present in keep.
// This is the silent cleanup run when blocks are deleted from a slide.
func (l Layout) Prune(keep []string) Layout {
	valid := make(map[string]bool, len(keep))
	for _, id := range keep {
		valid[id] = true
	}

	out := l.clone()
	for id := range out.Positions {
		if !valid[id] {
			delete(out.Positions, id)
		}
	}
	for id := range out.Spans {
		if !valid[id] {
			delete(out.Spans, id)
		}
	}
	return out
}

// setSpanEntry stores a span, eliding the implicit 1x1 entry so layouts
// round-trip through JSON without noise.
func (l *Layout) setSpanEntry(blockID string, s Span) {
	if s.RowSpan == 1 && s.ColumnSpan == 1 {
		delete(l.Spans, blockID)
		return
	}
	if l.Spans == nil {
		l.Spans = make(map[string]Span)
	}
	l.Spans[blockID] = s
}

// placedIDs returns positioned block IDs in reading order (row-major,
// ties broken by ID) for deterministic iteration.
func (l Layout) placedIDs() []string {
	ids := make([]string, 0, len(l.Positions))
	for id := range l.Positions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		pa, pb := l.Positions[a], l.Positions[b]
		if c := cmp.Compare(pa.Row, pb.Row); c != 0 {
			return c
		}
		if c := cmp.Compare(pa.Column, pb.Column); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}

// resolveCollisions restores the no-overlap invariant after clamping.
// Blocks are visited in reading order; a block intersecting an already
// settled one first collapses to 1x1, and if its origin cell is still
// taken it is unassigned.
func (l *Layout) resolveCollisions() {
	var settled []Rect
	for _, id := range l.placedIDs() {
		p := l.Positions[id]
		r := rectAt(p, l.SpanOf(id))

		if intersectsAny(r, settled) {
			r = rectAt(p, Span{RowSpan: 1, ColumnSpan: 1})
			l.setSpanEntry(id, Span{RowSpan: 1, ColumnSpan: 1})
		}
		if intersectsAny(r, settled) {
			delete(l.Positions, id)
			continue
		}
		settled = append(settled, r)
	}
}

func intersectsAny(r Rect, rects []Rect) bool {
	for _, o := range rects {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
