// Package grid implements the slide layout engine: a mapping of content
// blocks to non-overlapping rectangles on a small 2D grid.
//
// A [Layout] holds the grid dimensions, each block's origin cell, and each
// block's span (how many rows and columns it extends from the origin). Two
// invariants hold for every layout the mutation API produces:
//
//   - every positioned block's rectangle lies inside the grid
//   - no two positioned blocks' rectangles intersect
//
// # Snapshot semantics
//
// The engine is pure and synchronous. Mutations ([Layout.Resize],
// [Layout.Assign], [Layout.SetSpan], [Layout.Unassign], [Layout.Prune])
// return a new Layout value; the host owns the single current snapshot and
// decides what replaces it. There is no shared mutable state and nothing to
// lock.
//
// # Rejection vs. error
//
// Most "failures" here are expected user actions: dropping a block on an
// occupied cell, widening a span into a neighbor. Those are signalled by a
// false return with the input layout unchanged. Errors are reserved for
// host bugs (empty IDs, spans below 1x1, span changes on unplaced blocks)
// and for [Layout.Validate] detecting corrupted persisted data.
//
// # Usage
//
//	l := grid.New()
//	l, _ = l.Resize(2, 2)
//	l, ok, _ := l.Assign("intro", 0, 0)
//	if ok {
//	    l, ok, _ = l.SetSpan("intro", 1, 2) // span the full top row
//	}
package grid
