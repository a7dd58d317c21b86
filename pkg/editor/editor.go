// Package editor wraps a slide in the mutable editing state the pure grid
// engine deliberately refuses to own.
//
// The layout engine produces immutable snapshots; something has to hold the
// single "current" one, reduce UI gestures to engine calls, and keep an
// undo trail. That is the Editor. Drag and drop collapses to a synchronous
// two-call contract - [Editor.DragStart] then [Editor.Drop] - with no state
// machine beyond the ID of the block in flight.
package editor

import (
	"errors"

	"github.com/slatedeck/slatedeck/pkg/grid"
	"github.com/slatedeck/slatedeck/pkg/grid/connect"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

// DefaultHistoryLimit bounds the undo stack. Oldest snapshots are dropped
// first once the limit is reached.
const DefaultHistoryLimit = 50

var (
	// ErrNoDrag is returned by [Editor.Drop] when no drag is in progress.
	ErrNoDrag = errors.New("no drag in progress")

	// ErrUnknownBlock is returned by [Editor.DragStart] when the block is
	// not part of the slide.
	ErrUnknownBlock = errors.New("block not in slide")
)

// Editor owns the current slide snapshot during an authoring session and
// threads it through layout mutations. It is synchronous and intended for
// a single UI event loop; it is not safe for concurrent use.
type Editor struct {
	current  slide.Slide
	history  []grid.Layout
	limit    int
	dragging string
}

// New creates an editor over a slide snapshot.
func New(s slide.Slide) *Editor {
	return &Editor{current: s, limit: DefaultHistoryLimit}
}

// Slide returns the current slide snapshot.
func (e *Editor) Slide() slide.Slide { return e.current }

// Layout returns the current layout snapshot.
func (e *Editor) Layout() grid.Layout { return e.current.Layout }

// Connections derives the display connections for the current snapshot.
func (e *Editor) Connections() []connect.Connection {
	return e.current.Connections()
}

// DragStart begins a drag for the given block. Returns ErrUnknownBlock if
// the slide has no such block; the UI offering a drag handle for a ghost
// block is a host bug.
func (e *Editor) DragStart(blockID string) error {
	if _, ok := e.current.Block(blockID); !ok {
		return ErrUnknownBlock
	}
	e.dragging = blockID
	return nil
}

// Dragging returns the ID of the block currently being dragged, if any.
func (e *Editor) Dragging() (string, bool) {
	return e.dragging, e.dragging != ""
}

// CancelDrag abandons the drag in progress, if any.
func (e *Editor) CancelDrag() { e.dragging = "" }

// Drop completes the drag by assigning the dragged block to the target
// cell. The drag ends whether or not the placement is accepted; a refused
// target simply leaves the layout as it was.
func (e *Editor) Drop(row, column int) (bool, error) {
	id := e.dragging
	if id == "" {
		return false, ErrNoDrag
	}
	e.dragging = ""

	next, ok, err := e.current.Layout.Assign(id, row, column)
	if err != nil {
		return false, err
	}
	if ok {
		e.commit(next)
	}
	return ok, nil
}

// Assign places a block directly, outside a drag gesture.
func (e *Editor) Assign(blockID string, row, column int) (bool, error) {
	next, ok, err := e.current.Layout.Assign(blockID, row, column)
	if err != nil {
		return false, err
	}
	if ok {
		e.commit(next)
	}
	return ok, nil
}

// SetSpan changes a block's span, recording an undo snapshot on success.
func (e *Editor) SetSpan(blockID string, rowSpan, columnSpan int) (bool, error) {
	next, ok, err := e.current.Layout.SetSpan(blockID, rowSpan, columnSpan)
	if err != nil {
		return false, err
	}
	if ok {
		e.commit(next)
	}
	return ok, nil
}

// Resize changes the grid dimensions. Always succeeds for positive input;
// truncated geometry can be recovered with Undo.
func (e *Editor) Resize(rows, columns int) error {
	next, err := e.current.Layout.Resize(rows, columns)
	if err != nil {
		return err
	}
	e.commit(next)
	return nil
}

// Unassign removes a block from the grid.
func (e *Editor) Unassign(blockID string) {
	e.commit(e.current.Layout.Unassign(blockID))
}

// AddBlock appends a block to the slide. Layout is untouched, so this is
// not an undo step.
func (e *Editor) AddBlock(b slide.Block) {
	e.current.AddBlock(b)
}

// RemoveBlock deletes a block and prunes its layout entries, recording an
// undo snapshot for the layout change.
func (e *Editor) RemoveBlock(blockID string) {
	if _, ok := e.current.Block(blockID); !ok {
		return
	}
	e.push(e.current.Layout)
	e.current.RemoveBlock(blockID)
}

// Undo restores the previous layout snapshot. Returns false when the
// history is empty. Block list changes other than removal pruning are not
// undone - undo covers geometry, which is where authors make mistakes.
func (e *Editor) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	restored := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	// Pruning keeps layout keys scoped to live blocks even when the
	// restored snapshot predates a block deletion.
	e.current.Layout = restored.Prune(e.current.BlockIDs())
	return true
}

// CanUndo reports whether an undo snapshot is available.
func (e *Editor) CanUndo() bool { return len(e.history) > 0 }

func (e *Editor) commit(next grid.Layout) {
	e.push(e.current.Layout)
	e.current.Layout = next
}

func (e *Editor) push(l grid.Layout) {
	if len(e.history) >= e.limit {
		e.history = e.history[1:]
	}
	e.history = append(e.history, l)
}
