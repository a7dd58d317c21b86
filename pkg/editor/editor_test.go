package editor

import (
	"errors"
	"testing"

	"github.com/slatedeck/slatedeck/pkg/slide"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	s := slide.NewSlide("test")
	s.AddBlock(slide.Block{ID: "a", Kind: slide.KindText})
	s.AddBlock(slide.Block{ID: "b", Kind: slide.KindImage})

	e := New(s)
	if err := e.Resize(2, 2); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestDragDrop(t *testing.T) {
	e := newTestEditor(t)

	if err := e.DragStart("a"); err != nil {
		t.Fatalf("DragStart: %v", err)
	}
	if id, ok := e.Dragging(); !ok || id != "a" {
		t.Errorf("Dragging() = %q, %v", id, ok)
	}

	ok, err := e.Drop(0, 0)
	if err != nil || !ok {
		t.Fatalf("Drop = %v, %v", ok, err)
	}
	if p, placed := e.Layout().PositionOf("a"); !placed || p.Row != 0 || p.Column != 0 {
		t.Errorf("a at %+v after drop", p)
	}
	if _, ok := e.Dragging(); ok {
		t.Error("drag should end after drop")
	}
}

func TestDropOnOccupiedCellRefused(t *testing.T) {
	e := newTestEditor(t)
	if ok, err := e.Assign("a", 0, 0); err != nil || !ok {
		t.Fatalf("Assign = %v, %v", ok, err)
	}

	if err := e.DragStart("b"); err != nil {
		t.Fatal(err)
	}
	ok, err := e.Drop(0, 0)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if ok {
		t.Error("drop onto occupied cell should be refused")
	}
	if _, placed := e.Layout().PositionOf("b"); placed {
		t.Error("refused drop must not place the block")
	}
	if _, dragging := e.Dragging(); dragging {
		t.Error("drag should end even on refusal")
	}
}

func TestDragContractViolations(t *testing.T) {
	e := newTestEditor(t)

	if err := e.DragStart("ghost"); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("DragStart(ghost) = %v, want ErrUnknownBlock", err)
	}
	if _, err := e.Drop(0, 0); !errors.Is(err, ErrNoDrag) {
		t.Errorf("Drop without drag = %v, want ErrNoDrag", err)
	}
}

func TestCancelDrag(t *testing.T) {
	e := newTestEditor(t)
	if err := e.DragStart("a"); err != nil {
		t.Fatal(err)
	}
	e.CancelDrag()
	if _, ok := e.Dragging(); ok {
		t.Error("drag still active after cancel")
	}
}

func TestUndo(t *testing.T) {
	e := newTestEditor(t)

	if ok, err := e.Assign("a", 0, 0); err != nil || !ok {
		t.Fatalf("Assign = %v, %v", ok, err)
	}
	if ok, err := e.SetSpan("a", 1, 2); err != nil || !ok {
		t.Fatalf("SetSpan = %v, %v", ok, err)
	}

	if !e.Undo() {
		t.Fatal("Undo returned false with history available")
	}
	if s := e.Layout().SpanOf("a"); s.ColumnSpan != 1 {
		t.Errorf("span after undo = %+v, want 1x1", s)
	}

	if !e.Undo() {
		t.Fatal("second Undo returned false")
	}
	if _, placed := e.Layout().PositionOf("a"); placed {
		t.Error("a still placed after undoing the assign")
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	e := New(slide.NewSlide("empty"))
	if e.Undo() {
		t.Error("Undo on empty history should return false")
	}
	if e.CanUndo() {
		t.Error("CanUndo should be false initially")
	}
}

func TestRejectedMutationsAddNoHistory(t *testing.T) {
	e := newTestEditor(t)
	if ok, err := e.Assign("a", 0, 0); err != nil || !ok {
		t.Fatalf("Assign = %v, %v", ok, err)
	}
	depth := len(e.history)

	// Occupied cell: refused, so no snapshot.
	if ok, _ := e.Assign("b", 0, 0); ok {
		t.Fatal("expected refusal")
	}
	if len(e.history) != depth {
		t.Error("refused mutation grew the undo history")
	}
}

func TestUndoAfterRemoveBlockKeepsPruned(t *testing.T) {
	e := newTestEditor(t)
	if ok, err := e.Assign("a", 0, 0); err != nil || !ok {
		t.Fatalf("Assign = %v, %v", ok, err)
	}

	e.RemoveBlock("a")
	if !e.Undo() {
		t.Fatal("Undo returned false")
	}

	// The block is gone from the slide, so the restored layout must not
	// resurrect its entries.
	if _, placed := e.Layout().PositionOf("a"); placed {
		t.Error("undo resurrected layout entry for a deleted block")
	}
}

func TestHistoryLimit(t *testing.T) {
	e := newTestEditor(t)
	for i := 0; i < DefaultHistoryLimit+10; i++ {
		rows := 2 + i%3
		if err := e.Resize(rows, 2); err != nil {
			t.Fatal(err)
		}
	}
	if len(e.history) > DefaultHistoryLimit {
		t.Errorf("history = %d snapshots, limit %d", len(e.history), DefaultHistoryLimit)
	}
}
