package slide

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slatedeck/slatedeck/pkg/grid"
	"github.com/slatedeck/slatedeck/pkg/grid/connect"
)

func TestNewSlide(t *testing.T) {
	s := NewSlide("Photosynthesis")
	if s.ID == "" {
		t.Error("NewSlide should generate an ID")
	}
	if s.Title != "Photosynthesis" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Layout.Rows != 1 || s.Layout.Columns != 1 {
		t.Errorf("layout = %dx%d, want fresh 1x1", s.Layout.Rows, s.Layout.Columns)
	}
}

func TestNewBlock(t *testing.T) {
	a := NewBlock(KindText)
	b := NewBlock(KindQuestion)
	if a.ID == "" || b.ID == "" {
		t.Error("NewBlock should generate IDs")
	}
	if a.ID == b.ID {
		t.Error("block IDs must be unique")
	}
	if a.Kind != KindText || b.Kind != KindQuestion {
		t.Errorf("kinds = %q, %q", a.Kind, b.Kind)
	}
}

func TestRemoveBlockPrunesLayout(t *testing.T) {
	s := NewSlide("test")
	s.AddBlock(Block{ID: "a", Kind: KindText})
	s.AddBlock(Block{ID: "b", Kind: KindImage})

	var ok bool
	var err error
	s.Layout, err = s.Layout.Resize(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	s.Layout, ok, err = s.Layout.Assign("a", 0, 0)
	if err != nil || !ok {
		t.Fatalf("Assign(a) = %v, %v", ok, err)
	}
	s.Layout, ok, err = s.Layout.Assign("b", 1, 1)
	if err != nil || !ok {
		t.Fatalf("Assign(b) = %v, %v", ok, err)
	}
	s.Layout, ok, err = s.Layout.SetSpan("a", 1, 2)
	if err != nil || !ok {
		t.Fatalf("SetSpan(a) = %v, %v", ok, err)
	}

	s.RemoveBlock("a")

	if _, found := s.Block("a"); found {
		t.Error("block a still in block list")
	}
	if _, placed := s.Layout.PositionOf("a"); placed {
		t.Error("layout position for deleted block not pruned")
	}
	if _, spanned := s.Layout.Spans["a"]; spanned {
		t.Error("layout span for deleted block not pruned")
	}
	if _, placed := s.Layout.PositionOf("b"); !placed {
		t.Error("surviving block b lost its position")
	}
}

func TestRemoveBlockUnknownIsNoop(t *testing.T) {
	s := NewSlide("test")
	s.AddBlock(Block{ID: "a", Kind: KindText})
	s.RemoveBlock("ghost")
	if len(s.Blocks) != 1 {
		t.Errorf("blocks = %d, want 1", len(s.Blocks))
	}
}

func TestSlideConnections(t *testing.T) {
	s := NewSlide("test")
	s.AddBlock(Block{ID: "a", Kind: KindText, Group: "facts"})
	s.AddBlock(Block{ID: "b", Kind: KindText, Group: "facts"})

	var ok bool
	var err error
	s.Layout, err = s.Layout.Resize(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	s.Layout, ok, err = s.Layout.Assign("a", 0, 0)
	if err != nil || !ok {
		t.Fatalf("Assign(a) = %v, %v", ok, err)
	}
	s.Layout, ok, err = s.Layout.Assign("b", 0, 1)
	if err != nil || !ok {
		t.Fatalf("Assign(b) = %v, %v", ok, err)
	}
	s.Layout, ok, err = s.Layout.SetSpan("b", 2, 1)
	if err != nil || !ok {
		t.Fatalf("SetSpan(b) = %v, %v", ok, err)
	}

	got := s.Connections()
	want := []connect.Connection{
		{From: "b", To: "b", Kind: connect.KindSpan},
		{From: "a", To: "b", Kind: connect.KindGroup},
	}
	if len(got) != len(want) {
		t.Fatalf("Connections() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("connection[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSlideRoundTrip(t *testing.T) {
	s := NewSlide("Water cycle")
	s.AddBlock(Block{ID: "intro", Kind: KindText, Title: "Intro", Body: "Evaporation..."})
	s.AddBlock(Block{ID: "diagram", Kind: KindImage, Meta: map[string]string{"src": "cycle.png"}})

	var ok bool
	var err error
	s.Layout, err = s.Layout.Resize(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	s.Layout, ok, err = s.Layout.Assign("intro", 0, 0)
	if err != nil || !ok {
		t.Fatalf("Assign = %v, %v", ok, err)
	}
	s.Layout, ok, err = s.Layout.SetSpan("intro", 1, 2)
	if err != nil || !ok {
		t.Fatalf("SetSpan = %v, %v", ok, err)
	}

	path := filepath.Join(t.TempDir(), "slide.json")
	if err := WriteSlideFile(s, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSlideFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.ID != s.ID || got.Title != s.Title {
		t.Errorf("identity = %q/%q, want %q/%q", got.ID, got.Title, s.ID, s.Title)
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(got.Blocks))
	}
	if got.Layout.SpanOf("intro") != (grid.Span{RowSpan: 1, ColumnSpan: 2}) {
		t.Errorf("span = %+v", got.Layout.SpanOf("intro"))
	}
}

func TestReadSlideRejectsCorruptLayout(t *testing.T) {
	// Two blocks on the same cell: valid JSON, invalid geometry.
	raw := `{
	  "id": "s1",
	  "blocks": [{"id": "a", "kind": "text"}, {"id": "b", "kind": "text"}],
	  "layout": {
	    "gridRows": 2, "gridColumns": 2,
	    "blockPositions": {"a": {"row": 0, "column": 0}, "b": {"row": 0, "column": 0}}
	  }
	}`

	_, err := ReadSlide(strings.NewReader(raw))
	if !errors.Is(err, grid.ErrBlockOverlap) {
		t.Errorf("ReadSlide err = %v, want ErrBlockOverlap", err)
	}
}

func TestDeckRoundTrip(t *testing.T) {
	d := NewDeck("Biology 101")
	s := NewSlide("Cells")
	s.AddBlock(Block{ID: "a", Kind: KindText})
	d.Slides = append(d.Slides, s, NewSlide("Organelles"))

	data, err := MarshalDeck(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ReadDeck(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.ID != d.ID || len(got.Slides) != 2 {
		t.Errorf("deck = %q with %d slides, want %q with 2", got.ID, len(got.Slides), d.ID)
	}
	if got.Slide(s.ID) == nil {
		t.Errorf("Slide(%q) not found after round trip", s.ID)
	}
	if got.Slide("ghost") != nil {
		t.Error("Slide(ghost) should be nil")
	}
}
