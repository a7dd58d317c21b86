package engine

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/slatedeck/slatedeck/pkg/cache"
	"github.com/slatedeck/slatedeck/pkg/grid"
	"github.com/slatedeck/slatedeck/pkg/grid/connect"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(c, nil, quietLogger())
}

// twoBlockSlide builds a slide with blocks "a" and "b" on a 1x1 layout.
func twoBlockSlide() slide.Slide {
	s := slide.Slide{ID: "s1"}
	s.Blocks = []slide.Block{
		{ID: "a", Kind: slide.KindText, Group: "g"},
		{ID: "b", Kind: slide.KindText, Group: "g"},
	}
	s.Layout = grid.New()
	return s
}

func TestApplyScript(t *testing.T) {
	eng := New(nil, nil, quietLogger())
	s := twoBlockSlide()

	out, results, err := eng.Apply(context.Background(), s, []Op{
		{Op: OpResize, Rows: 2, Columns: 2},
		{Op: OpAssign, Block: "a", Row: 0, Column: 0},
		{Op: OpAssign, Block: "b", Row: 1, Column: 1},
		{Op: OpSpan, Block: "a", RowSpan: 1, ColumnSpan: 2},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i, r := range results {
		if !r.Applied {
			t.Errorf("op %d (%s) not applied", i, r.Op.Op)
		}
	}
	if p, ok := out.Layout.PositionOf("b"); !ok || p.Row != 1 || p.Column != 1 {
		t.Errorf("b at %+v", p)
	}
	if sp := out.Layout.SpanOf("a"); sp.ColumnSpan != 2 {
		t.Errorf("a span = %+v", sp)
	}

	// Input slide untouched.
	if len(s.Layout.Positions) != 0 {
		t.Error("Apply mutated the input slide")
	}
}

func TestApplyRefusedOpContinuesScript(t *testing.T) {
	eng := New(nil, nil, quietLogger())
	s := twoBlockSlide()

	out, results, err := eng.Apply(context.Background(), s, []Op{
		{Op: OpResize, Rows: 2, Columns: 2},
		{Op: OpAssign, Block: "a", Row: 0, Column: 0},
		{Op: OpAssign, Block: "b", Row: 0, Column: 0}, // taken, refused
		{Op: OpAssign, Block: "b", Row: 0, Column: 1},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if results[2].Applied {
		t.Error("placement on a taken cell was applied")
	}
	if !results[3].Applied {
		t.Error("follow-up placement not applied")
	}
	if p, _ := out.Layout.PositionOf("b"); p.Column != 1 {
		t.Errorf("b at %+v", p)
	}
}

func TestApplyRejectsMalformedScript(t *testing.T) {
	eng := New(nil, nil, quietLogger())
	s := twoBlockSlide()

	tests := []struct {
		name string
		op   Op
		want string
	}{
		{"unknown op", Op{Op: "rotate"}, "invalid op"},
		{"resize zero", Op{Op: OpResize}, "resize requires"},
		{"assign without block", Op{Op: OpAssign}, "assign requires"},
		{"span zero", Op{Op: OpSpan, Block: "a"}, "span requires"},
		{"unassign without block", Op{Op: OpUnassign}, "unassign requires"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := eng.Apply(context.Background(), s, []Op{tt.op})
			if err == nil {
				t.Fatal("Apply succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestApplyContractViolationAborts(t *testing.T) {
	eng := New(nil, nil, quietLogger())
	s := twoBlockSlide()

	// Span on an unplaced block is a contract violation, not a refusal.
	_, _, err := eng.Apply(context.Background(), s, []Op{
		{Op: OpSpan, Block: "a", RowSpan: 2, ColumnSpan: 1},
	})
	if err == nil {
		t.Fatal("Apply succeeded, want error")
	}
}

func TestConnectionsCaching(t *testing.T) {
	eng := testEngine(t)
	defer eng.Close()
	ctx := context.Background()

	s := twoBlockSlide()
	var err error
	s, _, err = eng.Apply(ctx, s, []Op{
		{Op: OpResize, Rows: 1, Columns: 2},
		{Op: OpAssign, Block: "a", Row: 0, Column: 0},
		{Op: OpAssign, Block: "b", Row: 0, Column: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	conns, hit, err := eng.Connections(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first derivation reported a cache hit")
	}
	want := []connect.Connection{{From: "a", To: "b", Kind: connect.KindGroup}}
	if len(conns) != 1 || conns[0] != want[0] {
		t.Errorf("Connections = %+v, want %+v", conns, want)
	}

	again, hit, err := eng.Connections(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second derivation missed the cache")
	}
	if len(again) != 1 || again[0] != want[0] {
		t.Errorf("cached Connections = %+v", again)
	}

	// A layout change must change the key.
	s2, _, err := eng.Apply(ctx, s, []Op{{Op: OpUnassign, Block: "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := eng.Connections(ctx, s2); hit {
		t.Error("changed slide served from stale cache entry")
	}
}

func TestRenderCaching(t *testing.T) {
	eng := testEngine(t)
	defer eng.Close()
	ctx := context.Background()

	s := twoBlockSlide()
	artifacts, hit, err := eng.Render(ctx, s, []string{FormatSVG, FormatJSON})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first render reported a cache hit")
	}
	if len(artifacts[FormatSVG]) == 0 || len(artifacts[FormatJSON]) == 0 {
		t.Fatalf("empty artifacts: %v", artifacts)
	}

	cached, hit, err := eng.Render(ctx, s, []string{FormatSVG, FormatJSON})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second render missed the cache")
	}
	if string(cached[FormatSVG]) != string(artifacts[FormatSVG]) {
		t.Error("cached SVG differs from rendered SVG")
	}
}

func TestRenderDefaultsToSVG(t *testing.T) {
	eng := New(nil, nil, quietLogger())
	artifacts, _, err := eng.Render(context.Background(), twoBlockSlide(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := artifacts[FormatSVG]; !ok {
		t.Errorf("artifacts = %v, want svg", artifacts)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	eng := New(nil, nil, quietLogger())
	if _, _, err := eng.Render(context.Background(), twoBlockSlide(), []string{"pdf"}); err == nil {
		t.Fatal("Render succeeded, want error")
	}
}
