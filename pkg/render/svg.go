package render

import (
	"bytes"
	"fmt"
	"html"
	"slices"

	"github.com/slatedeck/slatedeck/pkg/grid/connect"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

const (
	// DefaultCellSize is the rendered edge length of one grid cell in pixels.
	DefaultCellSize = 120.0

	cellGap   = 8.0
	gridColor = "#d0d0d0"
	lineColor = "#6b7fd7"
)

// kindFills maps block kinds to fill colors. Unknown kinds fall back to
// the text color.
var kindFills = map[string]string{
	slide.KindText:     "#f5f0e8",
	slide.KindImage:    "#dce8f5",
	slide.KindQuestion: "#f5e3d8",
	slide.KindChat:     "#e3f0dc",
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellSize    float64
	connections bool
	labels      bool
}

// WithCellSize sets the rendered size of one grid cell in pixels.
func WithCellSize(px float64) SVGOption {
	return func(r *svgRenderer) { r.cellSize = px }
}

// WithConnections draws the derived group connection lines on top of the
// grid. Span connections need no line; spanning blocks are already drawn
// as one large rectangle.
func WithConnections() SVGOption {
	return func(r *svgRenderer) { r.connections = true }
}

// WithoutLabels suppresses block titles, leaving colored rectangles only.
func WithoutLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = false }
}

// SVG renders the slide grid as a self-contained SVG document. Unassigned
// blocks are not drawn. Output is deterministic: blocks render in ID order
// and connections in derivation order.
func SVG(s slide.Slide, opts ...SVGOption) []byte {
	r := svgRenderer{cellSize: DefaultCellSize, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	width := float64(s.Layout.Columns) * r.cellSize
	height := float64(s.Layout.Rows) * r.cellSize

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="white"/>`+"\n", width, height)

	r.renderGridLines(&buf, s.Layout.Rows, s.Layout.Columns)
	r.renderBlocks(&buf, s)
	if r.connections {
		r.renderConnections(&buf, s)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderGridLines(buf *bytes.Buffer, rows, columns int) {
	width := float64(columns) * r.cellSize
	height := float64(rows) * r.cellSize
	for i := 1; i < columns; i++ {
		x := float64(i) * r.cellSize
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4,4"/>`+"\n",
			x, x, height, gridColor)
	}
	for i := 1; i < rows; i++ {
		y := float64(i) * r.cellSize
		fmt.Fprintf(buf, `  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4,4"/>`+"\n",
			y, width, y, gridColor)
	}
}

func (r *svgRenderer) renderBlocks(buf *bytes.Buffer, s slide.Slide) {
	ids := make([]string, 0, len(s.Layout.Positions))
	for id := range s.Layout.Positions {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		rect, _ := s.Layout.RectOf(id)
		b, _ := s.Block(id)

		fill := kindFills[b.Kind]
		if fill == "" {
			fill = kindFills[slide.KindText]
		}

		x := float64(rect.Left)*r.cellSize + cellGap
		y := float64(rect.Top)*r.cellSize + cellGap
		w := float64(rect.Columns())*r.cellSize - 2*cellGap
		h := float64(rect.Rows())*r.cellSize - 2*cellGap

		fmt.Fprintf(buf, `  <rect id="block-%s" class="block" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="#444"/>`+"\n",
			html.EscapeString(id), x, y, w, h, fill)

		if r.labels {
			label := b.Title
			if label == "" {
				label = b.Kind
			}
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-size="14" font-family="sans-serif">%s</text>`+"\n",
				x+w/2, y+h/2, html.EscapeString(label))
		}
	}
}

// renderConnections draws group links as lines between block centers.
func (r *svgRenderer) renderConnections(buf *bytes.Buffer, s slide.Slide) {
	for _, c := range s.Connections() {
		if c.Kind != connect.KindGroup {
			continue
		}
		fx, fy, ok := r.center(s, c.From)
		if !ok {
			continue
		}
		tx, ty, ok := r.center(s, c.To)
		if !ok {
			continue
		}
		fmt.Fprintf(buf, `  <line class="connection" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			fx, fy, tx, ty, lineColor)
	}
}

func (r *svgRenderer) center(s slide.Slide, id string) (float64, float64, bool) {
	rect, ok := s.Layout.RectOf(id)
	if !ok {
		return 0, 0, false
	}
	cx := (float64(rect.Left) + float64(rect.Columns())/2) * r.cellSize
	cy := (float64(rect.Top) + float64(rect.Rows())/2) * r.cellSize
	return cx, cy, true
}
