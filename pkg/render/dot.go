package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/slatedeck/slatedeck/pkg/grid/connect"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

// ConnectionsDOT converts a slide's derived connection set to Graphviz DOT
// format. Every block appears as a node; group connections become directed
// edges and span connections become dashed self-loops. The resulting DOT
// string can be rendered using [DOTToSVG] or [DOTToPNG].
func ConnectionsDOT(s slide.Slide) string {
	var buf bytes.Buffer
	buf.WriteString("digraph connections {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, b := range s.Blocks {
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(nodeAttrs(b), ", "))
	}

	buf.WriteString("\n")
	for _, c := range s.Connections() {
		switch c.Kind {
		case connect.KindSpan:
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, label=\"span\"];\n", c.From, c.To)
		case connect.KindGroup:
			fmt.Fprintf(&buf, "  %q -> %q [label=\"group\"];\n", c.From, c.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(b slide.Block) []string {
	label := b.Title
	if label == "" {
		label = b.Kind
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if b.Group != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", "group: "+b.Group))
	}
	return attrs
}

// DOTToSVG renders a DOT graph to SVG using Graphviz.
func DOTToSVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// DOTToPNG renders a DOT graph to PNG using Graphviz.
func DOTToPNG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format, buf *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header so the viewBox starts
// at the origin and the element carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
