// Package render turns slides into visual outputs.
//
// # Overview
//
// Two renderers are provided:
//
//   - Grid SVG: the slide as authors see it, a grid of block rectangles
//     with span regions and group link lines drawn on top.
//   - Connection diagrams: the derived connection set as a Graphviz
//     directed graph, for inspecting inference results.
//
// # Grid SVG
//
// [SVG] produces a self-contained SVG document:
//
//	svg := render.SVG(s, render.WithConnections())
//
// # Connection Diagrams
//
// [ConnectionsDOT] emits DOT; [DOTToSVG] and [DOTToPNG] rasterize it
// using Graphviz:
//
//	dot := render.ConnectionsDOT(s)
//	svg, err := render.DOTToSVG(ctx, dot)
package render
