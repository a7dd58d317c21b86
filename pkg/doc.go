// Package pkg provides the core libraries for Slatedeck slide layout.
//
// # Overview
//
// Slatedeck arranges slide content blocks on a per-slide grid and derives
// display connections from the resulting geometry. The pkg directory is
// organized into four main areas:
//
//  1. [grid] - Domain logic (layout geometry, mutations, connection inference)
//  2. [slide] - Authoring model (blocks, slides, decks, serialization)
//  3. [engine] - Orchestration (operation scripts, caching, rendering)
//  4. [store] / [cache] - Infrastructure (deck persistence, derivation cache)
//
// # Architecture
//
// The typical data flow through Slatedeck:
//
//	Slide document (JSON)
//	         ↓
//	    [grid] package (validate + mutate the layout)
//	         ↓
//	    [grid/connect] package (derive span and group connections)
//	         ↓
//	    [render] package (SVG grid, Graphviz connection diagrams)
//	         ↓
//	    SVG/DOT/PNG/JSON output
//
// # Quick Start
//
// Place two blocks and derive their connections:
//
//	import (
//	    "github.com/slatedeck/slatedeck/pkg/slide"
//	)
//
//	s := slide.NewSlide("Photosynthesis")
//	a := slide.NewBlock(slide.KindText)
//	b := slide.NewBlock(slide.KindImage)
//	a.Group, b.Group = "intro", "intro"
//	s.AddBlock(a)
//	s.AddBlock(b)
//
//	l, _ := s.Layout.Resize(2, 2)
//	l, _, _ = l.Assign(a.ID, 0, 0)
//	l, _, _ = l.Assign(b.ID, 1, 1)
//	s.Layout = l
//
//	conns := s.Connections() // one group connection, a → b
//
// # Main Packages
//
// [grid] - The layout engine core. A Layout is a value type; every mutation
// returns a new Layout and reports whether the grid accepted the change.
// The no-overlap and in-bounds invariants hold after every operation.
//
// [grid/connect] - Pure derivation of display connections from geometry:
// multi-cell spans become span connections, shared groups become chains of
// group connections in reading order.
//
// [slide] - Blocks, slides, and decks, plus JSON serialization. Block
// content is opaque to the layout engine.
//
// [editor] - Stateful editing sessions with drag-and-drop semantics and
// bounded undo, for interactive hosts.
//
// [engine] - Applies operation scripts to slides and renders artifacts,
// caching derivations keyed by slide content.
//
// [render] - SVG rendering of the slide grid and Graphviz diagrams of the
// connection set.
//
// [store] - Deck persistence: memory, file, and MongoDB backends.
//
// [cache] - Derivation cache: file, Redis, and null backends with
// content-hash keys.
//
// [config] - TOML host configuration for backend selection and grid limits.
//
// [errors] - Coded errors shared by the CLI and API surfaces.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/grid/...     # Specific package
//
// [grid]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/grid
// [grid/connect]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/grid/connect
// [slide]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/slide
// [editor]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/editor
// [engine]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/engine
// [render]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/render
// [store]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/store
// [cache]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/cache
// [config]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/config
// [errors]: https://pkg.go.dev/github.com/slatedeck/slatedeck/pkg/errors
package pkg
