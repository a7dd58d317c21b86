// Package engine executes layout edit scripts against slides and derives
// cached artifacts from the results.
//
// The engine is the shared entry point for the CLI and API hosts: both
// submit [Op] scripts and read back connection sets or rendered outputs,
// so caching and observability live in one place instead of per host.
//
// # Usage
//
// Create an Engine and apply a script:
//
//	eng := engine.New(cache, nil, logger)
//	s, results, err := eng.Apply(ctx, s, []engine.Op{
//	    {Op: engine.OpResize, Rows: 2, Columns: 3},
//	    {Op: engine.OpAssign, Block: "b1", Row: 0, Column: 0},
//	})
//
// Derive connections or artifacts with caching:
//
//	conns, hit, err := eng.Connections(ctx, s)
//	artifacts, hit, err := eng.Render(ctx, s, []string{"svg"})
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slatedeck/slatedeck/pkg/cache"
	"github.com/slatedeck/slatedeck/pkg/grid/connect"
	"github.com/slatedeck/slatedeck/pkg/observability"
	"github.com/slatedeck/slatedeck/pkg/render"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

// Engine applies edit scripts and derives artifacts with caching.
//
// The Engine is stateless except for the cache and logger - it does not
// hold slides. Multiple goroutines can safely share one Engine.
type Engine struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// New creates an engine with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func New(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Engine {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Apply runs an edit script against a slide's layout. Each operation sees
// the snapshot produced by the previous one. Refused mutations are
// reported in the results and the script continues; contract violations
// (malformed ops, invalid arguments) abort the script with an error and
// the original slide is returned unchanged.
func (e *Engine) Apply(ctx context.Context, s slide.Slide, ops []Op) (slide.Slide, []OpResult, error) {
	for i, op := range ops {
		if err := op.Validate(); err != nil {
			return s, nil, fmt.Errorf("op %d: %w", i, err)
		}
	}

	layout := s.Layout
	results := make([]OpResult, 0, len(ops))
	for i, op := range ops {
		start := time.Now()
		observability.Layout().OnMutateStart(ctx, op.Op, op.Block)

		next, applied, err := op.apply(layout)
		observability.Layout().OnMutateComplete(ctx, op.Op, op.Block, applied, time.Since(start), err)
		if err != nil {
			return s, nil, fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}

		if applied {
			layout = next
		} else {
			e.Logger.Debug("mutation refused", "op", op.Op, "block", op.Block)
		}
		results = append(results, OpResult{Op: op, Applied: applied})
	}

	s.Layout = layout
	e.Logger.Info("applied edit script",
		"slide", s.ID,
		"ops", len(ops),
		"applied", countApplied(results))
	return s, results, nil
}

// Connections derives the slide's connection set, serving repeated calls
// for an unchanged slide from the cache. The second return reports a
// cache hit.
func (e *Engine) Connections(ctx context.Context, s slide.Slide) ([]connect.Connection, bool, error) {
	hash, err := slideHash(s)
	if err != nil {
		return nil, false, err
	}
	key := e.Keyer.ConnectionsKey(hash)

	if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
		var conns []connect.Connection
		if err := json.Unmarshal(data, &conns); err == nil {
			observability.Cache().OnCacheHit(ctx, "connections")
			return conns, true, nil
		}
		// Fall through and rederive on a corrupt entry.
	}
	observability.Cache().OnCacheMiss(ctx, "connections")

	start := time.Now()
	observability.Layout().OnConnectStart(ctx, len(s.Blocks))
	conns := s.Connections()
	observability.Layout().OnConnectComplete(ctx, len(conns), time.Since(start))

	if data, err := json.Marshal(conns); err == nil {
		if err := e.Cache.Set(ctx, key, data, cache.DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "connections", len(data))
		}
	}

	e.Logger.Debug("derived connections",
		"slide", s.ID,
		"blocks", len(s.Blocks),
		"connections", len(conns))
	return conns, false, nil
}

// Render produces the requested artifact formats for a slide, serving
// unchanged slides from the cache. The second return reports whether all
// artifacts came from the cache.
func (e *Engine) Render(ctx context.Context, s slide.Slide, formats []string) (map[string][]byte, bool, error) {
	if len(formats) == 0 {
		formats = []string{FormatSVG}
	}
	for _, f := range formats {
		if !ValidFormats[f] {
			return nil, false, fmt.Errorf("invalid format: %q (must be one of: svg, dot, png, json)", f)
		}
	}

	hash, err := slideHash(s)
	if err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache.
	artifacts := make(map[string][]byte)
	allCached := true
	for _, f := range formats {
		key := e.Keyer.ArtifactKey(hash, f)
		if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[f] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(formats) {
		return artifacts, true, nil
	}

	start := time.Now()
	observability.Layout().OnRenderStart(ctx, formats)
	rendered, err := renderFormats(ctx, s, formats)
	observability.Layout().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for f, data := range rendered {
		key := e.Keyer.ArtifactKey(hash, f)
		if err := e.Cache.Set(ctx, key, data, cache.DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	e.Logger.Info("rendered artifacts",
		"slide", s.ID,
		"formats", formats,
		"duration", time.Since(start))
	return rendered, false, nil
}

// Close releases resources held by the engine (primarily the cache).
func (e *Engine) Close() error {
	if e.Cache != nil {
		return e.Cache.Close()
	}
	return nil
}

func renderFormats(ctx context.Context, s slide.Slide, formats []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(formats))
	for _, f := range formats {
		switch f {
		case FormatSVG:
			out[f] = render.SVG(s, render.WithConnections())
		case FormatDOT:
			out[f] = []byte(render.ConnectionsDOT(s))
		case FormatPNG:
			png, err := render.DOTToPNG(ctx, render.ConnectionsDOT(s))
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			out[f] = png
		case FormatJSON:
			data, err := slide.MarshalSlide(s)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			out[f] = data
		}
	}
	return out, nil
}

// slideHash returns the content hash used in cache keys. Any change to
// blocks, grouping, or layout changes the hash.
func slideHash(s slide.Slide) (string, error) {
	data, err := slide.MarshalSlide(s)
	if err != nil {
		return "", fmt.Errorf("serialize slide for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

func countApplied(results []OpResult) int {
	n := 0
	for _, r := range results {
		if r.Applied {
			n++
		}
	}
	return n
}
