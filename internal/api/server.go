// Package api implements the Slatedeck HTTP API.
//
// The API exposes deck storage and the layout engine over REST:
//
//	GET    /healthz
//	GET    /version
//	GET    /v1/decks
//	POST   /v1/decks
//	GET    /v1/decks/{deck}
//	PUT    /v1/decks/{deck}
//	DELETE /v1/decks/{deck}
//	POST   /v1/decks/{deck}/slides
//	GET    /v1/decks/{deck}/slides/{slide}
//	POST   /v1/decks/{deck}/slides/{slide}/blocks
//	DELETE /v1/decks/{deck}/slides/{slide}/blocks/{block}
//	POST   /v1/decks/{deck}/slides/{slide}/layout
//	POST   /v1/decks/{deck}/slides/{slide}/layout/resize
//	POST   /v1/decks/{deck}/slides/{slide}/layout/assign
//	POST   /v1/decks/{deck}/slides/{slide}/layout/span
//	GET    /v1/decks/{deck}/slides/{slide}/connections
//	GET    /v1/decks/{deck}/slides/{slide}/render
//
// Layout mutations return the updated slide together with per-operation
// outcomes, so clients can distinguish a refused drop from an applied one
// without diffing layouts.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/slatedeck/slatedeck/pkg/buildinfo"
	"github.com/slatedeck/slatedeck/pkg/config"
	"github.com/slatedeck/slatedeck/pkg/engine"
	"github.com/slatedeck/slatedeck/pkg/observability"
	"github.com/slatedeck/slatedeck/pkg/store"
)

// Server hosts the Slatedeck REST API.
type Server struct {
	store  store.Store
	engine *engine.Engine
	grid   config.GridConfig
	logger *log.Logger
	router chi.Router
}

// NewServer wires the API routes. The grid config bounds the sizes
// authors may request through resize.
func NewServer(st store.Store, eng *engine.Engine, grid config.GridConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:  st,
		engine: eng,
		grid:   grid,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1/decks", func(r chi.Router) {
		r.Get("/", s.handleListDecks)
		r.Post("/", s.handleCreateDeck)

		r.Route("/{deck}", func(r chi.Router) {
			r.Get("/", s.handleGetDeck)
			r.Put("/", s.handlePutDeck)
			r.Delete("/", s.handleDeleteDeck)

			r.Post("/slides", s.handleAddSlide)
			r.Route("/slides/{slide}", func(r chi.Router) {
				r.Get("/", s.handleGetSlide)
				r.Post("/blocks", s.handleAddBlock)
				r.Delete("/blocks/{block}", s.handleRemoveBlock)
				r.Post("/layout", s.handleApplyScript)
				r.Post("/layout/resize", s.handleResize)
				r.Post("/layout/assign", s.handleAssign)
				r.Post("/layout/span", s.handleSpan)
				r.Get("/connections", s.handleConnections)
				r.Get("/render", s.handleRender)
			})
		})
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// logRequests emits one structured log line per request and feeds the
// HTTP observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}
