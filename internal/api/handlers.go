package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slatedeck/slatedeck/pkg/engine"
	sderrors "github.com/slatedeck/slatedeck/pkg/errors"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

// mutationResponse is returned by every layout mutation endpoint: the
// slide after the script ran, plus per-operation outcomes.
type mutationResponse struct {
	Slide   slide.Slide       `json:"slide"`
	Results []engine.OpResult `json:"results"`
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	d := slide.NewDeck(req.Title)
	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "deck"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handlePutDeck(w http.ResponseWriter, r *http.Request) {
	d, err := slide.ReadDeck(r.Body)
	if err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidDeck, err, "invalid deck"))
		return
	}
	d.ID = chi.URLParam(r, "deck")
	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "deck")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSlide(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	d, err := s.store.Get(r.Context(), chi.URLParam(r, "deck"))
	if err != nil {
		writeError(w, err)
		return
	}

	sl := slide.NewSlide(req.Title)
	d.Slides = append(d.Slides, sl)
	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sl)
}

func (s *Server) handleGetSlide(w http.ResponseWriter, r *http.Request) {
	_, sl, ok := s.loadSlide(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

func (s *Server) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind  string `json:"kind"`
		Group string `json:"group"`
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Kind == "" {
		writeError(w, sderrors.New(sderrors.ErrCodeInvalidBlock, "block kind is required"))
		return
	}

	d, sl, ok := s.loadSlide(w, r)
	if !ok {
		return
	}

	b := slide.NewBlock(req.Kind)
	b.Group = req.Group
	b.Title = req.Title
	b.Body = req.Body
	sl.AddBlock(b)

	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleRemoveBlock(w http.ResponseWriter, r *http.Request) {
	d, sl, ok := s.loadSlide(w, r)
	if !ok {
		return
	}

	blockID := chi.URLParam(r, "block")
	if _, exists := sl.Block(blockID); !exists {
		writeError(w, sderrors.New(sderrors.ErrCodeBlockNotFound, "block %s not in slide %s", blockID, sl.ID))
		return
	}
	sl.RemoveBlock(blockID)

	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleApplyScript runs an arbitrary edit script. Refused operations do
// not fail the request; the per-op results report them.
func (s *Server) handleApplyScript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ops []engine.Op `json:"ops"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	s.mutate(w, r, req.Ops, "")
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rows    int `json:"rows"`
		Columns int `json:"columns"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := sderrors.ValidateGridSize(req.Rows, req.Columns, s.grid.MaxRows, s.grid.MaxColumns); err != nil {
		writeError(w, err)
		return
	}
	s.mutate(w, r, []engine.Op{{Op: engine.OpResize, Rows: req.Rows, Columns: req.Columns}}, "")
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Block  string `json:"block"`
		Row    int    `json:"row"`
		Column int    `json:"column"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	ops := []engine.Op{{Op: engine.OpAssign, Block: req.Block, Row: req.Row, Column: req.Column}}
	s.mutate(w, r, ops, sderrors.ErrCodeCellOccupied)
}

func (s *Server) handleSpan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Block      string `json:"block"`
		RowSpan    int    `json:"rowSpan"`
		ColumnSpan int    `json:"columnSpan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	ops := []engine.Op{{Op: engine.OpSpan, Block: req.Block, RowSpan: req.RowSpan, ColumnSpan: req.ColumnSpan}}
	s.mutate(w, r, ops, sderrors.ErrCodeSpanRejected)
}

// mutate applies ops to the addressed slide and persists the deck when
// anything changed. A non-empty refusedCode turns a refused single
// operation into a 409 so drag-and-drop clients get a conflict status
// instead of diffing results.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, ops []engine.Op, refusedCode sderrors.Code) {
	d, sl, ok := s.loadSlide(w, r)
	if !ok {
		return
	}

	next, results, err := s.engine.Apply(r.Context(), *sl, ops)
	if err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "edit script rejected"))
		return
	}

	if refusedCode != "" && len(results) == 1 && !results[0].Applied {
		writeError(w, sderrors.New(refusedCode, "mutation refused"))
		return
	}

	*sl = next
	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Slide: next, Results: results})
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	_, sl, ok := s.loadSlide(w, r)
	if !ok {
		return
	}

	conns, cached, err := s.engine.Connections(r.Context(), *sl)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"connections": conns,
		"cached":      cached,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	_, sl, ok := s.loadSlide(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = engine.FormatSVG
	}

	artifacts, _, err := s.engine.Render(r.Context(), *sl, []string{format})
	if err != nil {
		writeError(w, sderrors.Wrap(sderrors.ErrCodeInvalidInput, err, "render failed"))
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func contentTypeFor(format string) string {
	switch format {
	case engine.FormatSVG:
		return "image/svg+xml"
	case engine.FormatPNG:
		return "image/png"
	case engine.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// loadSlide resolves the deck and slide from the URL, writing the error
// response itself when either is missing. The returned slide pointer
// aliases into the returned deck so mutations persist with one Put.
func (s *Server) loadSlide(w http.ResponseWriter, r *http.Request) (slide.Deck, *slide.Slide, bool) {
	deckID := chi.URLParam(r, "deck")
	d, err := s.store.Get(r.Context(), deckID)
	if err != nil {
		writeError(w, err)
		return slide.Deck{}, nil, false
	}

	slideID := chi.URLParam(r, "slide")
	sl := d.Slide(slideID)
	if sl == nil {
		writeError(w, sderrors.New(sderrors.ErrCodeSlideNotFound, "slide %s not in deck %s", slideID, deckID))
		return slide.Deck{}, nil, false
	}
	return d, sl, true
}
