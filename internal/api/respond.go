package api

import (
	"encoding/json"
	"errors"
	"net/http"

	sderrors "github.com/slatedeck/slatedeck/pkg/errors"
	"github.com/slatedeck/slatedeck/pkg/store"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error string        `json:"error"`
	Code  sderrors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status via its error code.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: "not found",
			Code:  sderrors.ErrCodeNotFound,
		})
		return
	}

	code := sderrors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: sderrors.UserMessage(err),
		Code:  code,
	})
}

func statusFor(code sderrors.Code) int {
	switch code {
	case sderrors.ErrCodeInvalidInput,
		sderrors.ErrCodeInvalidGrid,
		sderrors.ErrCodeInvalidSpan,
		sderrors.ErrCodeInvalidBlock,
		sderrors.ErrCodeInvalidDeck:
		return http.StatusBadRequest
	case sderrors.ErrCodeNotFound,
		sderrors.ErrCodeDeckNotFound,
		sderrors.ErrCodeSlideNotFound,
		sderrors.ErrCodeBlockNotFound:
		return http.StatusNotFound
	case sderrors.ErrCodeCellOccupied,
		sderrors.ErrCodeSpanRejected:
		return http.StatusConflict
	case sderrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
