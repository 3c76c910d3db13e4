package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/observability"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

var errorTable = []struct {
	err    error
	status int
	code   string
}{
	{model.ErrProfileNotFound, http.StatusNotFound, "not_found"},
	{model.ErrLinkNotFound, http.StatusNotFound, "not_found"},
	{model.ErrCustomThemeNotFound, http.StatusNotFound, "not_found"},
	{model.ErrUsernameTaken, http.StatusConflict, "conflict"},
	{model.ErrInvalidUpdate, http.StatusBadRequest, "invalid_request"},
	{model.ErrInvalidUsername, http.StatusBadRequest, "invalid_request"},
	{model.ErrInvalidTheme, http.StatusBadRequest, "invalid_request"},
	{model.ErrInvalidLink, http.StatusBadRequest, "invalid_request"},
	{model.ErrInvalidURL, http.StatusBadRequest, "invalid_request"},
	{model.ErrInvalidCustomTheme, http.StatusBadRequest, "invalid_request"},
	{model.ErrInvalidCard, http.StatusBadRequest, "invalid_request"},
	{model.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "too_large"},
	{model.ErrUnsupportedMedia, http.StatusUnsupportedMediaType, "unsupported_media"},
}

// writeError maps domain errors to statuses. Anything unknown is logged and
// reported as a 500 without detail. Size and card errors keep their detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			msg := e.err.Error()
			if e.status == http.StatusRequestEntityTooLarge || e.err == model.ErrInvalidCard {
				msg = err.Error()
			}
			writeFailure(w, e.status, e.code, msg)
			return
		}
	}

	observability.GetLogger(r.Context()).Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeFailure(w, http.StatusInternalServerError, "internal", "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return false
	}
	return true
}
