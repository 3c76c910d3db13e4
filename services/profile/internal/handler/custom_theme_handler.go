package handler

import (
	"context"
	"net/http"

	"github.com/linkiq/linkiq/services/profile/internal/middleware"
	"github.com/linkiq/linkiq/services/profile/internal/service"
	"github.com/linkiq/linkiq/services/profile/internal/themestore"
)

type CustomThemeAPI interface {
	Get(ctx context.Context, userID string) (themestore.Entry, error)
	Save(ctx context.Context, userID string, req service.SaveCustomTheme) (themestore.Entry, error)
	Clear(ctx context.Context, userID string) error
}

type CustomThemeHandler struct{ S CustomThemeAPI }

func (h *CustomThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.S.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *CustomThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req service.SaveCustomTheme
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := h.S.Save(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *CustomThemeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Clear(r.Context(), middleware.UserID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
