package handler

import (
	"context"
	"net/http"

	"github.com/linkiq/linkiq/services/profile/internal/middleware"
	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/service"
)

type CardAPI interface {
	Get(ctx context.Context, userID string) (service.CardView, error)
	Save(ctx context.Context, userID string, c model.Card) (service.CardView, error)
	Clear(ctx context.Context, userID string) error
}

type CardHandler struct{ S CardAPI }

func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.S.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CardHandler) Put(w http.ResponseWriter, r *http.Request) {
	var c model.Card
	if !decodeJSON(w, r, &c) {
		return
	}
	v, err := h.S.Save(r.Context(), middleware.UserID(r.Context()), c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Clear(r.Context(), middleware.UserID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
