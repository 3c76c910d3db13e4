package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkiq/linkiq/services/profile/internal/middleware"
	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/service"
)

type LinkAPI interface {
	List(ctx context.Context, userID string) ([]model.Link, error)
	Add(ctx context.Context, userID string, l model.Link) (*model.Link, error)
	Update(ctx context.Context, userID, id string, u model.LinkUpdate) (*model.Link, error)
	Delete(ctx context.Context, userID, id string) error
	Click(ctx context.Context, id string) (*model.Link, error)
	Stats(ctx context.Context, userID string) (service.Stats, error)
}

type LinkHandler struct{ S LinkAPI }

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.S.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Icon  string `json:"icon"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.S.Add(r.Context(), middleware.UserID(r.Context()), model.Link{
		Title: req.Title,
		URL:   req.URL,
		Icon:  req.Icon,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.LinkUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.S.Update(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Click is public: visitors of a page are not signed in.
func (h *LinkHandler) Click(w http.ResponseWriter, r *http.Request) {
	l, err := h.S.Click(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"url": l.URL, "click_count": l.ClickCount})
}

func (h *LinkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.S.Stats(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
