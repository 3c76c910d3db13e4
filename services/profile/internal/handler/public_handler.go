package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/service"
)

type PublicAPI interface {
	Get(ctx context.Context, username string) (*service.PublicPage, error)
	QRCode(ctx context.Context, username string, size int) ([]byte, error)
}

type PublicHandler struct{ S PublicAPI }

func (h *PublicHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.S.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=30")
	writeJSON(w, http.StatusOK, page)
}

// QRCode serves a PNG QR code of the public page. ?size sets the width in
// pixels.
func (h *PublicHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	size := 0
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "invalid_request", "size must be a number")
			return
		}
		size = n
	}

	username := chi.URLParam(r, "username")
	b, err := h.S.QRCode(r.Context(), username, size)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s-qrcode.png"`, model.NormalizeUsername(username)))
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(b)
}
