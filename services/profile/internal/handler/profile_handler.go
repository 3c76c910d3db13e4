package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/linkiq/linkiq/services/profile/internal/middleware"
	"github.com/linkiq/linkiq/services/profile/internal/model"
)

type ProfileAPI interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, id string, u model.ProfileUpdate) (*model.Profile, error)
	SetThemeSong(ctx context.Context, id, contentType string, size int64, r io.Reader) (*model.Profile, error)
	ClearThemeSong(ctx context.Context, id string) error
}

// ProfileHandler exposes HTTP endpoints for profile operations.
type ProfileHandler struct {
	S         ProfileAPI
	MaxUpload int64
}

func NewProfileHandler(s ProfileAPI, maxUpload int64) *ProfileHandler {
	return &ProfileHandler{S: s, MaxUpload: maxUpload}
}

// Get returns the authenticated user's profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.S.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update modifies the authenticated user's profile. Omitted fields are kept.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.ProfileUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.S.Update(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UploadThemeSong accepts a multipart form with the audio in field "file".
func (h *ProfileHandler) UploadThemeSong(w http.ResponseWriter, r *http.Request) {
	// Room for the multipart envelope on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload+64<<10)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, model.ErrFileTooLarge)
			return
		}
		writeFailure(w, http.StatusBadRequest, "invalid_request", "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	p, err := h.S.SetThemeSong(r.Context(), middleware.UserID(r.Context()),
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) DeleteThemeSong(w http.ResponseWriter, r *http.Request) {
	if err := h.S.ClearThemeSong(r.Context(), middleware.UserID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
