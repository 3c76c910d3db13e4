package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/themestore"
)

const maxCustomHTMLBytes = 512 << 10

// SaveCustomTheme is the body of PUT /profile/me/custom-theme. Active
// defaults to true.
type SaveCustomTheme struct {
	Theme  json.RawMessage `json:"theme"`
	HTML   string          `json:"html"`
	Active *bool           `json:"active"`
}

// CustomThemeService stores the generated theme a user chose to keep.
type CustomThemeService struct {
	Store    CustomThemes
	Profiles ProfileRepository
}

func (s *CustomThemeService) Get(ctx context.Context, userID string) (themestore.Entry, error) {
	e, err := s.Store.Load(ctx, userID)
	if errors.Is(err, themestore.ErrNotFound) {
		return themestore.Entry{}, model.ErrCustomThemeNotFound
	}
	return e, err
}

// Save scopes the entry to the user's current username.
func (s *CustomThemeService) Save(ctx context.Context, userID string, req SaveCustomTheme) (themestore.Entry, error) {
	theme := bytes.TrimSpace(req.Theme)
	if bytes.Equal(theme, []byte("null")) {
		theme = nil
	}
	if len(theme) == 0 && req.HTML == "" {
		return themestore.Entry{}, model.ErrInvalidCustomTheme
	}
	if len(theme) > 0 && (theme[0] != '{' || !json.Valid(theme)) {
		return themestore.Entry{}, model.ErrInvalidCustomTheme
	}
	if len(req.HTML) > maxCustomHTMLBytes {
		return themestore.Entry{}, model.ErrInvalidCustomTheme
	}

	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return themestore.Entry{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return s.Store.Save(ctx, userID, themestore.Entry{
		Username: p.Username,
		Active:   active,
		Theme:    theme,
		HTML:     req.HTML,
	})
}

func (s *CustomThemeService) Clear(ctx context.Context, userID string) error {
	return s.Store.Clear(ctx, userID)
}
