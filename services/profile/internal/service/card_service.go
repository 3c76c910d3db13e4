package service

import (
	"context"
	"errors"
	"time"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/themestore"
)

// CardView is a user's business card. Saved is false while the card is
// still the default built from the profile.
type CardView struct {
	Card    model.Card `json:"card"`
	Saved   bool       `json:"saved"`
	SavedAt *time.Time `json:"saved_at,omitempty"`
}

// CardService keeps the data behind a user's printable business card.
type CardService struct {
	Store    Cards
	Profiles ProfileRepository
}

// Get returns the saved card or, when none is saved, one prefilled from
// the profile.
func (s *CardService) Get(ctx context.Context, userID string) (CardView, error) {
	e, err := s.Store.Load(ctx, userID)
	if err == nil {
		return CardView{Card: e.Card, Saved: true, SavedAt: &e.SavedAt}, nil
	}
	if !errors.Is(err, themestore.ErrNotFound) {
		return CardView{}, err
	}

	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return CardView{}, err
	}
	return CardView{Card: model.DefaultCard(p)}, nil
}

func (s *CardService) Save(ctx context.Context, userID string, c model.Card) (CardView, error) {
	if err := c.Normalize(); err != nil {
		return CardView{}, err
	}
	e, err := s.Store.Save(ctx, userID, c)
	if err != nil {
		return CardView{}, err
	}
	return CardView{Card: e.Card, Saved: true, SavedAt: &e.SavedAt}, nil
}

func (s *CardService) Clear(ctx context.Context, userID string) error {
	return s.Store.Clear(ctx, userID)
}
