package service

import (
	"context"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/themestore"
)

type ProfileRepository interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	GetByUsername(ctx context.Context, username string) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	SetThemeSong(ctx context.Context, id, url string) error
}

type ProfileCache interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	GetByUsername(ctx context.Context, username string) (*model.Profile, error)
	Set(ctx context.Context, p *model.Profile) error
	Delete(ctx context.Context, id, username string) error
}

type LinkRepository interface {
	List(ctx context.Context, userID string) ([]model.Link, error)
	ListActive(ctx context.Context, userID string) ([]model.Link, error)
	Get(ctx context.Context, userID, id string) (*model.Link, error)
	Create(ctx context.Context, l *model.Link) error
	Update(ctx context.Context, l *model.Link) error
	Delete(ctx context.Context, userID, id string) error
	IncrementClicks(ctx context.Context, id string) (*model.Link, error)
	TotalClicks(ctx context.Context, userID string) (int64, error)
}

// Transactor is implemented by tx.Manager. Repository and outbox calls made
// with the ctx passed to fn commit or roll back together.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventWriter is implemented by outbox.Repository.
type EventWriter interface {
	Add(ctx context.Context, topic, key string, payload []byte) error
}

// CustomThemes is implemented by themestore.ThemeStore.
type CustomThemes interface {
	Load(ctx context.Context, userID string) (themestore.Entry, error)
	Save(ctx context.Context, userID string, e themestore.Entry) (themestore.Entry, error)
	Clear(ctx context.Context, userID string) error
}

// Cards is implemented by themestore.CardStore.
type Cards interface {
	Load(ctx context.Context, userID string) (themestore.CardEntry, error)
	Save(ctx context.Context, userID string, c model.Card) (themestore.CardEntry, error)
	Clear(ctx context.Context, userID string) error
}
