package themestore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/linkiq/linkiq/services/profile/internal/model"
)

// CardSchemaVersion is bumped whenever CardEntry changes shape.
const CardSchemaVersion = 1

// CardEntry is one user's saved business card.
type CardEntry struct {
	Version int        `json:"version"`
	Card    model.Card `json:"card"`
	SavedAt time.Time  `json:"saved_at"`
}

// CardStore keeps business cards in a Store of their own.
type CardStore struct {
	S   Store
	Now func() time.Time
}

func NewCardStore(s Store) *CardStore { return &CardStore{S: s, Now: time.Now} }

// Load returns the saved card, or ErrNotFound. Outdated and corrupt
// entries are deleted.
func (c *CardStore) Load(ctx context.Context, userID string) (CardEntry, error) {
	var e CardEntry
	if err := load(ctx, c.S, userID, CardSchemaVersion, &e, func() int { return e.Version }); err != nil {
		return CardEntry{}, err
	}
	return e, nil
}

func (c *CardStore) Save(ctx context.Context, userID string, card model.Card) (CardEntry, error) {
	e := CardEntry{Version: CardSchemaVersion, Card: card, SavedAt: c.Now().UTC()}
	b, err := json.Marshal(e)
	if err != nil {
		return CardEntry{}, err
	}
	if err := c.S.Set(ctx, userID, b); err != nil {
		return CardEntry{}, err
	}
	return e, nil
}

func (c *CardStore) Clear(ctx context.Context, userID string) error {
	return remove(ctx, c.S, userID)
}
