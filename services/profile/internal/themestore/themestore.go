package themestore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/linkiq/linkiq/services/profile/internal/observability"
)

// SchemaVersion is bumped whenever Entry changes shape. Older entries are
// discarded on read.
const SchemaVersion = 1

// Entry is one user's saved custom theme.
type Entry struct {
	Version  int             `json:"version"`
	Username string          `json:"username"`
	Active   bool            `json:"active"`
	Theme    json.RawMessage `json:"theme,omitempty"`
	HTML     string          `json:"html,omitempty"`
	SavedAt  time.Time       `json:"saved_at"`
}

// ThemeStore is the typed view over a Store.
type ThemeStore struct {
	S   Store
	Now func() time.Time
}

func New(s Store) *ThemeStore { return &ThemeStore{S: s, Now: time.Now} }

// Load returns the entry for userID. A missing, outdated or corrupt entry
// yields ErrNotFound; the latter two are deleted.
func (t *ThemeStore) Load(ctx context.Context, userID string) (Entry, error) {
	var e Entry
	if err := load(ctx, t.S, userID, SchemaVersion, &e, func() int { return e.Version }); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// load decodes key into dst and deletes it when it does not decode or
// version() differs from want.
func load(ctx context.Context, s Store, key string, want int, dst any, version func() int) error {
	b, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(b, dst); err != nil || version() != want {
		observability.GetLogger(ctx).Warn("discarding stored entry",
			zap.String("key", key),
			zap.Int("version", version()),
			zap.Error(err),
		)
		if derr := s.Delete(ctx, key); derr != nil {
			return derr
		}
		return ErrNotFound
	}
	return nil
}

// Save stamps e with the current schema version and time before storing it.
func (t *ThemeStore) Save(ctx context.Context, userID string, e Entry) (Entry, error) {
	e.Version = SchemaVersion
	e.SavedAt = t.Now().UTC()

	b, err := json.Marshal(e)
	if err != nil {
		return Entry{}, err
	}
	if err := t.S.Set(ctx, userID, b); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (t *ThemeStore) Clear(ctx context.Context, userID string) error {
	return remove(ctx, t.S, userID)
}

func remove(ctx context.Context, s Store, key string) error {
	err := s.Delete(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
