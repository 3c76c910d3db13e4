package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/observability"
	"github.com/linkiq/linkiq/services/profile/internal/storage"
)

// ProfileService handles profile business logic.
type ProfileService struct {
	Repo        ProfileRepository
	Cache       ProfileCache
	Outbox      EventWriter
	Tx          Transactor
	Media       storage.ObjectStore
	MaxSongSize int64
	Now         func() time.Time
}

// Get returns a profile by user ID, checking cache first.
func (s *ProfileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	if p, err := s.Cache.Get(ctx, id); err == nil {
		return p, nil
	}
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	s.fill(ctx, p)
	return p, nil
}

// GetPublic looks a profile up by its public username.
func (s *ProfileService) GetPublic(ctx context.Context, username string) (*model.Profile, error) {
	username = model.NormalizeUsername(username)
	if !model.ValidUsername(username) {
		return nil, model.ErrProfileNotFound
	}
	if p, err := s.Cache.GetByUsername(ctx, username); err == nil && p.Username == username {
		return p, nil
	}
	p, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	s.fill(ctx, p)
	return p, nil
}

// Update applies u to the stored profile, invalidates the cache and writes
// a profile.updated event.
func (s *ProfileService) Update(ctx context.Context, id string, u model.ProfileUpdate) (*model.Profile, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	oldUsername := p.Username

	if err := u.Apply(p); err != nil {
		return nil, err
	}
	err = s.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.Repo.Update(ctx, p); err != nil {
			return fmt.Errorf("failed to update profile in repo: %w", err)
		}
		return s.emit(ctx, model.TopicProfileUpdated, id, p)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id, oldUsername)
	return p, nil
}

// SetThemeSong stores an uploaded song under a fresh key and points the
// profile at it. The previous song, if any, is removed afterwards.
func (s *ProfileService) SetThemeSong(ctx context.Context, id, contentType string, size int64, r io.Reader) (*model.Profile, error) {
	if err := storage.CheckThemeSong(contentType, size, s.MaxSongSize); err != nil {
		return nil, err
	}
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	key := storage.ThemeSongKey(id, s.now())
	n, err := s.Media.Put(ctx, key, io.LimitReader(r, s.MaxSongSize+1))
	if err != nil {
		return nil, fmt.Errorf("store theme song: %w", err)
	}
	if n > s.MaxSongSize {
		_ = s.Media.Delete(ctx, key)
		return nil, storage.CheckThemeSong(contentType, n, s.MaxSongSize)
	}
	observability.ThemeSongBytes.Observe(float64(n))

	previous := p.ThemeSongURL
	p.ThemeSongURL = s.Media.URL(key)
	err = s.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.Repo.SetThemeSong(ctx, id, p.ThemeSongURL); err != nil {
			return fmt.Errorf("failed to save theme song: %w", err)
		}
		return s.emit(ctx, model.TopicProfileUpdated, id, p)
	})
	if err != nil {
		_ = s.Media.Delete(ctx, key)
		return nil, err
	}

	if previous != p.ThemeSongURL {
		s.removeMedia(ctx, previous)
	}
	s.invalidate(ctx, id, p.Username)
	return p, nil
}

func (s *ProfileService) ClearThemeSong(ctx context.Context, id string) error {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	if p.ThemeSongURL == "" {
		return nil
	}
	song := p.ThemeSongURL
	p.ThemeSongURL = ""
	err = s.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.Repo.SetThemeSong(ctx, id, ""); err != nil {
			return fmt.Errorf("failed to clear theme song: %w", err)
		}
		return s.emit(ctx, model.TopicProfileUpdated, id, p)
	})
	if err != nil {
		return err
	}

	s.removeMedia(ctx, song)
	s.invalidate(ctx, id, p.Username)
	return nil
}

func (s *ProfileService) fill(ctx context.Context, p *model.Profile) {
	if err := s.Cache.Set(ctx, p); err != nil {
		observability.GetLogger(ctx).Debug("profile cache set failed", zap.Error(err))
	}
}

func (s *ProfileService) invalidate(ctx context.Context, id, username string) {
	// A stale cache entry expires with its TTL.
	if err := s.Cache.Delete(ctx, id, username); err != nil {
		observability.GetLogger(ctx).Warn("profile cache delete failed", zap.String("user_id", id), zap.Error(err))
	}
}

func (s *ProfileService) removeMedia(ctx context.Context, url string) {
	key, ok := s.Media.KeyFromURL(url)
	if !ok {
		return
	}
	if err := s.Media.Delete(ctx, key); err != nil {
		observability.GetLogger(ctx).Warn("old theme song not removed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ProfileService) emit(ctx context.Context, topic, key string, v any) error {
	return emit(ctx, s.Outbox, topic, key, v)
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func emit(ctx context.Context, out EventWriter, topic, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}
	if err := out.Add(ctx, topic, key, payload); err != nil {
		return fmt.Errorf("failed to save outbox event: %w", err)
	}
	return nil
}
