package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/observability"
)

// LinkService manages a user's links and their click counters.
type LinkService struct {
	Repo   LinkRepository
	Outbox EventWriter
	Tx     Transactor
	Now    func() time.Time
}

// Stats is the dashboard summary.
type Stats struct {
	TotalClicks int64 `json:"total_clicks"`
	LinkCount   int   `json:"link_count"`
	ActiveLinks int   `json:"active_links"`
}

func (s *LinkService) List(ctx context.Context, userID string) ([]model.Link, error) {
	return s.Repo.List(ctx, userID)
}

// Add validates l and appends it to the end of the user's list.
func (s *LinkService) Add(ctx context.Context, userID string, l model.Link) (*model.Link, error) {
	l.UserID = userID
	if err := l.ValidateNew(); err != nil {
		return nil, err
	}
	err := s.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.Repo.Create(ctx, &l); err != nil {
			return err
		}
		return emit(ctx, s.Outbox, model.TopicLinkCreated, userID, model.LinkChanged{LinkID: l.ID, UserID: userID})
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *LinkService) Update(ctx context.Context, userID, id string, u model.LinkUpdate) (*model.Link, error) {
	if !validLinkID(id) {
		return nil, model.ErrLinkNotFound
	}
	l, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := u.Apply(l); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	return l, nil
}

func (s *LinkService) Delete(ctx context.Context, userID, id string) error {
	if !validLinkID(id) {
		return model.ErrLinkNotFound
	}
	return s.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.Repo.Delete(ctx, userID, id); err != nil {
			return err
		}
		return emit(ctx, s.Outbox, model.TopicLinkDeleted, userID, model.LinkChanged{LinkID: id, UserID: userID})
	})
}

// Click records one visit to an active link and returns the link with its
// destination and new count. A failed event write does not undo the click.
func (s *LinkService) Click(ctx context.Context, id string) (*model.Link, error) {
	if !validLinkID(id) {
		return nil, model.ErrLinkNotFound
	}
	l, err := s.Repo.IncrementClicks(ctx, id)
	if err != nil {
		return nil, err
	}
	observability.LinkClicksTotal.Inc()

	ev := model.LinkClicked{LinkID: l.ID, UserID: l.UserID, ClickCount: l.ClickCount, At: s.now().UTC()}
	if err := emit(ctx, s.Outbox, model.TopicLinkClicked, l.UserID, ev); err != nil {
		observability.GetLogger(ctx).Warn("link click event dropped", zap.String("link_id", id), zap.Error(err))
	}
	return l, nil
}

func (s *LinkService) Stats(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	var links []model.Link

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st.TotalClicks, err = s.Repo.TotalClicks(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = s.Repo.List(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	st.LinkCount = len(links)
	for _, l := range links {
		if l.IsActive {
			st.ActiveLinks++
		}
	}
	return st, nil
}

// Link ids are UUIDs; anything else cannot name a stored link.
func validLinkID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *LinkService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
