package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/themestore"
)

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) Get(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepo) GetByUsername(ctx context.Context, username string) (*model.Profile, error) {
	args := m.Called(ctx, username)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfileRepo) SetThemeSong(ctx context.Context, id, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockCache) GetByUsername(ctx context.Context, username string) (*model.Profile, error) {
	args := m.Called(ctx, username)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, p *model.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, id, username string) error {
	return m.Called(ctx, id, username).Error(0)
}

type mockLinkRepo struct{ mock.Mock }

func (m *mockLinkRepo) List(ctx context.Context, userID string) ([]model.Link, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).([]model.Link)
	return l, args.Error(1)
}

func (m *mockLinkRepo) ListActive(ctx context.Context, userID string) ([]model.Link, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).([]model.Link)
	return l, args.Error(1)
}

func (m *mockLinkRepo) Get(ctx context.Context, userID, id string) (*model.Link, error) {
	args := m.Called(ctx, userID, id)
	l, _ := args.Get(0).(*model.Link)
	return l, args.Error(1)
}

func (m *mockLinkRepo) Create(ctx context.Context, l *model.Link) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLinkRepo) Update(ctx context.Context, l *model.Link) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLinkRepo) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockLinkRepo) IncrementClicks(ctx context.Context, id string) (*model.Link, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*model.Link)
	return l, args.Error(1)
}

func (m *mockLinkRepo) TotalClicks(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockOutbox struct{ mock.Mock }

func (m *mockOutbox) Add(ctx context.Context, topic, key string, payload []byte) error {
	return m.Called(ctx, topic, key, payload).Error(0)
}

type mockThemes struct{ mock.Mock }

func (m *mockThemes) Load(ctx context.Context, userID string) (themestore.Entry, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).(themestore.Entry)
	return e, args.Error(1)
}

func (m *mockThemes) Save(ctx context.Context, userID string, e themestore.Entry) (themestore.Entry, error) {
	args := m.Called(ctx, userID, e)
	out, _ := args.Get(0).(themestore.Entry)
	return out, args.Error(1)
}

func (m *mockThemes) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockMedia struct{ mock.Mock }

func (m *mockMedia) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	b, _ := io.ReadAll(r)
	args := m.Called(ctx, key, string(b))
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMedia) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockMedia) URL(key string) string { return "https://cdn.test/media/" + key }

func (m *mockMedia) KeyFromURL(url string) (string, bool) {
	const prefix = "https://cdn.test/media/"
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return "", false
	}
	return url[len(prefix):], true
}

// fakeTx runs fn with the caller's ctx and records how each call ended.
type fakeTx struct{ commits, rollbacks int }

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}
