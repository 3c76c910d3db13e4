package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/observability"
	"github.com/linkiq/linkiq/services/profile/internal/themestore"
)

const DemoUsername = "demo"

// PublicPage is what a visitor of /{username} sees.
type PublicPage struct {
	Profile     *model.Profile `json:"profile"`
	Links       []model.Link   `json:"links"`
	CustomTheme *CustomTheme   `json:"custom_theme,omitempty"`
}

type CustomTheme struct {
	Theme json.RawMessage `json:"theme,omitempty"`
	HTML  string          `json:"html,omitempty"`
}

type PublicPageService struct {
	Profiles    *ProfileService
	Links       LinkRepository
	Themes      CustomThemes
	PageBaseURL string
}

// Get assembles the public page. A saved custom theme is included only when
// it is active and was saved under the same username.
func (s *PublicPageService) Get(ctx context.Context, username string) (*PublicPage, error) {
	if model.NormalizeUsername(username) == DemoUsername {
		return demoPage(), nil
	}

	p, err := s.Profiles.GetPublic(ctx, username)
	if err != nil {
		return nil, err
	}

	page := &PublicPage{Profile: p}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		links, err := s.Links.ListActive(gctx, p.UserID)
		page.Links = links
		return err
	})
	g.Go(func() error {
		e, err := s.Themes.Load(gctx, p.UserID)
		if err != nil {
			if !errors.Is(err, themestore.ErrNotFound) {
				// The page still renders with the preset theme.
				observability.GetLogger(ctx).Warn("custom theme load failed", zap.String("user_id", p.UserID), zap.Error(err))
			}
			return nil
		}
		if e.Active && e.Username == p.Username {
			page.CustomTheme = &CustomTheme{Theme: e.Theme, HTML: e.HTML}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

func demoPage() *PublicPage {
	links := []model.Link{
		{ID: "1", Title: "تويتر", URL: "https://twitter.com", Icon: "📱", ClickCount: 245},
		{ID: "2", Title: "انستغرام", URL: "https://instagram.com", Icon: "📸", ClickCount: 189},
		{ID: "3", Title: "يوتيوب", URL: "https://youtube.com", Icon: "🎥", ClickCount: 312},
		{ID: "4", Title: "لينكدإن", URL: "https://linkedin.com", Icon: "💼", ClickCount: 87},
	}
	for i := range links {
		links[i].Position = i
		links[i].IsActive = true
	}
	return &PublicPage{
		Profile: &model.Profile{
			Username:    DemoUsername,
			DisplayName: "أحمد محمد",
			Bio:         "مطور ويب ومحب للتقنية 🚀",
			Theme:       model.DefaultTheme,
		},
		Links: links,
	}
}
