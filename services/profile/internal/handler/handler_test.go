package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linkiq/linkiq/services/profile/internal/config"
	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/service"
	"github.com/linkiq/linkiq/services/profile/internal/themestore"
)

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) Get(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) Update(ctx context.Context, id string, u model.ProfileUpdate) (*model.Profile, error) {
	args := m.Called(ctx, id, u)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) SetThemeSong(ctx context.Context, id, contentType string, size int64, r io.Reader) (*model.Profile, error) {
	b, _ := io.ReadAll(r)
	args := m.Called(ctx, id, contentType, size, string(b))
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) ClearThemeSong(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockLinks struct{ mock.Mock }

func (m *mockLinks) List(ctx context.Context, userID string) ([]model.Link, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).([]model.Link)
	return l, args.Error(1)
}

func (m *mockLinks) Add(ctx context.Context, userID string, l model.Link) (*model.Link, error) {
	args := m.Called(ctx, userID, l)
	out, _ := args.Get(0).(*model.Link)
	return out, args.Error(1)
}

func (m *mockLinks) Update(ctx context.Context, userID, id string, u model.LinkUpdate) (*model.Link, error) {
	args := m.Called(ctx, userID, id, u)
	out, _ := args.Get(0).(*model.Link)
	return out, args.Error(1)
}

func (m *mockLinks) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockLinks) Click(ctx context.Context, id string) (*model.Link, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Link)
	return out, args.Error(1)
}

func (m *mockLinks) Stats(ctx context.Context, userID string) (service.Stats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(service.Stats), args.Error(1)
}

type mockThemes struct{ mock.Mock }

func (m *mockThemes) Get(ctx context.Context, userID string) (themestore.Entry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(themestore.Entry), args.Error(1)
}

func (m *mockThemes) Save(ctx context.Context, userID string, req service.SaveCustomTheme) (themestore.Entry, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(themestore.Entry), args.Error(1)
}

func (m *mockThemes) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockPublic struct{ mock.Mock }

func (m *mockPublic) Get(ctx context.Context, username string) (*service.PublicPage, error) {
	args := m.Called(ctx, username)
	p, _ := args.Get(0).(*service.PublicPage)
	return p, args.Error(1)
}

func (m *mockPublic) QRCode(ctx context.Context, username string, size int) ([]byte, error) {
	args := m.Called(ctx, username, size)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockCards struct{ mock.Mock }

func (m *mockCards) Get(ctx context.Context, userID string) (service.CardView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(service.CardView), args.Error(1)
}

func (m *mockCards) Save(ctx context.Context, userID string, c model.Card) (service.CardView, error) {
	args := m.Called(ctx, userID, c)
	return args.Get(0).(service.CardView), args.Error(1)
}

func (m *mockCards) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type fixture struct {
	router   http.Handler
	profiles *mockProfiles
	links    *mockLinks
	themes   *mockThemes
	cards    *mockCards
	public   *mockPublic
}

var testCfg = &config.Config{
	JWTSecret:      "test-secret",
	JWTIssuer:      "linkiq-auth",
	JWTAudience:    "linkiq-clients",
	ServiceName:    "profile-test",
	MaxUploadBytes: 1 << 10,
}

func newFixture() *fixture {
	f := &fixture{
		profiles: new(mockProfiles),
		links:    new(mockLinks),
		themes:   new(mockThemes),
		cards:    new(mockCards),
		public:   new(mockPublic),
	}
	f.router = NewRouter(testCfg, Services{
		Profiles: f.profiles,
		Links:    f.links,
		Themes:   f.themes,
		Cards:    f.cards,
		Public:   f.public,
	}, okPinger{})
	return f
}

func token(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iss": testCfg.JWTIssuer,
		"aud": testCfg.JWTAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testCfg.JWTSecret))
	require.NoError(t, err)
	return s
}

func (f *fixture) do(t *testing.T, method, path, body, sub string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sub != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, sub))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthRequired(t *testing.T) {
	f := newFixture()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/profile/me"},
		{http.MethodPut, "/api/v1/profile/me"},
		{http.MethodGet, "/api/v1/links"},
		{http.MethodPatch, "/api/v1/links/l1"},
		{http.MethodGet, "/api/v1/stats/me"},
		{http.MethodDelete, "/api/v1/profile/me/custom-theme"},
		{http.MethodPost, "/api/v1/profile/me/theme-song"},
		{http.MethodGet, "/api/v1/profile/me/card"},
		{http.MethodPut, "/api/v1/profile/me/card"},
	} {
		rec := f.do(t, route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
}

func TestGetProfile(t *testing.T) {
	f := newFixture()
	f.profiles.On("Get", mock.Anything, "u1").Return(&model.Profile{UserID: "u1", Username: "sara"}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/profile/me", "", "u1")

	require.Equal(t, http.StatusOK, rec.Code)
	var p model.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "sara", p.Username)
}

func TestGetProfileNotFound(t *testing.T) {
	f := newFixture()
	f.profiles.On("Get", mock.Anything, "u1").Return(nil, model.ErrProfileNotFound)

	rec := f.do(t, http.MethodGet, "/api/v1/profile/me", "", "u1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)
}

func TestUpdateProfileErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"username taken", model.ErrUsernameTaken, http.StatusConflict, "conflict"},
		{"invalid theme", model.ErrInvalidTheme, http.StatusBadRequest, "invalid_request"},
		{"bad username", model.ErrInvalidUsername, http.StatusBadRequest, "invalid_request"},
		{"database", assert.AnError, http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.profiles.On("Update", mock.Anything, "u1", mock.Anything).Return(nil, tt.err)

			rec := f.do(t, http.MethodPut, "/api/v1/profile/me", `{"username":"sara"}`, "u1")

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Error)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, assert.AnError.Error())
			}
		})
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	f := newFixture()
	f.profiles.On("Update", mock.Anything, "u1", mock.MatchedBy(func(u model.ProfileUpdate) bool {
		return u.Bio != nil && *u.Bio == "hi" && u.Username == nil && u.Theme == nil
	})).Return(&model.Profile{UserID: "u1", Bio: "hi"}, nil)

	rec := f.do(t, http.MethodPut, "/api/v1/profile/me", `{"bio":"hi"}`, "u1")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.profiles.AssertExpectations(t)
}

func TestUpdateProfileBadJSON(t *testing.T) {
	f := newFixture()
	rec := f.do(t, http.MethodPut, "/api/v1/profile/me", `{"bio":`, "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="song.mp3"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadThemeSong(t *testing.T) {
	f := newFixture()
	f.profiles.On("SetThemeSong", mock.Anything, "u1", "audio/mpeg", int64(3), "ID3").
		Return(&model.Profile{UserID: "u1", ThemeSongURL: "http://x/media/u1/theme-song-1.mp3"}, nil)

	body, ct := multipartBody(t, "audio/mpeg", "ID3")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/me/theme-song", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token(t, "u1"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "theme-song-1.mp3")
}

func TestUploadThemeSongRejected(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not audio", model.ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
		{"too large", model.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.profiles.On("SetThemeSong", mock.Anything, "u1", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			body, ct := multipartBody(t, "image/png", "PNG")
			req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/me/theme-song", body)
			req.Header.Set("Content-Type", ct)
			req.Header.Set("Authorization", "Bearer "+token(t, "u1"))
			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestUploadThemeSongBodyTooLarge(t *testing.T) {
	f := newFixture()

	body, ct := multipartBody(t, "audio/mpeg", strings.Repeat("a", 200<<10))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/me/theme-song", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token(t, "u1"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	f.profiles.AssertNotCalled(t, "SetThemeSong", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadThemeSongMissingFile(t *testing.T) {
	f := newFixture()
	rec := f.do(t, http.MethodPost, "/api/v1/profile/me/theme-song", "", "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteThemeSong(t *testing.T) {
	f := newFixture()
	f.profiles.On("ClearThemeSong", mock.Anything, "u1").Return(nil)

	rec := f.do(t, http.MethodDelete, "/api/v1/profile/me/theme-song", "", "u1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCustomThemeRoutes(t *testing.T) {
	f := newFixture()
	f.themes.On("Get", mock.Anything, "u1").Return(themestore.Entry{}, model.ErrCustomThemeNotFound).Once()
	f.themes.On("Save", mock.Anything, "u1", mock.MatchedBy(func(req service.SaveCustomTheme) bool {
		return string(req.Theme) == `{"name":"Ocean"}`
	})).Return(themestore.Entry{Version: 1, Username: "sara", Active: true}, nil)
	f.themes.On("Clear", mock.Anything, "u1").Return(nil)

	rec := f.do(t, http.MethodGet, "/api/v1/profile/me/custom-theme", "", "u1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1/profile/me/custom-theme", `{"theme":{"name":"Ocean"}}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"sara"`)

	rec = f.do(t, http.MethodDelete, "/api/v1/profile/me/custom-theme", "", "u1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLinkRoutes(t *testing.T) {
	f := newFixture()
	f.links.On("List", mock.Anything, "u1").Return([]model.Link{}, nil)
	f.links.On("Add", mock.Anything, "u1", model.Link{Title: "GitHub", URL: "https://github.com"}).
		Return(&model.Link{ID: "l1", Title: "GitHub"}, nil)
	f.links.On("Update", mock.Anything, "u1", "l1", mock.Anything).Return(nil, model.ErrLinkNotFound)
	f.links.On("Delete", mock.Anything, "u1", "l1").Return(nil)
	f.links.On("Stats", mock.Anything, "u1").Return(service.Stats{TotalClicks: 5, LinkCount: 1, ActiveLinks: 1}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/links", "", "u1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/v1/links", `{"title":"GitHub","url":"https://github.com"}`, "u1")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/v1/links/l1", `{"title":"x"}`, "u1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/links/l1", "", "u1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/stats/me", "", "u1")
	assert.JSONEq(t, `{"total_clicks":5,"link_count":1,"active_links":1}`, rec.Body.String())

	f.links.AssertExpectations(t)
}

func TestCreateLinkInvalid(t *testing.T) {
	f := newFixture()
	f.links.On("Add", mock.Anything, "u1", mock.Anything).Return(nil, model.ErrInvalidURL)

	rec := f.do(t, http.MethodPost, "/api/v1/links", `{"title":"x","url":"ftp://x"}`, "u1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.ErrInvalidURL.Error(), decodeError(t, rec).Message)
}

func TestPublicRoutes(t *testing.T) {
	f := newFixture()
	f.public.On("Get", mock.Anything, "sara").Return(&service.PublicPage{
		Profile: &model.Profile{Username: "sara"},
		Links:   []model.Link{},
	}, nil)
	f.public.On("Get", mock.Anything, "ghost").Return(nil, model.ErrProfileNotFound)
	f.links.On("Click", mock.Anything, "l1").Return(&model.Link{URL: "https://a.com", ClickCount: 3}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/public/sara", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "custom_theme")

	rec = f.do(t, http.MethodGet, "/api/v1/public/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/public/links/l1/click", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://a.com","click_count":3}`, rec.Body.String())
}

func TestMalformedLinkIDIsNotFound(t *testing.T) {
	// The real service rejects the id before touching its repository.
	router := NewRouter(testCfg, Services{
		Profiles: new(mockProfiles),
		Links:    &service.LinkService{},
		Themes:   new(mockThemes),
		Cards:    new(mockCards),
		Public:   new(mockPublic),
	}, okPinger{})
	f := &fixture{router: router}

	tests := []struct {
		method, path, body, sub string
	}{
		{http.MethodPost, "/api/v1/public/links/not-a-uuid/click", "", ""},
		{http.MethodPatch, "/api/v1/links/not-a-uuid", `{"title":"x"}`, "u1"},
		{http.MethodDelete, "/api/v1/links/not-a-uuid", "", "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, tt.body, tt.sub)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "not_found", decodeError(t, rec).Error)
		})
	}
}

func TestCardRoutes(t *testing.T) {
	f := newFixture()
	card := model.Card{FullName: "Sara", Template: model.CardModern, PrimaryColor: "#111111", SecondaryColor: "#222222"}
	f.cards.On("Get", mock.Anything, "u1").Return(service.CardView{Card: model.DefaultCard(&model.Profile{DisplayName: "Sara"})}, nil)
	f.cards.On("Save", mock.Anything, "u1", card).Return(service.CardView{Card: card, Saved: true}, nil)
	f.cards.On("Save", mock.Anything, "u1", model.Card{Template: "retro"}).
		Return(service.CardView{}, fmt.Errorf("%w: unknown template %q", model.ErrInvalidCard, "retro"))
	f.cards.On("Clear", mock.Anything, "u1").Return(nil)

	rec := f.do(t, http.MethodGet, "/api/v1/profile/me/card", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"card":{"full_name":"Sara","profession":"","company":"","primary_phone":"","secondary_phone":"",
		"email":"","website":"","address":"","logo":"","template":"gradient","primary_color":"#a855f7",
		"secondary_color":"#06b6d4"},"saved":false}`, rec.Body.String())

	rec = f.do(t, http.MethodPut, "/api/v1/profile/me/card",
		`{"full_name":"Sara","template":"modern","primary_color":"#111111","secondary_color":"#222222"}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"saved":true`)

	rec = f.do(t, http.MethodPut, "/api/v1/profile/me/card", `{"template":"retro"}`, "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `invalid business card: unknown template "retro"`, decodeError(t, rec).Message)

	rec = f.do(t, http.MethodDelete, "/api/v1/profile/me/card", "", "u1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.cards.AssertExpectations(t)
}

func TestPublicQRCode(t *testing.T) {
	f := newFixture()
	f.public.On("QRCode", mock.Anything, "sara", 0).Return([]byte("\x89PNG"), nil)
	f.public.On("QRCode", mock.Anything, "sara", 256).Return([]byte("\x89PNG"), nil)
	f.public.On("QRCode", mock.Anything, "ghost", 0).Return(nil, model.ErrProfileNotFound)

	rec := f.do(t, http.MethodGet, "/api/v1/public/sara/qr", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="sara-qrcode.png"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "\x89PNG", rec.Body.String())

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/public/sara/qr?size=256", "", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/public/ghost/qr", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/public/sara/qr?size=big", "", "").Code)
}

func TestPublicQRCodeRendersImage(t *testing.T) {
	svc := &service.PublicPageService{PageBaseURL: "https://linkiq.app"}
	router := NewRouter(testCfg, Services{
		Profiles: new(mockProfiles),
		Links:    new(mockLinks),
		Themes:   new(mockThemes),
		Cards:    new(mockCards),
		Public:   svc,
	}, okPinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/demo/qr?size=200", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestHealth(t *testing.T) {
	f := newFixture()
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health/ready", "", "").Code)
}
