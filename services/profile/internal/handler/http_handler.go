package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linkiq/linkiq/services/profile/internal/config"
	"github.com/linkiq/linkiq/services/profile/internal/middleware"
	"github.com/linkiq/linkiq/services/profile/internal/observability"
)

type Services struct {
	Profiles ProfileAPI
	Links    LinkAPI
	Themes   CustomThemeAPI
	Cards    CardAPI
	Public   PublicAPI
}

// NewRouter builds the HTTP router with all profile routes.
func NewRouter(cfg *config.Config, s Services, db observability.Pinger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery)
	if cfg.MetricsEnabled {
		r.Use(observability.MetricsMiddleware(cfg.ServiceName))
	}
	r.Use(chimw.Timeout(15 * time.Second))

	auth := middleware.JWT([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience)

	ph := NewProfileHandler(s.Profiles, cfg.MaxUploadBytes)
	th := &CustomThemeHandler{S: s.Themes}
	ch := &CardHandler{S: s.Cards}
	lh := &LinkHandler{S: s.Links}
	pub := &PublicHandler{S: s.Public}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/profile/me", ph.Get)
			r.Put("/profile/me", ph.Update)
			r.Post("/profile/me/theme-song", ph.UploadThemeSong)
			r.Delete("/profile/me/theme-song", ph.DeleteThemeSong)

			r.Get("/profile/me/custom-theme", th.Get)
			r.Put("/profile/me/custom-theme", th.Put)
			r.Delete("/profile/me/custom-theme", th.Delete)

			r.Get("/profile/me/card", ch.Get)
			r.Put("/profile/me/card", ch.Put)
			r.Delete("/profile/me/card", ch.Delete)

			r.Get("/links", lh.List)
			r.Post("/links", lh.Create)
			r.Patch("/links/{id}", lh.Update)
			r.Delete("/links/{id}", lh.Delete)

			r.Get("/stats/me", lh.Stats)
		})

		r.Get("/public/{username}", pub.Page)
		r.Get("/public/{username}/qr", pub.QRCode)
		r.Post("/public/links/{id}/click", lh.Click)
	})

	if cfg.MediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))
	}

	r.Get("/health", observability.HealthLiveHandler)
	r.Get("/health/ready", observability.HealthReadyHandler(db))

	return otelhttp.NewHandler(r, "profile")
}
