package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linkiq/linkiq/services/themegen/internal/config"
	"github.com/linkiq/linkiq/services/themegen/internal/middleware"
	"github.com/linkiq/linkiq/services/themegen/internal/observability"
	"github.com/linkiq/linkiq/services/themegen/internal/transport"
)

// NewRouter builds the public router of the theme generation service.
func NewRouter(cfg *config.Config, h *ThemeHandler, msgs transport.Messages) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)
	if cfg.MetricsEnabled {
		r.Use(observability.MetricsMiddleware(cfg.ServiceName))
	}
	r.Use(middleware.Recovery(msgs))

	r.Get("/health/live", observability.HealthLiveHandler)

	r.Group(func(p chi.Router) {
		if cfg.RateLimitRequests > 0 {
			p.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow, msgs))
		}
		if cfg.RequireAuth {
			p.Use(middleware.JWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, msgs))
		}

		path := "/functions/v1"
		p.Post(path+"/generate-theme", h.GenerateTheme)
		p.Post(path+"/generate-theme-html", h.GeneratePage)
		p.Post(path+"/generate-theme-styles", h.GenerateStyles)
	})

	return otelhttp.NewHandler(r, cfg.ServiceName)
}
