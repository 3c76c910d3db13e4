package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	LinkClicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_link_clicks_total",
			Help: "Clicks recorded on public links",
		},
	)

	OutboxPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_outbox_published_total",
			Help: "Outbox events sent to the broker, by topic and result",
		},
		[]string{"topic", "result"},
	)

	ThemeSongBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_theme_song_bytes",
			Help:    "Size of accepted theme song uploads",
			Buckets: prometheus.ExponentialBuckets(64<<10, 2, 8),
		},
	)
)
