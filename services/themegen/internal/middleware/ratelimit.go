package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/linkiq/linkiq/services/themegen/internal/transport"
)

// RateLimit limits requests per client IP. Rejections use the same JSON
// failure body as the theme endpoints.
func RateLimit(requests int, windowStr string, msgs transport.Messages) func(next http.Handler) http.Handler {
	window, err := time.ParseDuration(windowStr)
	if err != nil {
		window = time.Minute
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			transport.WriteFailure(w, http.StatusTooManyRequests, msgs.Get(transport.MsgTooManyRequests))
		}),
	)
}
