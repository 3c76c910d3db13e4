package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/linkiq/linkiq/services/profile/internal/observability"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				observability.GetLogger(r.Context()).Error("panic_recovered",
					zap.Any("error", rec),
					zap.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"internal","message":"internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
