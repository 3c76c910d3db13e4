package middleware

import (
	"net/http"

	"github.com/linkiq/linkiq/services/themegen/internal/observability"
	"github.com/linkiq/linkiq/services/themegen/internal/transport"
	"go.uber.org/zap"
)

func Recovery(msgs transport.Messages) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			defer func() {
				if rec := recover(); rec != nil {
					log := observability.GetLogger(r.Context())
					log.Error("panic_recovered",
						zap.Any("error", rec),
						zap.String("request_id", RequestIDFromContext(r.Context())),
					)

					transport.WriteFailure(w, http.StatusInternalServerError, msgs.Get(transport.MsgUnexpected))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
