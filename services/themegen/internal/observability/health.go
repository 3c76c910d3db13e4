package observability

import (
	"net/http"
)

func HealthLiveHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HealthReadyHandler reports ready once at least one provider has an API key.
func HealthReadyHandler(configured func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !configured() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("no provider configured"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
