package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Failure is the error body of every theme endpoint.
type Failure struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func WriteFailure(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Failure{Error: message})
}
