// Package llm talks to the text-generation providers behind the theme
// endpoints. Every call is a single request; nothing is retried.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Request is one completion call.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Completer returns the text of a single completion.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

var (
	ErrNotConfigured   = errors.New("llm provider is not configured")
	ErrUpstream        = errors.New("llm provider request failed")
	ErrRateLimited     = errors.New("llm provider rate limit exceeded")
	ErrPaymentRequired = errors.New("llm provider requires payment")
	ErrEmptyCompletion = errors.New("llm provider returned no text")
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// UpstreamError is a non-2xx answer from a provider. It unwraps to
// ErrRateLimited, ErrPaymentRequired or ErrUpstream depending on Status.
type UpstreamError struct {
	Provider string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	switch e.Status {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrPaymentRequired
	default:
		return ErrUpstream
	}
}

const maxErrorBody = 512

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}
