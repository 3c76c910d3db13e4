package llm

import (
	"context"
	"fmt"
	"net/http"
)

// ProviderConfig selects and configures one provider.
type ProviderConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// New builds the Completer named by cfg.Provider.
func New(ctx context.Context, cfg ProviderConfig, client *http.Client) (Completer, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropic(cfg.APIKey, cfg.BaseURL, cfg.Model, client), nil
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, client), nil
	case "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model, client)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
