package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Provider struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

type Config struct {
	Port              string
	ServiceName       string
	Language          string
	Theme             Provider
	Page              Provider
	UpstreamTimeout   time.Duration
	ThemeMaxTokens    int
	PageMaxTokens     int
	MaxPromptLength   int
	RequireAuth       bool
	JWTSecret         string
	JWTIssuer         string
	JWTAudience       string
	RateLimitRequests int
	RateLimitWindow   string
	Debug             bool
	MetricsEnabled    bool
	TracingEnabled    bool
	JaegerURL         string
	ObsHTTPAddr       string
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8082"),
		ServiceName: getEnv("SERVICE_NAME", "themegen"),
		Language:    getEnv("DISPLAY_LANGUAGE", "ar"),
		Theme: Provider{
			Name:    getEnv("THEME_PROVIDER", "anthropic"),
			BaseURL: os.Getenv("THEME_PROVIDER_URL"),
			Model:   os.Getenv("THEME_MODEL"),
		},
		Page: Provider{
			Name:    getEnv("PAGE_PROVIDER", "openai"),
			BaseURL: getEnv("PAGE_PROVIDER_URL", "https://ai-gateway.lovable.dev/v1"),
			Model:   os.Getenv("PAGE_MODEL"),
		},
		UpstreamTimeout:   getEnvDuration("UPSTREAM_TIMEOUT", 90*time.Second),
		ThemeMaxTokens:    getEnvInt("THEME_MAX_TOKENS", 6000),
		PageMaxTokens:     getEnvInt("PAGE_MAX_TOKENS", 8000),
		MaxPromptLength:   getEnvInt("MAX_PROMPT_LENGTH", 2000),
		RequireAuth:       getEnvBool("THEMEGEN_REQUIRE_AUTH", false),
		JWTIssuer:         getEnv("JWT_ISSUER", "linkiq-auth"),
		JWTAudience:       getEnv("JWT_AUDIENCE", "linkiq-clients"),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindow:   getEnv("RATE_LIMIT_WINDOW", "1m"),
		Debug:             getEnvBool("DEBUG", false),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", false),
		TracingEnabled:    getEnvBool("TRACING_ENABLED", false),
		JaegerURL:         getEnv("JAEGER_URL", "http://localhost:14268/api/traces"),
		ObsHTTPAddr:       fixPort(getEnv("HTTP_ADDR", ":8092")),
	}

	cfg.Theme.APIKey = providerKey(cfg.Theme.Name)
	cfg.Page.APIKey = providerKey(cfg.Page.Name)

	if cfg.RequireAuth {
		cfg.JWTSecret = mustEnv("JWT_SECRET")
	}

	return cfg
}

// providerKey reads the API key variable conventional for each provider.
func providerKey(provider string) string {
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		if v := os.Getenv("LOVABLE_API_KEY"); v != "" {
			return v
		}
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

func fixPort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing required env: %s", key)
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true"
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
