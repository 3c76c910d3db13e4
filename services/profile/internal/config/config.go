package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL    string
	RedisAddr      string
	KafkaBrokers   string
	JWTIssuer      string
	JWTAudience    string
	JWTSecret      string
	HTTPPort       string
	GRPCAddr       string
	ServiceName    string
	ThemeStore     string
	BoltPath       string
	MediaDir       string
	PublicBaseURL  string
	PageBaseURL    string
	MaxUploadBytes int64
	Debug          bool
	MetricsEnabled bool
	TracingEnabled bool
	JaegerURL      string
	HTTPAddr       string
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:    mustEnv("DATABASE_URL"),
		RedisAddr:      mustEnv("REDIS_ADDR"),
		KafkaBrokers:   mustEnv("KAFKA_BROKERS"),
		JWTIssuer:      mustEnv("JWT_ISSUER"),
		JWTAudience:    mustEnv("JWT_AUDIENCE"),
		JWTSecret:      mustEnv("JWT_SECRET"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		GRPCAddr:       fixPort(getEnv("GRPC_ADDR", ":50051")),
		ServiceName:    getEnv("SERVICE_NAME", "profile-service"),
		ThemeStore:     getEnv("THEME_STORE", "redis"),
		BoltPath:       getEnv("THEME_STORE_PATH", "data/themes.db"),
		MediaDir:       getEnv("MEDIA_DIR", "data/media"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		PageBaseURL:    strings.TrimRight(getEnv("PAGE_BASE_URL", "http://localhost:5173"), "/"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),
		Debug:          getEnvBool("DEBUG", false),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		JaegerURL:      getEnv("JAEGER_URL", "http://localhost:14268/api/traces"),
		HTTPAddr:       fixPort(getEnv("HTTP_ADDR", ":8081")),
	}

	if cfg.ThemeStore != "redis" && cfg.ThemeStore != "bolt" {
		log.Fatalf("THEME_STORE must be redis or bolt, got %q", cfg.ThemeStore)
	}

	return cfg
}

func fixPort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
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

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}

func getEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
