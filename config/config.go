package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetcher   FetcherConfig
	Analyzer  AnalyzerConfig
	Insights  InsightsConfig
	Store     StoreConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetcherConfig controls target page fetching.
type FetcherConfig struct {
	// Timeout is the deadline for the single GET against the target.
	Timeout time.Duration // default: 15s

	// MaxRedirects caps the redirect chain before the fetch fails.
	MaxRedirects int // default: 5

	// MaxBodySize caps how many bytes of markup are read.
	MaxBodySize int64 // default: 10 MB
}

// AnalyzerConfig controls analysis job execution.
type AnalyzerConfig struct {
	// Deadline is the hard per-session wall-clock limit. Every session
	// reaches a terminal state within this bound.
	Deadline time.Duration // default: 5m

	// SessionTTL is how long finished sessions stay pollable in memory.
	SessionTTL time.Duration // default: 1h

	// EvidenceCap limits evidence records kept per detection kind.
	// Counts always reflect the true totals.
	EvidenceCap int // default: 10
}

// InsightsConfig controls the recommendation generator.
type InsightsConfig struct {
	// BaseURL is the OpenAI-compatible API root, e.g. "https://api.openai.com/v1".
	// Empty disables the remote call; the fallback table is used directly.
	BaseURL string

	// APIKey authenticates against the text-generation API.
	APIKey string

	// Model is the chat model name.
	Model string // default: "gpt-4o-mini"

	// Timeout is the per-call deadline.
	Timeout time.Duration // default: 20s

	// MaxRecommendations bounds how many recommendations are requested.
	MaxRecommendations int // default: 5
}

// StoreConfig controls result persistence.
type StoreConfig struct {
	// Path is the sqlite database file. ":memory:" keeps results in-process.
	Path string // default: "sitegrade.db"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// WebhookConfig controls completion event delivery.
type WebhookConfig struct {
	// URL receives analysis.completed / analysis.failed events.
	// Empty disables delivery.
	URL string

	// Secret signs event bodies with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SITEGRADE_HOST", "0.0.0.0"),
			Port: envIntOr("SITEGRADE_PORT", 8080),
			Mode: envOr("SITEGRADE_MODE", "release"),
		},
		Fetcher: FetcherConfig{
			Timeout:      envDurationOr("SITEGRADE_FETCH_TIMEOUT", 15*time.Second),
			MaxRedirects: envIntOr("SITEGRADE_MAX_REDIRECTS", 5),
			MaxBodySize:  envInt64Or("SITEGRADE_MAX_BODY_SIZE", 10*1024*1024),
		},
		Analyzer: AnalyzerConfig{
			Deadline:    envDurationOr("SITEGRADE_ANALYSIS_DEADLINE", 5*time.Minute),
			SessionTTL:  envDurationOr("SITEGRADE_SESSION_TTL", time.Hour),
			EvidenceCap: envIntOr("SITEGRADE_EVIDENCE_CAP", 10),
		},
		Insights: InsightsConfig{
			BaseURL:            os.Getenv("SITEGRADE_LLM_BASE_URL"),
			APIKey:             os.Getenv("SITEGRADE_LLM_API_KEY"),
			Model:              envOr("SITEGRADE_LLM_MODEL", "gpt-4o-mini"),
			Timeout:            envDurationOr("SITEGRADE_LLM_TIMEOUT", 20*time.Second),
			MaxRecommendations: envIntOr("SITEGRADE_LLM_MAX_RECOMMENDATIONS", 5),
		},
		Store: StoreConfig{
			Path: envOr("SITEGRADE_DB_PATH", "sitegrade.db"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SITEGRADE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("SITEGRADE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SITEGRADE_RATE_RPS", 5.0),
			Burst:             envIntOr("SITEGRADE_RATE_BURST", 10),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("SITEGRADE_WEBHOOK_URL"),
			Secret: os.Getenv("SITEGRADE_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("SITEGRADE_LOG_LEVEL", "info"),
			Format: envOr("SITEGRADE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
