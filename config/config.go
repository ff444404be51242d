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
	Browser   BrowserConfig
	Renderer  RendererConfig
	Analyzer  AnalyzerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 10

	// DefaultProxy is the default proxy URL for all requests.
	DefaultProxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// RendererConfig controls snapshot capture behavior.
type RendererConfig struct {
	// DefaultTimeout is the per-request capture timeout.
	DefaultTimeout time.Duration // default: 30s

	// MaxTimeout is the maximum allowed timeout from the client.
	MaxTimeout time.Duration // default: 120s

	// DefaultViewportWidth/Height apply when the client omits a viewport.
	DefaultViewportWidth  int // default: 1366
	DefaultViewportHeight int // default: 768
}

// AnalyzerConfig controls the analysis engine.
type AnalyzerConfig struct {
	// SpeedFetch toggles the out-of-band page speed measurement.
	SpeedFetch bool // default: true

	// SpeedTimeout is the deadline for the page speed fetch.
	SpeedTimeout time.Duration // default: 15s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys (for MVP; replace with DB later).
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per API key.
	Burst int // default: 5
}

// CacheConfig controls the report cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached reports.
	MaxEntries int // default: 1000
}

// WebhookConfig controls result delivery callbacks.
type WebhookConfig struct {
	// Secret signs webhook payloads (HMAC-SHA256). Empty disables signing.
	Secret string

	// Timeout is the per-delivery HTTP timeout.
	Timeout time.Duration // default: 10s
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
			Host: envOr("LPR_HOST", "0.0.0.0"),
			Port: envIntOr("LPR_PORT", 8080),
			Mode: envOr("LPR_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("LPR_HEADLESS", true),
			MaxPages:     envIntOr("LPR_MAX_PAGES", 10),
			DefaultProxy: os.Getenv("LPR_PROXY"),
			NoSandbox:    envBoolOr("LPR_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("LPR_BROWSER_BIN"),
		},
		Renderer: RendererConfig{
			DefaultTimeout:        envDurationOr("LPR_DEFAULT_TIMEOUT", 30*time.Second),
			MaxTimeout:            envDurationOr("LPR_MAX_TIMEOUT", 120*time.Second),
			DefaultViewportWidth:  envIntOr("LPR_VIEWPORT_WIDTH", 1366),
			DefaultViewportHeight: envIntOr("LPR_VIEWPORT_HEIGHT", 768),
		},
		Analyzer: AnalyzerConfig{
			SpeedFetch:   envBoolOr("LPR_SPEED_FETCH", true),
			SpeedTimeout: envDurationOr("LPR_SPEED_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("LPR_AUTH_ENABLED", true),
			APIKeys: envSliceOr("LPR_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("LPR_RATE_RPS", 2.0),
			Burst:             envIntOr("LPR_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("LPR_CACHE_MAX_ENTRIES", 1000),
		},
		Webhook: WebhookConfig{
			Secret:  os.Getenv("LPR_WEBHOOK_SECRET"),
			Timeout: envDurationOr("LPR_WEBHOOK_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  envOr("LPR_LOG_LEVEL", "info"),
			Format: envOr("LPR_LOG_FORMAT", "json"),
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
