package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Renderer.DefaultViewportWidth != 1366 || cfg.Renderer.DefaultViewportHeight != 768 {
		t.Errorf("default viewport = %dx%d, want 1366x768",
			cfg.Renderer.DefaultViewportWidth, cfg.Renderer.DefaultViewportHeight)
	}
	if cfg.Renderer.DefaultTimeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", cfg.Renderer.DefaultTimeout)
	}
	if cfg.Renderer.MaxTimeout != 120*time.Second {
		t.Errorf("max timeout = %v, want 120s", cfg.Renderer.MaxTimeout)
	}
	if !cfg.Browser.Headless {
		t.Error("browser should default to headless")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LPR_PORT", "9090")
	t.Setenv("LPR_HEADLESS", "false")
	t.Setenv("LPR_API_KEYS", "key-one, key-two")
	t.Setenv("LPR_DEFAULT_TIMEOUT", "45s")
	t.Setenv("LPR_RATE_RPS", "7.5")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Browser.Headless {
		t.Error("LPR_HEADLESS=false not honored")
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys[1] != "key-two" {
		t.Errorf("api keys = %v", cfg.Auth.APIKeys)
	}
	if cfg.Renderer.DefaultTimeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", cfg.Renderer.DefaultTimeout)
	}
	if cfg.RateLimit.RequestsPerSecond != 7.5 {
		t.Errorf("rps = %v, want 7.5", cfg.RateLimit.RequestsPerSecond)
	}
}

func TestLoad_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("LPR_PORT", "not-a-number")
	t.Setenv("LPR_DEFAULT_TIMEOUT", "soon")

	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Errorf("malformed int should fall back, got %d", cfg.Server.Port)
	}
	if cfg.Renderer.DefaultTimeout != 30*time.Second {
		t.Errorf("malformed duration should fall back, got %v", cfg.Renderer.DefaultTimeout)
	}
}
