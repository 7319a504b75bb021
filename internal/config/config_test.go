package config

import (
	"agentplugins/internal/plugins/geocoding"
	"agentplugins/internal/plugins/weather"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ANTHROPIC_API_KEY", "CLAUDE_MODEL", "MAX_TOKENS", "FORECAST_API_URL", "GEOCODING_API_URL", "HTTP_TIMEOUT", "PLUGINS_CONFIG"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugins.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("CLAUDE_MODEL", "claude-test")
	t.Setenv("MAX_TOKENS", "2048")
	t.Setenv("HTTP_TIMEOUT", "7s")
	t.Setenv("FORECAST_API_URL", "http://localhost:9000/v1/forecast")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.AnthropicAPIKey != "test-key" || cfg.Model != "claude-test" || cfg.MaxTokens != 2048 {
		t.Errorf("unexpected API settings: %+v", cfg)
	}
	if cfg.HTTPTimeout != 7*time.Second {
		t.Errorf("HTTPTimeout = %s, want 7s", cfg.HTTPTimeout)
	}
	if cfg.ForecastAPIURL != "http://localhost:9000/v1/forecast" {
		t.Errorf("ForecastAPIURL = %q", cfg.ForecastAPIURL)
	}
}

func TestLoadFromEnvRequiresAPIKey(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFromEnv(); err == nil || !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestLoadFromEnvRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	t.Setenv("MAX_TOKENS", "lots")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("expected an error for MAX_TOKENS=lots")
	}

	t.Setenv("MAX_TOKENS", "")
	t.Setenv("HTTP_TIMEOUT", "soon")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("expected an error for HTTP_TIMEOUT=soon")
	}
}

func TestLoadFromEnvWithFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("PLUGINS_CONFIG", writeFile(t, `
weather:
  forecast_url: http://forecast.internal/v1/forecast
geocoding:
  url: http://geo.internal/v1/search
http:
  timeout: 15s
`))
	t.Setenv("GEOCODING_API_URL", "http://geo.override/v1/search")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.ForecastAPIURL != "http://forecast.internal/v1/forecast" {
		t.Errorf("ForecastAPIURL = %q", cfg.ForecastAPIURL)
	}
	if cfg.GeocodingAPIURL != "http://geo.override/v1/search" {
		t.Errorf("environment should win over the file, got %q", cfg.GeocodingAPIURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %s, want 15s", cfg.HTTPTimeout)
	}
}

func TestLoadFromEnvWithBadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	t.Setenv("PLUGINS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadFromEnv(); err == nil {
		t.Error("expected an error for a missing config file")
	}

	t.Setenv("PLUGINS_CONFIG", writeFile(t, "http:\n  timeout: [1, 2\n"))
	if _, err := LoadFromEnv(); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestWithDefaults(t *testing.T) {
	clearEnv(t)
	cfg := (&Config{AnthropicAPIKey: "test-key"}).WithDefaults()

	if cfg.Model == "" || cfg.MaxTokens != 1024 {
		t.Errorf("model defaults not applied: %q %d", cfg.Model, cfg.MaxTokens)
	}
	if cfg.ForecastAPIURL != weather.DefaultBaseURL || cfg.GeocodingAPIURL != geocoding.DefaultBaseURL {
		t.Errorf("URL defaults not applied: %q %q", cfg.ForecastAPIURL, cfg.GeocodingAPIURL)
	}
	if cfg.Client == nil || cfg.GetUserMessage == nil || cfg.Registry == nil {
		t.Fatal("client, input reader and registry should be set")
	}
	if n := len(cfg.Registry.Definitions()); n != 8 {
		t.Errorf("registry has %d tools, want 8", n)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg := (&Config{AnthropicAPIKey: "test-key"}).WithDefaults()
	cfg.Registry = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error without a registry")
	}

	cfg = (&Config{AnthropicAPIKey: "test-key", HTTPTimeout: -time.Second}).WithDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a negative timeout")
	}
}
