package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Upstream.BaseURL != "http://upstream.local/api" {
		t.Fatalf("unexpected upstream base URL: %q", cfg.Upstream.BaseURL)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Session.TTL(); got != 7*24*time.Hour {
		t.Fatalf("expected default session TTL of 7d, got %v", got)
	}

	rate, err := cfg.Cart.Rate()
	if err != nil {
		t.Fatalf("Rate() returned unexpected error: %v", err)
	}
	if !rate.Equal(decimal.NewFromFloat(0.20)) {
		t.Fatalf("expected default tax rate 0.20, got %s", rate)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_InvalidTaxRate(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCartTaxRate, "twenty percent")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid tax rate to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvUpstreamURL, "http://upstream.local/api")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvSessionSecret, "secret")
	t.Setenv(EnvSessionIssuer, "smartshop-gateway")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "Production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
