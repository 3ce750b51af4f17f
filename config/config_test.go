package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Expected default env development, got %s", cfg.Env)
	}
	if cfg.LogCap != 1000 {
		t.Errorf("Expected default log cap 1000, got %d", cfg.LogCap)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("Expected default token TTL 24h, got %s", cfg.TokenTTL)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("Expected default SMTP port 587, got %d", cfg.SMTPPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_CAP", "50")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("USE_HTTPS", "true")
	t.Setenv("API_HOST", "http://api.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}
	if cfg.LogCap != 50 {
		t.Errorf("Expected log cap 50, got %d", cfg.LogCap)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("Expected token TTL 30m, got %s", cfg.TokenTTL)
	}
	if !cfg.UseHTTPS {
		t.Error("Expected HTTPS to be enabled")
	}
	if cfg.APIHost != "http://api.example.com" {
		t.Errorf("Expected API host override, got %s", cfg.APIHost)
	}
}

func TestLoadRequiresTokenSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Expected an error when TOKEN_SECRET is unset")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for an unparseable TOKEN_TTL")
	}

	t.Setenv("TOKEN_TTL", "-5m")
	if _, err := Load(); err == nil {
		t.Error("Expected an error for a negative TOKEN_TTL")
	}
}

func TestLoadRejectsBadLogCap(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("LOG_CAP", "-1")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for a negative LOG_CAP")
	}
}
