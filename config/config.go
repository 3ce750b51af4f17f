package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration read from the environment.
// godotenv loads .env into the environment before Load is called.
type Config struct {
	Port        string
	Env         string // "development" or "production"
	DBPath      string
	LogCap      int    // max rows kept per log table
	TokenSecret string // shared between admin relay and api
	TokenTTL    time.Duration
	APIHost     string // base URL the admin ajax relay forwards to
	UseHTTPS    bool

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailTo       string // operators address for contact-form mail
}

// Load builds a Config from the environment and validates required fields.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("APP_ENV", "development"),
		DBPath:       getEnv("DB_PATH", "webapp.db"),
		LogCap:       getEnvInt("LOG_CAP", 1000),
		TokenSecret:  os.Getenv("TOKEN_SECRET"),
		APIHost:      getEnv("API_HOST", "http://localhost:8080"),
		UseHTTPS:     os.Getenv("USE_HTTPS") == "true",
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "noreply@localhost"),
		MailTo:       getEnv("MAIL_TO", "operators@localhost"),
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %q", os.Getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET must be set")
	}
	if cfg.LogCap <= 0 {
		return nil, fmt.Errorf("LOG_CAP must be positive")
	}

	return cfg, nil
}

// getEnv returns the environment value or a default when unset.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the environment value as an int or a default when unset or invalid.
func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
