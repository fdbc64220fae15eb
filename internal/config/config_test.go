package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")

	cfg := Load()

	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.RateLimitMax != 500 {
		t.Fatalf("expected rate limit 500, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != 15*time.Minute {
		t.Fatalf("expected 15m window, got %s", cfg.RateLimitWindow)
	}
	if cfg.UploadMaxBytes != 10<<20 {
		t.Fatalf("expected 10MiB upload cap, got %d", cfg.UploadMaxBytes)
	}
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("JWT_TTL", "forever")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Fatalf("expected fallback port 8080, got %d", cfg.Port)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected fallback ttl 24h, got %s", cfg.JWTTTL)
	}
}

func TestLoadAllowedOriginsList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()

	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %#v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Env:              "dev",
		Port:             8080,
		Store:            "memory",
		JWTSecret:        defaultJWTSecret,
		UploadBackend:    "disk",
		RateLimitBackend: "memory",
		RateLimitMax:     500,
		RateLimitWindow:  time.Minute,
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("dev config should validate: %v", err)
	}

	prod := base
	prod.Env = "prod"
	if err := prod.Validate(); err == nil {
		t.Fatalf("expected default secret to be rejected in prod")
	}

	badStore := base
	badStore.Store = "mongo"
	if err := badStore.Validate(); err == nil {
		t.Fatalf("expected unknown store to be rejected")
	}
}
