package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %v, want 24h", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "session_id" {
		t.Errorf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.RateLimit.MaxAttempts != 10 {
		t.Errorf("RateLimit.MaxAttempts = %d, want 10", cfg.RateLimit.MaxAttempts)
	}
	if cfg.Database.URL == "" {
		t.Error("Database.URL was not derived from component settings")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.Address(); got != "127.0.0.1:9090" {
		t.Errorf("Address() = %q, want 127.0.0.1:9090", got)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("Session.TTL = %v, want 1h", cfg.Session.TTL)
	}
	if cfg.RateLimit.MaxAttempts != 3 {
		t.Errorf("RateLimit.MaxAttempts = %d, want 3", cfg.RateLimit.MaxAttempts)
	}
	// bare integers read as seconds
	if cfg.Context.RequestTimeout != 8*time.Second {
		t.Errorf("Context.RequestTimeout = %v, want 8s", cfg.Context.RequestTimeout)
	}
}

func TestDatabaseURLPassthrough(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app?sslmode=require")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.URL != "postgres://u:p@db:5432/app?sslmode=require" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
}
