package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobfinder")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.SMTPPort != 587 || cfg.SMTPSecure {
		t.Fatalf("unexpected smtp defaults: port=%d secure=%v", cfg.SMTPPort, cfg.SMTPSecure)
	}
	if cfg.UploadDir != "uploads" {
		t.Fatalf("expected default upload dir, got %q", cfg.UploadDir)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("expected default request timeout, got %v", cfg.RequestTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobfinder")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	cfg := Load()
	if cfg.HTTPPort != "9000" {
		t.Fatalf("expected overridden port, got %q", cfg.HTTPPort)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", cfg.TokenTTL)
	}
	if !cfg.SMTPSecure {
		t.Fatalf("expected secure smtp")
	}
	if cfg.DBMaxOpenConns != 50 {
		t.Fatalf("expected 50 open conns, got %d", cfg.DBMaxOpenConns)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobfinder")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("malformed duration must fall back, got %v", cfg.TokenTTL)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("malformed int must fall back, got %d", cfg.SMTPPort)
	}
}
