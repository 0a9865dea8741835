package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.OTPTTL != 10*time.Minute {
		t.Fatalf("expected 10m code TTL, got %s", cfg.OTPTTL)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7d token TTL, got %s", cfg.TokenTTL)
	}
	if cfg.OTPMaxPerHour != 5 {
		t.Fatalf("expected 5 sends per hour, got %d", cfg.OTPMaxPerHour)
	}
	if cfg.OTPMaxAttempts != 5 {
		t.Fatalf("expected 5 guess attempts, got %d", cfg.OTPMaxAttempts)
	}
	if !cfg.IsDev() {
		t.Fatalf("default env should be development")
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected failure without JWT_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OTP_TTL_MINUTES", "5")
	t.Setenv("OTP_MAX_PER_HOUR", "3")
	t.Setenv("OTP_MAX_ATTEMPTS", "10")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("ADMIN_PHONE", "+971500000001")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Fatalf("expected 5m code TTL, got %s", cfg.OTPTTL)
	}
	if cfg.OTPMaxPerHour != 3 {
		t.Fatalf("expected 3 sends per hour, got %d", cfg.OTPMaxPerHour)
	}
	if cfg.OTPMaxAttempts != 10 {
		t.Fatalf("expected 10 attempts, got %d", cfg.OTPMaxAttempts)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token TTL, got %s", cfg.TokenTTL)
	}
	if cfg.AdminPhone != "+971500000001" {
		t.Fatalf("admin phone not loaded")
	}
	if cfg.IsDev() {
		t.Fatalf("production env must not count as dev")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Setenv("OTP_TTL_MINUTES", "zero")
	if _, err := Load(); err == nil {
		t.Fatalf("expected failure for non-numeric OTP_TTL_MINUTES")
	}
	t.Setenv("OTP_TTL_MINUTES", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected failure for negative OTP_TTL_MINUTES")
	}
	t.Setenv("OTP_TTL_MINUTES", "")

	t.Setenv("TOKEN_TTL", "sometime")
	if _, err := Load(); err == nil {
		t.Fatalf("expected failure for malformed TOKEN_TTL")
	}
}
