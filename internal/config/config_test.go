package config

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AVATAR_BACKEND_URL", "AVATAR_FRONTEND_URL", "SMOKE_TIMEOUT", "SMOKE_TEXT_PREVIEW",
		"PORT", "AVATAR_CACHE_TTL", "AVATAR_STUB_API_KEY", "AVATAR_STUB_API_KEY_REQUIRED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Smoke.BaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected base url: %s", cfg.Smoke.BaseURL)
	}
	if cfg.Smoke.Timeout != 0 {
		t.Fatalf("expected no timeout by default, got %s", cfg.Smoke.Timeout)
	}
	if cfg.Smoke.PreviewLen != 100 {
		t.Fatalf("unexpected preview length: %d", cfg.Smoke.PreviewLen)
	}
	if cfg.Server.Addr != ":3000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Stub.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache ttl: %s", cfg.Stub.CacheTTL)
	}
	if !cfg.Stub.HasAPIKey() {
		t.Fatal("stub should behave as configured when no key is required")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AVATAR_BACKEND_URL", "http://127.0.0.1:3002/")
	t.Setenv("SMOKE_TIMEOUT", "15")
	t.Setenv("SMOKE_TEXT_PREVIEW", "40")
	t.Setenv("PORT", "127.0.0.1:3002")
	t.Setenv("AVATAR_CACHE_TTL", "30s")
	t.Setenv("AVATAR_STUB_API_KEY_REQUIRED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Smoke.BaseURL != "http://127.0.0.1:3002" {
		t.Fatalf("trailing slash should be trimmed, got %s", cfg.Smoke.BaseURL)
	}
	if cfg.Smoke.Timeout != 15*time.Second {
		t.Fatalf("bare number should be seconds, got %s", cfg.Smoke.Timeout)
	}
	if cfg.Smoke.PreviewLen != 40 {
		t.Fatalf("unexpected preview length: %d", cfg.Smoke.PreviewLen)
	}
	if cfg.Server.Addr != "127.0.0.1:3002" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Stub.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache ttl: %s", cfg.Stub.CacheTTL)
	}
	if cfg.Stub.HasAPIKey() {
		t.Fatal("stub should report missing key when one is required")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad url":     {"AVATAR_BACKEND_URL", "localhost:3000"},
		"bad timeout": {"SMOKE_TIMEOUT", "soon"},
		"neg timeout": {"SMOKE_TIMEOUT", "-1s"},
		"bad port":    {"PORT", "30 00"},
		"bad bool":    {"AVATAR_STUB_API_KEY_REQUIRED", "maybe"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", kv[0], kv[1])
			}
		})
	}
}

func TestLoadSmokeIgnoresStubSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "30 00")
	t.Setenv("AVATAR_CACHE_TTL", "bogus")
	t.Setenv("AVATAR_STUB_API_KEY_REQUIRED", "maybe")
	t.Setenv("AVATAR_BACKEND_URL", "http://127.0.0.1:3002")

	if _, err := Load(); err == nil {
		t.Fatal("full Load should still reject bad stub settings")
	}

	smoke, err := LoadSmoke()
	if err != nil {
		t.Fatalf("LoadSmoke err: %v", err)
	}
	if smoke.BaseURL != "http://127.0.0.1:3002" {
		t.Fatalf("unexpected base url: %s", smoke.BaseURL)
	}
}

func TestLoadSmokeRejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMOKE_TIMEOUT", "soon")

	if _, err := LoadSmoke(); err == nil {
		t.Fatal("expected error for SMOKE_TIMEOUT=soon")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := NormalizeBaseURL("  https://avatar.local:8443//  ")
	if err != nil {
		t.Fatalf("NormalizeBaseURL err: %v", err)
	}
	if got != "https://avatar.local:8443" {
		t.Fatalf("unexpected url: %s", got)
	}

	if _, err := NormalizeBaseURL("ftp://avatar.local"); !errors.Is(err, ErrInvalidBaseURL) {
		t.Fatalf("expected ErrInvalidBaseURL, got %v", err)
	}
	if _, err := NormalizeBaseURL("http://"); !errors.Is(err, ErrInvalidBaseURL) {
		t.Fatalf("expected ErrInvalidBaseURL for missing host, got %v", err)
	}
}
