package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "CORS_ALLOWED_ORIGINS", "GEMINI_API_KEY", "GEMINI_MODEL",
		"GEMINI_ENDPOINT", "GEMINI_TIMEOUT", "GEMINI_MAX_ATTEMPTS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8000" {
			t.Errorf("expected port 8000, got %s", cfg.Port)
		}
		if cfg.GeminiModel != "gemini-1.5-flash" {
			t.Errorf("expected default model, got %s", cfg.GeminiModel)
		}
		if cfg.GeminiTimeout != 15*time.Second {
			t.Errorf("expected 15s timeout, got %v", cfg.GeminiTimeout)
		}
		if cfg.GeminiMaxAttempts != 1 {
			t.Errorf("expected 1 attempt, got %d", cfg.GeminiMaxAttempts)
		}
		if cfg.InsightsEnabled() {
			t.Error("insights should be disabled without an API key")
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Errorf("expected wildcard origin, got %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", " secret ")
		t.Setenv("GEMINI_TIMEOUT", "5s")
		t.Setenv("GEMINI_MAX_ATTEMPTS", "3")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.com")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GeminiAPIKey != "secret" {
			t.Errorf("expected trimmed key, got %q", cfg.GeminiAPIKey)
		}
		if !cfg.InsightsEnabled() {
			t.Error("insights should be enabled with an API key")
		}
		if cfg.GeminiTimeout != 5*time.Second {
			t.Errorf("expected 5s, got %v", cfg.GeminiTimeout)
		}
		if cfg.GeminiMaxAttempts != 3 {
			t.Errorf("expected 3 attempts, got %d", cfg.GeminiMaxAttempts)
		}
		if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://example.com" {
			t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := map[string]string{
			"GEMINI_TIMEOUT":       "soon",
			"GEMINI_MAX_ATTEMPTS":  "0",
			"PORT":                 "http",
			"CORS_ALLOWED_ORIGINS": "localhost:3000",
		}
		for key, value := range cases {
			t.Run(key, func(t *testing.T) {
				clearEnv(t)
				t.Setenv(key, value)
				if _, err := Load(); err == nil {
					t.Fatalf("expected error for %s=%s", key, value)
				}
			})
		}
	})

	t.Run("empty origin list", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for empty origin list")
		}
	})
}
