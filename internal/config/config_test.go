package config

import (
	"testing"
	"time"

	"github.com/kprather/pickem-api/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load with defaults failed: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.ESPNMaxAttempts != 5 {
		t.Fatalf("unexpected max attempts: %d", cfg.ESPNMaxAttempts)
	}
	if cfg.ESPNBackoffInitial != time.Second || cfg.ESPNBackoffMax != 16*time.Second {
		t.Fatalf("unexpected backoff bounds: %s / %s", cfg.ESPNBackoffInitial, cfg.ESPNBackoffMax)
	}
	if !cfg.ESPNCircuitEnabled {
		t.Fatal("circuit breaker must default to enabled")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("ESPN_MAX_ATTEMPTS", "3")
	t.Setenv("ESPN_BACKOFF_INITIAL", "250ms")
	t.Setenv("DEFAULT_SEASON_YEAR", "2024")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.AppEnv != EnvProd {
		t.Fatalf("unexpected app env: %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.ESPNMaxAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", cfg.ESPNMaxAttempts)
	}
	if cfg.ESPNBackoffInitial != 250*time.Millisecond {
		t.Fatalf("unexpected backoff: %s", cfg.ESPNBackoffInitial)
	}
	if cfg.DefaultSeasonYear != 2024 {
		t.Fatalf("unexpected season year: %d", cfg.DefaultSeasonYear)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", "weird")
	if _, err := Load(); err == nil {
		t.Fatal("invalid APP_ENV must fail loading")
	}

	t.Setenv("APP_ENV", "dev")
	t.Setenv("ESPN_MAX_ATTEMPTS", "plenty")
	if _, err := Load(); err == nil {
		t.Fatal("non-numeric ESPN_MAX_ATTEMPTS must fail loading")
	}

	t.Setenv("ESPN_MAX_ATTEMPTS", "5")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatal("enabling uptrace without a DSN must fail loading")
	}
}
