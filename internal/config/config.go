package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kprather/pickem-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	ESPNSiteBaseURL         string
	ESPNCoreBaseURL         string
	ESPNTimeout             time.Duration
	ESPNMaxAttempts         int
	ESPNBackoffInitial      time.Duration
	ESPNBackoffMax          time.Duration
	ESPNPhaseConcurrency    int
	ESPNCircuitEnabled      bool
	ESPNCircuitFailureCount int
	ESPNCircuitOpenTimeout  time.Duration
	ESPNCircuitHalfOpenMax  int
	DefaultSeasonYear       int
	SeasonResolveMaxWorkers int

	InternalJobToken string
	LogLevel         logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 120*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	espnTimeout, err := getEnvAsDuration("ESPN_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_TIMEOUT: %w", err)
	}
	espnMaxAttempts, err := getEnvAsInt("ESPN_MAX_ATTEMPTS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_MAX_ATTEMPTS: %w", err)
	}
	espnBackoffInitial, err := getEnvAsDuration("ESPN_BACKOFF_INITIAL", time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_BACKOFF_INITIAL: %w", err)
	}
	espnBackoffMax, err := getEnvAsDuration("ESPN_BACKOFF_MAX", 16*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_BACKOFF_MAX: %w", err)
	}
	espnPhaseConcurrency, err := getEnvAsInt("ESPN_PHASE_CONCURRENCY", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_PHASE_CONCURRENCY: %w", err)
	}
	espnCircuitEnabled, err := strconv.ParseBool(getEnv("ESPN_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_ENABLED: %w", err)
	}
	espnCircuitFailureCount, err := getEnvAsInt("ESPN_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	espnCircuitOpenTimeout, err := getEnvAsDuration("ESPN_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	espnCircuitHalfOpenMax, err := getEnvAsInt("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	defaultSeasonYear, err := getEnvAsInt("DEFAULT_SEASON_YEAR", time.Now().Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_SEASON_YEAR: %w", err)
	}
	seasonMaxWorkers, err := getEnvAsInt("SEASON_RESOLVE_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON_RESOLVE_MAX_WORKERS: %w", err)
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "pickem-api"),
		ServiceVersion:     getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,

		PprofEnabled: pprofEnabled,
		PprofAddr:    getEnv("PPROF_ADDR", ":6060"),

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     getEnv("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "pickem-api"),
		PyroscopeAuthToken:         getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		ESPNSiteBaseURL:         getEnv("ESPN_SITE_BASE_URL", ""),
		ESPNCoreBaseURL:         getEnv("ESPN_CORE_BASE_URL", ""),
		ESPNTimeout:             espnTimeout,
		ESPNMaxAttempts:         espnMaxAttempts,
		ESPNBackoffInitial:      espnBackoffInitial,
		ESPNBackoffMax:          espnBackoffMax,
		ESPNPhaseConcurrency:    espnPhaseConcurrency,
		ESPNCircuitEnabled:      espnCircuitEnabled,
		ESPNCircuitFailureCount: espnCircuitFailureCount,
		ESPNCircuitOpenTimeout:  espnCircuitOpenTimeout,
		ESPNCircuitHalfOpenMax:  espnCircuitHalfOpenMax,
		DefaultSeasonYear:       defaultSeasonYear,
		SeasonResolveMaxWorkers: seasonMaxWorkers,

		InternalJobToken: getEnv("INTERNAL_JOB_TOKEN", ""),
		LogLevel:         logLevel,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
