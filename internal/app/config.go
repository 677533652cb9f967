package app

import (
	"os"
	"strconv"
	"time"

	"github.com/tasktrack/tasktrack/pkg/jwtx"
)

type Config struct {
	SecretKey string // Required in prod: HS256 signing secret (generated in dev when unset)
	Issuer    string // Optional: issuer claim for tokens (default: tasktrack)

	TokenTTL     time.Duration // Optional: access token lifetime (default: 60m)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./tasktrack.db)
	LoginURL     string        // Optional: redirect target for failed browser cookie auth (default: /login)

	ExpandBaseURL string        // Optional: base URL of the description expansion API
	ExpandAPIKey  string        // Optional: API key for description expansion (expansion disabled when unset)
	ExpandModel   string        // Optional: model used for description expansion (default: gemini-2.0-flash)
	ExpandTimeout time.Duration // Optional: per-call expansion deadline (default: 10s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SecretKey: os.Getenv("TASKTRACK_SECRET_KEY"),
		Issuer:    getEnvOrDefault("TASKTRACK_ISSUER", "tasktrack"),

		TokenTTL:     getEnvDurationOrDefault("TASKTRACK_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		DatabaseFile: getEnvOrDefault("TASKTRACK_DATABASE_FILE", "tasktrack.db"),
		LoginURL:     getEnvOrDefault("TASKTRACK_LOGIN_URL", "/login"),

		ExpandBaseURL: getEnvOrDefault("TASKTRACK_EXPAND_BASE_URL", "https://generativelanguage.googleapis.com"),
		ExpandAPIKey:  os.Getenv("TASKTRACK_EXPAND_API_KEY"),
		ExpandModel:   getEnvOrDefault("TASKTRACK_EXPAND_MODEL", "gemini-2.0-flash"),
		ExpandTimeout: getEnvDurationOrDefault("TASKTRACK_EXPAND_TIMEOUT", 10*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
