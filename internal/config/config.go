// Package config loads and validates application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Optional: when unset
	// the server runs with an in-memory store and nothing survives a restart.
	DatabaseURL string

	// AppID namespaces storage paths so several deployments can share one
	// database. Defaults to "tripfolio".
	AppID string

	// AuthSecret signs session tokens. Optional: when unset no identities
	// can be issued and the server runs in local-only mode, where every
	// request shares a single identity.
	AuthSecret string

	// TokenTTL is how long an issued session token stays valid.
	// Defaults to 720h (30 days). Set TOKEN_TTL to a Go duration to override.
	TokenTTL time.Duration

	// ExportEnabled controls whether the PDF export endpoint is wired up.
	// Defaults to true. Set EXPORT_ENABLED=false to disable.
	ExportEnabled bool

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the log output format. Defaults to "json".
	// Valid values: json, text (human-readable, for development).
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// Every variable has a workable default or degraded mode, so Load never fails;
// the caller decides how loudly to warn about what is missing.
func Load() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppID:         getEnv("APP_ID", "tripfolio"),
		AuthSecret:    os.Getenv("AUTH_SECRET"),
		TokenTTL:      getDuration("TOKEN_TTL", 720*time.Hour),
		ExportEnabled: getBool("EXPORT_ENABLED", true),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getBool parses a boolean environment variable, falling back on absence
// or a value strconv does not recognize.
func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getDuration parses a duration environment variable, falling back on
// absence or a malformed value.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
