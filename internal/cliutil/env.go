package cliutil

import (
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"
)

// Environment defaults are read with the helpers below. An unset variable
// yields the fallback silently; an invalid one logs a warning and yields the
// fallback.

// EnvBool reads a boolean environment variable.
func EnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

// EnvInt reads a positive integer environment variable.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// EnvNonNegativeInt is EnvInt for settings where zero is meaningful.
func EnvNonNegativeInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// EnvInt64 reads a positive 64-bit integer environment variable.
func EnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int64 env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// EnvDuration reads a positive time.ParseDuration environment variable.
func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// EnvChoice reads an environment variable restricted to allowed values.
func EnvChoice(key, fallback string, allowed []string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !slices.Contains(allowed, v) {
		slog.Warn("invalid env var, using default", "key", key, "value", v, "default", fallback, "allowed", allowed)
		return fallback
	}
	return v
}
