package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvTrimmedOrDefault(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))

	if v == "" {
		return defaultValue
	}

	return v
}

// GetEnvBool falls back to defaultValue when the variable is unset or unparsable.
func GetEnvBool(key string, defaultValue bool) bool {
	v := GetEnvTrimmed(key)
	if v == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}

	return b
}

// GetEnvPositiveDuration ignores zero, negative and unparsable values.
func GetEnvPositiveDuration(key string, defaultValue time.Duration) time.Duration {
	v := GetEnvTrimmed(key)
	if v == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultValue
	}

	return d
}

// GetEnvPositiveInt64 ignores zero, negative and unparsable values.
func GetEnvPositiveInt64(key string, defaultValue int64) int64 {
	v := GetEnvTrimmed(key)
	if v == "" {
		return defaultValue
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}

	return n
}
