package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadEnvString loads a string value from an environment variable, falling
// back to defaultValue when the variable is not set. No validation is
// performed; any string value is acceptable.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvInt64 loads an int64 value from an environment variable with
// automatic fallback to default on parse failure.
//
// This function never returns an error: parse failures produce a warning
// string and the default value, so a binary can always start with a valid
// configuration (fail-open strategy).
func LoadEnvInt64(envKey string, defaultValue int64) (int64, []string) {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%d'",
			envKey, value, err, defaultValue)
		return defaultValue, []string{warning}
	}
	return parsed, nil
}

// LoadEnvDuration loads a duration value from an environment variable with
// parsing and automatic fallback to default on failure. Values must be
// positive; zero or negative durations fall back with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration) (time.Duration, []string) {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%s'",
			envKey, value, err, defaultValue)
		return defaultValue, []string{warning}
	}
	if parsed <= 0 {
		warning := fmt.Sprintf("Invalid %s='%s': duration must be positive, falling back to default '%s'",
			envKey, value, defaultValue)
		return defaultValue, []string{warning}
	}
	return parsed, nil
}

// LoadEnvBool loads a boolean value from an environment variable with
// automatic fallback to default on parse failure. Accepts the forms
// understood by strconv.ParseBool ("1", "t", "true", ...).
func LoadEnvBool(envKey string, defaultValue bool) (bool, []string) {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%t'",
			envKey, value, err, defaultValue)
		return defaultValue, []string{warning}
	}
	return parsed, nil
}
