package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	assert.Equal(t, "value", LoadEnvString("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", LoadEnvString("TEST_STRING_UNSET", "fallback"))
}

func TestLoadEnvInt64(t *testing.T) {
	t.Setenv("TEST_INT", "-100200300")
	got, warnings := LoadEnvInt64("TEST_INT", 1)
	assert.Equal(t, int64(-100200300), got)
	assert.Empty(t, warnings)

	t.Setenv("TEST_INT", "not a number")
	got, warnings = LoadEnvInt64("TEST_INT", 42)
	assert.Equal(t, int64(42), got)
	assert.Len(t, warnings, 1)
}

func TestLoadEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	got, warnings := LoadEnvDuration("TEST_DURATION", time.Second)
	assert.Equal(t, 90*time.Second, got)
	assert.Empty(t, warnings)

	t.Setenv("TEST_DURATION", "-5s")
	got, warnings = LoadEnvDuration("TEST_DURATION", 7*time.Second)
	assert.Equal(t, 7*time.Second, got)
	assert.Len(t, warnings, 1)

	t.Setenv("TEST_DURATION", "banana")
	got, warnings = LoadEnvDuration("TEST_DURATION", 7*time.Second)
	assert.Equal(t, 7*time.Second, got)
	assert.Len(t, warnings, 1)
}

func TestLoadEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	got, warnings := LoadEnvBool("TEST_BOOL", true)
	assert.False(t, got)
	assert.Empty(t, warnings)

	t.Setenv("TEST_BOOL", "maybe")
	got, warnings = LoadEnvBool("TEST_BOOL", true)
	assert.True(t, got)
	assert.Len(t, warnings, 1)
}
