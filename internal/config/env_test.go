package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns default when unset", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnv("TEST_UNSET_KEY", "fallback"))
	})

	t.Run("returns value when set", func(t *testing.T) {
		t.Setenv("TEST_SET_KEY", "value")
		assert.Equal(t, "value", GetEnv("TEST_SET_KEY", "fallback"))
	})

	t.Run("empty value falls back to default", func(t *testing.T) {
		t.Setenv("TEST_EMPTY_KEY", "")
		assert.Equal(t, "fallback", GetEnv("TEST_EMPTY_KEY", "fallback"))
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Run("parses integer", func(t *testing.T) {
		t.Setenv("TEST_INT_KEY", "17")
		assert.Equal(t, 17, getEnvInt("TEST_INT_KEY", 5))
	})

	t.Run("invalid integer falls back to default", func(t *testing.T) {
		t.Setenv("TEST_INT_KEY", "seventeen")
		assert.Equal(t, 5, getEnvInt("TEST_INT_KEY", 5))
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("parses duration", func(t *testing.T) {
		t.Setenv("TEST_DUR_KEY", "90s")
		assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DUR_KEY", time.Minute))
	})

	t.Run("invalid duration falls back to default", func(t *testing.T) {
		t.Setenv("TEST_DUR_KEY", "soon")
		assert.Equal(t, time.Minute, GetEnvDuration("TEST_DUR_KEY", time.Minute))
	})
}
