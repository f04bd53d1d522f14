package logger

import (
	"testing"

	"github.com/stretchr/testify/require"

	appConfig "github.com/starbounty/bounty-service/internal/config"
)

func TestNew(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "stdout")

	logger, err := New()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewWithConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  appConfig.LoggerConfig
	}{
		{"production json", appConfig.LoggerConfig{Level: "info", Format: "json", Output: "stdout"}},
		{"development console", appConfig.LoggerConfig{Level: "debug", Format: "console", Output: "stdout"}},
		{"warn to stderr", appConfig.LoggerConfig{Level: "warn", Format: "json", Output: "stderr"}},
		{"invalid level falls back to info", appConfig.LoggerConfig{Level: "loud", Format: "json", Output: "stdout"}},
		{"unknown output defaults to stdout", appConfig.LoggerConfig{Level: "info", Format: "json", Output: "/nowhere"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithConfig(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)

			logger.Debugw("debug message", "key", "value")
			logger.Infow("info message", "key", "value")
			logger.Warnw("warn message", "key", "value")
			logger.Errorw("error message", "key", "value")
		})
	}
}
