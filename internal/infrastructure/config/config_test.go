package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8700", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Terminal config
	assert.Equal(t, "", cfg.Terminal.DefaultProfile)
	assert.False(t, cfg.Terminal.TranscriptsEnabled)
	assert.Equal(t, 100*time.Millisecond, cfg.Terminal.StartupChdirDelay)
	assert.Equal(t, 80, cfg.Terminal.Cols)
	assert.Equal(t, 24, cfg.Terminal.Rows)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	// CORS config
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8700", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                    "9000",
		"HOST":                    "0.0.0.0",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"TERMINAL_PROFILE":        "zsh",
		"TERMINAL_TRANSCRIPTS":    "true",
		"TERMINAL_TRANSCRIPT_DIR": "/tmp/transcripts",
		"TERMINAL_CHDIR_DELAY":    "250ms",
		"TERMINAL_COLS":           "120",
		"TERMINAL_ROWS":           "40",
		"RATE_LIMIT_RPS":          "500",
		"RATE_LIMIT_BURST":        "1000",
		"RATE_LIMIT_ENABLED":      "false",
		"CORS_ORIGINS":            "http://localhost:5173,http://localhost:3000",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	// Verify server config
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Verify logging config
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	// Verify terminal config
	assert.Equal(t, "zsh", cfg.Terminal.DefaultProfile)
	assert.True(t, cfg.Terminal.TranscriptsEnabled)
	assert.Equal(t, "/tmp/transcripts", cfg.Terminal.TranscriptDir)
	assert.Equal(t, 250*time.Millisecond, cfg.Terminal.StartupChdirDelay)
	assert.Equal(t, 120, cfg.Terminal.Cols)
	assert.Equal(t, 40, cfg.Terminal.Rows)

	// Verify rate limit config
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)

	// Verify CORS config
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 100*time.Millisecond, cfg.Terminal.StartupChdirDelay)
	assert.True(t, cfg.RateLimit.Enabled)
}
