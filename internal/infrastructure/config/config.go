package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all engine configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	Terminal  TerminalConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8700"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// TerminalConfig holds session spawning configuration.
type TerminalConfig struct {
	DefaultProfile     string        `envconfig:"TERMINAL_PROFILE" default:""`
	ProfilesPath       string        `envconfig:"TERMINAL_PROFILES_PATH" default:""`
	TranscriptsEnabled bool          `envconfig:"TERMINAL_TRANSCRIPTS" default:"false"`
	TranscriptDir      string        `envconfig:"TERMINAL_TRANSCRIPT_DIR" default:""`
	StartupChdirDelay  time.Duration `envconfig:"TERMINAL_CHDIR_DELAY" default:"100ms"`
	Cols               int           `envconfig:"TERMINAL_COLS" default:"80"`
	Rows               int           `envconfig:"TERMINAL_ROWS" default:"24"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig holds cross-origin configuration for the editor frontend.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8700",
			Host: "127.0.0.1",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Terminal: TerminalConfig{
			StartupChdirDelay: 100 * time.Millisecond,
			Cols:              80,
			Rows:              24,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}
