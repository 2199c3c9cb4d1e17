// Package config provides 12-factor configuration management for the panel engine.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - Terminal: Session spawning (default profile, transcripts, chdir delay)
//   - RateLimit: Per-IP rate limiting configuration
//   - CORS: Allowed origins for the editor frontend
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Engine listening on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - TERMINAL_PROFILE, TERMINAL_PROFILES_PATH, TERMINAL_TRANSCRIPTS,
//     TERMINAL_TRANSCRIPT_DIR, TERMINAL_CHDIR_DELAY, TERMINAL_COLS, TERMINAL_ROWS
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ORIGINS
package config
