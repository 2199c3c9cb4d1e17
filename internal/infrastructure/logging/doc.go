// Package logging provides structured logging using uber/zap.
//
// Two modes cover the engine's lifetimes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Engine packages never log through the root logger directly; they take
// a *Logger and derive a child via Component, so every line carries the
// package that wrote it.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	log := logger.Component("panel")
//	log.Info("tab created", zap.String("tab_id", id))
package logging
