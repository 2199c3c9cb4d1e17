// Package main is the entry point for the terminal panel engine.
//
// The engine backs the multi-instance terminal panel of a desktop
// editor: it owns shell sessions, the split-tree layout of every tab,
// and the drag-and-drop coordination between panes, and exposes the
// whole surface to the editor frontend over HTTP and WebSocket.
//
// Architecture:
//
//	Editor frontend → REST API    (tabs, splits, drops, layout)
//	                → /stream WS  (terminal IO, layout events)
//	Engine          → PTY shells  (one per pane)
//
// The server provides:
//   - REST API for tab, pane, and drag-drop management
//   - WebSocket streaming of terminal output and layout events
//   - Shell profile registry with live file reloading
//   - Per-profile spawn guards against crash-looping commands
//   - Prometheus metrics and request tracing
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8700
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
