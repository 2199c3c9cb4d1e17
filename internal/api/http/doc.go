// Package http provides HTTP handlers for the terminal panel REST API.
//
// This package implements all HTTP endpoints using the Gin framework.
// Every mutating endpoint maps onto one coordinator operation, and the
// coordinator's silent no-op semantics surface as 200 responses with
// "changed": false rather than errors: an unknown id is a stale click,
// not a fault.
//
// Endpoints:
//   - Health: /health
//   - Tabs: /tabs, /tabs/:id/select, /tabs/next, /tabs/previous
//   - Sessions: /sessions/:id, /sessions/:id/split
//   - Drag and drop: /drag, /drop
//   - Panel: /panel/cwd, /panel/collapse, /layout
//   - Profiles: /profiles
//
// Spawn failures behind an open circuit breaker report 503; malformed
// ids, zones, and payloads report 400.
//
// Example Usage:
//
//	handlers := http.NewHandlers(coordinator, profiles)
//	router.GET("/health", handlers.Health)
//	router.POST("/tabs", handlers.CreateTab)
package http
