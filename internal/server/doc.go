// Package server assembles and runs the terminal panel engine.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (recovery, tracing, metrics, CORS, rate limiting)
//   - Profile registry with builtin seeding, file loading, and watching
//   - PTY session spawner with per-profile spawn guards
//   - Panel coordinator wired to the WebSocket stream hub
//
// Server Lifecycle:
//  1. Load configuration from environment
//  2. Initialize logger (production or development)
//  3. Seed, load, and watch shell profiles
//  4. Build the spawner, hub, and coordinator
//  5. Setup HTTP routes and middleware
//  6. Open the initial tab and start serving
//  7. Graceful shutdown on signal: drain HTTP, terminate sessions,
//     stop the hub
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
