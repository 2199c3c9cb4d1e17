// Package ws streams panel events and terminal IO to the editor
// frontend over WebSocket.
//
// One hub fans every engine frame out to all connected clients: panel
// events carry fresh layout snapshots, output frames carry raw session
// bytes (base64 in JSON). Inbound frames drive the sessions directly.
// A client that stops reading is disconnected rather than throttling
// the engine; on reconnect it gets the current layout immediately and
// can request each session's output backlog.
//
// Frame Types (Client → Engine):
//   - input: write data to a session's shell
//   - resize: set a session's terminal dimensions
//   - backlog: request a session's buffered recent output
//   - ping: keep-alive
//
// Frame Types (Engine → Client):
//   - tabs_changed, layout_changed, session_exited,
//     panel_collapse_requested: coordinator events
//   - output: raw session output
//   - backlog: buffered output replay
//   - pong, error
//
// Example Usage:
//
//	hub := ws.NewHub(logger, metrics)
//	go hub.Run()
//	handler := ws.NewHandler(hub, coordinator, logger, metrics)
//	router.GET("/stream", handler.HandleConnection)
package ws
