// Package panel coordinates tabs, sessions, and split trees.
//
// The Coordinator is the engine's single entry point: it owns the tab
// bar, creates and closes sessions through the session.Factory, mutates
// the per-tab split containers, and keeps descriptors in step with what
// happens underneath them. Every gesture of the host UI maps to one
// coordinator method.
//
// Components:
//   - Coordinator: create/close/select/drop routing over all tabs
//   - Bar/Tab/Descriptor: the ordered tab bar model
//   - Payload: drag payload codec with a plain-text fallback
//
// Concurrency:
//
// The engine is modeled on a single UI thread. One mutex serializes
// every operation, including observer callbacks arriving from session
// goroutines, so no tree is ever mutated concurrently. Session
// lifecycle calls are fire-and-forget; completion shows up later as
// observer callbacks. The one scheduled task, the post-start directory
// change, re-checks that its session still exists before acting.
//
// Failure semantics:
//
// Operations handed an unknown session or tab id do nothing and say so
// through their return values; only session creation can fail with an
// error. Structural invariant violations cannot be reached through this
// API and are covered by the split package's tests instead.
package panel
