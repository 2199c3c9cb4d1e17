// Package session defines the terminal session collaborator consumed by
// the panel engine.
//
// The engine never spawns shells itself: it places opaque sessions into
// split trees and coordinates their lifecycle through this interface.
// The concrete implementation lives in infrastructure/terminal.
//
// Components:
//   - Session: identity, title, running flag, and control surface
//   - Observer: published title/running/exit/output changes
//   - Factory: session allocation for the coordinator
//
// Contract notes:
//   - Session IDs are UUID strings; the drag-drop payload carries them
//     verbatim.
//   - Start/Send/ChangeDirectory are fire-and-forget: the coordinator
//     logs failures and moves on, it never blocks tree mutation on them.
//   - Observer methods are called from session goroutines; implementations
//     re-enter the coordinator through its own lock.
package session
