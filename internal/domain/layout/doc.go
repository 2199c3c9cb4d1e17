// Package layout produces serializable views of the live panel state.
//
// The coordinator captures a PanelSnapshot after structural changes and
// publishes it inside Events; HTTP and WebSocket clients render from
// these views. Capture is one-directional: snapshots are never persisted
// and never loaded back, so the split tree stays the only source of
// truth and layout does not survive a restart.
//
// Components:
//   - NodeSnapshot/TabSnapshot/PanelSnapshot: tree and tab views
//   - CaptureNode: recursive snapshot of a split subtree
//   - Event: typed notification carrying a snapshot or a session id
package layout
