package layout

import "github.com/bytedance/sonic"

// Event types published by the panel coordinator.
const (
	// EventTabsChanged fires when tabs are created, destroyed,
	// reordered, retitled, or the selection moves.
	EventTabsChanged = "tabs_changed"
	// EventLayoutChanged fires when a tab's pane tree changes shape.
	EventLayoutChanged = "layout_changed"
	// EventSessionExited fires when a session's process ends on its
	// own. The pane stays in place until the user closes it.
	EventSessionExited = "session_exited"
	// EventCollapseRequested asks the host to hide the whole panel.
	EventCollapseRequested = "panel_collapse_requested"
)

// Event is one coordinator notification pushed to stream clients.
// Structural events carry a fresh panel snapshot; session events carry
// the session id.
type Event struct {
	Type      string         `json:"type"`
	Panel     *PanelSnapshot `json:"panel,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
}

// Encode serializes the event for the wire.
func (e Event) Encode() ([]byte, error) {
	return sonic.Marshal(e)
}
