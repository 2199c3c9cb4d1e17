package layout

import (
	"github.com/bytedance/sonic"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/split"
)

// Node snapshot kinds.
const (
	KindLeaf  = "leaf"
	KindSplit = "split"
)

// NodeSnapshot is a serializable view of one split-tree node. Leaves
// carry session identity and pane number; splits carry the axis and
// both children.
type NodeSnapshot struct {
	Type      string        `json:"type"`
	Rect      split.Rect    `json:"rect"`
	SessionID string        `json:"session_id,omitempty"`
	Title     string        `json:"title,omitempty"`
	Running   bool          `json:"running,omitempty"`
	Number    int           `json:"number,omitempty"`
	Axis      string        `json:"axis,omitempty"`
	First     *NodeSnapshot `json:"first,omitempty"`
	Second    *NodeSnapshot `json:"second,omitempty"`
}

// TabSnapshot is a serializable view of one tab: its descriptor state
// plus the full pane tree.
type TabSnapshot struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Running  bool          `json:"running"`
	Selected bool          `json:"selected"`
	Panes    int           `json:"panes"`
	Root     *NodeSnapshot `json:"root,omitempty"`
}

// PanelSnapshot is the whole panel at one instant: every tab in bar
// order and the focused session. Snapshots are views for clients, never
// persisted, and never read back into the engine.
type PanelSnapshot struct {
	Tabs    []TabSnapshot `json:"tabs"`
	Focused string        `json:"focused,omitempty"`
}

// CaptureNode builds a snapshot of the subtree rooted at n.
func CaptureNode(n *split.Node) *NodeSnapshot {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		snap := &NodeSnapshot{
			Type:   KindLeaf,
			Rect:   n.Rect(),
			Number: n.Number(),
		}
		if s := n.Session(); s != nil {
			snap.SessionID = s.ID()
			snap.Title = s.Title()
			snap.Running = s.IsRunning()
		}
		return snap
	}
	return &NodeSnapshot{
		Type:   KindSplit,
		Rect:   n.Rect(),
		Axis:   string(n.Axis()),
		First:  CaptureNode(n.First()),
		Second: CaptureNode(n.Second()),
	}
}

// Encode serializes the snapshot for HTTP and WebSocket clients.
func (p *PanelSnapshot) Encode() ([]byte, error) {
	return sonic.Marshal(p)
}
