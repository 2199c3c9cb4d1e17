// Package split implements the binary pane tree behind the terminal panel.
//
// Each tab owns one Container, which owns one tree of Nodes. A Node is
// either a leaf hosting a terminal session or an interior split dividing
// its area between two children along a horizontal or vertical axis.
// Splitting and removal mutate nodes in place, so the container's root
// pointer and every parent back-reference stay valid across arbitrary
// structural changes.
//
// Components:
//   - Node: recursive leaf/split vertex with in-place split and collapse
//   - Container: per-tab tree owner with layout and drop-zone hit testing
//   - Zone: drop-zone classification (left, right, top, bottom, center)
//   - Rect/Point: normalized geometry, origin at the bottom-left corner
//
// Structural rules:
//   - A split always has exactly two children; removing one promotes the
//     survivor's content into the parent, collapsing that level
//   - Depth-first order (first child before second) defines pane numbering
//     and is stable across layout passes
//   - Session ids are unique within a tree; lookups are exact-match
//
// Drop zones:
//
// During a drag, HitTestDropZone walks the tree into whichever child
// contains the pointer and classifies the position inside the reached
// pane. A symmetric band covering the outer quarter of each edge maps to
// that edge's zone; the middle of the pane and anything unresolvable map
// to center.
//
// Example Usage:
//
//	c := split.NewContainer(first.ID(), first)
//	leaf := c.AddSession(second, first.ID(), split.ZoneRight)
//	zone, target := c.HitTestDropZone(split.Point{X: 0.1, Y: 0.5})
//	c.RemoveSession(second.ID())
package split
