package split

import (
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
)

// Node is one vertex of a binary split tree. A leaf hosts a single
// terminal session; an interior node divides its area between exactly
// two children along an axis. Parent links are back-references for
// upward traversal only and never carry ownership.
type Node struct {
	parent  *Node
	session session.Session
	axis    Axis
	first   *Node
	second  *Node
	rect    Rect
	number  int
}

// NewLeaf creates an unattached leaf hosting s.
func NewLeaf(s session.Session) *Node {
	return &Node{session: s}
}

// IsLeaf reports whether n hosts a session directly.
func (n *Node) IsLeaf() bool {
	return n.first == nil && n.second == nil
}

// Session returns the hosted session, nil for interior nodes.
func (n *Node) Session() session.Session {
	return n.session
}

// Axis returns the split direction. Meaningless for leaves.
func (n *Node) Axis() Axis {
	return n.axis
}

// First returns the left or top child, nil for leaves.
func (n *Node) First() *Node {
	return n.first
}

// Second returns the right or bottom child, nil for leaves.
func (n *Node) Second() *Node {
	return n.second
}

// Parent returns the enclosing split node, nil at the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Rect returns the area assigned at the last layout pass.
func (n *Node) Rect() Rect {
	return n.rect
}

// Number returns the 1-based pane number assigned at the last layout
// pass. Zero for interior nodes.
func (n *Node) Number() int {
	return n.number
}

// Split turns n into an interior node dividing its area between a new
// leaf for newSession and a child that takes over n's prior content.
// The prior content is re-homed under the child, not copied, so a
// nested subtree or a running session's surface survives intact.
// newFirst puts the new leaf on the left or top side of the divider.
// Returns the new leaf so the caller can focus it.
func (n *Node) Split(newSession session.Session, axis Axis, newFirst bool) *Node {
	old := &Node{
		parent:  n,
		session: n.session,
		axis:    n.axis,
		first:   n.first,
		second:  n.second,
		rect:    n.rect,
		number:  n.number,
	}
	if old.first != nil {
		old.first.parent = old
	}
	if old.second != nil {
		old.second.parent = old
	}

	// Anchor the new leaf on the same frame so neither side starts
	// from a zero rect before the next layout pass.
	leaf := &Node{parent: n, session: newSession, rect: n.rect}

	n.session = nil
	n.number = 0
	n.axis = axis
	if newFirst {
		n.first, n.second = leaf, old
	} else {
		n.first, n.second = old, leaf
	}
	return leaf
}

// Remove searches depth-first for the leaf hosting the given session
// and collapses the split that held it: the removed leaf's parent is
// promoted in place to the surviving sibling's content, so one split
// level disappears and every pointer above it stays valid. Returns
// whether a removal happened. A lone root leaf is never removed here;
// that decision belongs to the container.
func (n *Node) Remove(sessionID string) bool {
	if n.IsLeaf() {
		return false
	}
	if n.first.IsLeaf() && n.first.session != nil && n.first.session.ID() == sessionID {
		n.promote(n.second)
		return true
	}
	if n.first.Remove(sessionID) {
		return true
	}
	if n.second.IsLeaf() && n.second.session != nil && n.second.session.ID() == sessionID {
		n.promote(n.first)
		return true
	}
	return n.second.Remove(sessionID)
}

// promote replaces n's content with survivor's, collapsing one split
// level. Grandchildren are reparented onto n so back-references stay
// consistent after the survivor node itself is discarded.
func (n *Node) promote(survivor *Node) {
	n.session = survivor.session
	n.axis = survivor.axis
	n.first = survivor.first
	n.second = survivor.second
	n.number = survivor.number
	if n.first != nil {
		n.first.parent = n
	}
	if n.second != nil {
		n.second.parent = n
	}
}

// Find returns the leaf hosting the given session, first-child subtree
// before second, or nil.
func (n *Node) Find(sessionID string) *Node {
	if n.IsLeaf() {
		if n.session != nil && n.session.ID() == sessionID {
			return n
		}
		return nil
	}
	if found := n.first.Find(sessionID); found != nil {
		return found
	}
	return n.second.Find(sessionID)
}

// Sessions flattens the subtree into depth-first order, first child
// before second. The order is stable and defines pane numbering.
func (n *Node) Sessions() []session.Session {
	if n.IsLeaf() {
		if n.session == nil {
			return nil
		}
		return []session.Session{n.session}
	}
	return append(n.first.Sessions(), n.second.Sessions()...)
}

// Leaves collects the subtree's leaf nodes in depth-first order.
func (n *Node) Leaves() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	return append(n.first.Leaves(), n.second.Leaves()...)
}

// Count returns the number of panes in the subtree.
func (n *Node) Count() int {
	if n.IsLeaf() {
		return 1
	}
	return n.first.Count() + n.second.Count()
}

// layout assigns r to n and halves it across the children.
func (n *Node) layout(r Rect) {
	n.rect = r
	if n.IsLeaf() {
		return
	}
	first, second := r.Halve(n.axis)
	n.first.layout(first)
	n.second.layout(second)
}
