package split

import (
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
)

// Container owns the split tree of one tab. Its identity doubles as
// the tab id. A container normally holds at least one pane; an empty
// container is a transient state the coordinator resolves by tearing
// the tab down or installing a fresh root.
type Container struct {
	id     string
	root   *Node
	bounds Rect
}

// NewContainer creates a container rooted on s. Pass nil to create an
// empty container and install the root later via SetRoot. Bounds start
// at the unit square until the host assigns real geometry.
func NewContainer(id string, s session.Session) *Container {
	c := &Container{id: id, bounds: UnitRect()}
	if s != nil {
		c.SetRoot(s)
	}
	return c
}

// ID returns the container's identity, which is also the tab id.
func (c *Container) ID() string {
	return c.id
}

// Root returns the tree root, nil when the container is empty.
func (c *Container) Root() *Node {
	return c.root
}

// Empty reports whether no panes remain.
func (c *Container) Empty() bool {
	return c.root == nil
}

// Bounds returns the area the tree is laid out into.
func (c *Container) Bounds() Rect {
	return c.bounds
}

// SetBounds reassigns the container's area and lays the tree out again.
func (c *Container) SetBounds(r Rect) {
	c.bounds = r
	c.Relayout()
}

// SetRoot discards any existing tree and installs a single leaf for s.
func (c *Container) SetRoot(s session.Session) {
	c.root = NewLeaf(s)
	c.Relayout()
}

// AddSession splits the pane identified by relativeToID (the root when
// empty, unknown, or unset) and places s on the side the zone names.
// Returns the new leaf so the caller can focus it.
func (c *Container) AddSession(s session.Session, relativeToID string, zone Zone) *Node {
	if c.root == nil {
		c.SetRoot(s)
		return c.root
	}
	target := c.root
	if relativeToID != "" {
		if n := c.root.Find(relativeToID); n != nil {
			target = n
		}
	}
	axis, newFirst := zone.Placement()
	leaf := target.Split(s, axis, newFirst)
	c.Relayout()
	return leaf
}

// RemoveSession removes the pane hosting the given session, collapsing
// the split that held it. Removing the last pane leaves the container
// empty and returns true; the coordinator decides whether that means
// tearing down the tab. Returns false when the session is not here.
func (c *Container) RemoveSession(sessionID string) bool {
	if c.root == nil {
		return false
	}
	if c.root.IsLeaf() {
		if c.root.session != nil && c.root.session.ID() == sessionID {
			c.root = nil
			return true
		}
		return false
	}
	if !c.root.Remove(sessionID) {
		return false
	}
	c.Relayout()
	return true
}

// Find returns the leaf hosting the given session, or nil.
func (c *Container) Find(sessionID string) *Node {
	if c.root == nil {
		return nil
	}
	return c.root.Find(sessionID)
}

// Sessions returns every session in the tab in depth-first pane order.
func (c *Container) Sessions() []session.Session {
	if c.root == nil {
		return nil
	}
	return c.root.Sessions()
}

// Count returns the number of panes.
func (c *Container) Count() int {
	if c.root == nil {
		return 0
	}
	return c.root.Count()
}

// Relayout recomputes every node's rect from the container bounds and
// renumbers panes sequentially in depth-first order.
func (c *Container) Relayout() {
	if c.root == nil {
		return
	}
	c.root.layout(c.bounds)
	for i, leaf := range c.root.Leaves() {
		leaf.number = i + 1
	}
}

// HitTestDropZone classifies a pointer position during a drag. The
// tree is walked from the root into whichever child's rect contains
// the point; at the reached leaf the position is reduced to fractions
// of the pane and matched against the edge bands. Points outside the
// tree entirely, or lost to rounding between children, resolve to the
// center zone with no target, meaning the container root.
func (c *Container) HitTestDropZone(p Point) (Zone, string) {
	if c.root == nil || !c.root.rect.Contains(p) {
		return ZoneCenter, ""
	}
	return hitTest(c.root, p)
}

func hitTest(n *Node, p Point) (Zone, string) {
	if n.IsLeaf() {
		id := ""
		if n.session != nil {
			id = n.session.ID()
		}
		return zoneAt(n.rect, p), id
	}
	if n.first.rect.Contains(p) {
		return hitTest(n.first, p)
	}
	if n.second.rect.Contains(p) {
		return hitTest(n.second, p)
	}
	return ZoneCenter, ""
}
