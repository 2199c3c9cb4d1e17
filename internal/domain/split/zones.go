package split

import "fmt"

// Zone identifies the region of a pane a drag cursor is hovering over.
// Edge zones request a directional split; the center zone is the
// fallback for ambiguous positions.
type Zone string

const (
	ZoneLeft   Zone = "left"
	ZoneRight  Zone = "right"
	ZoneTop    Zone = "top"
	ZoneBottom Zone = "bottom"
	ZoneCenter Zone = "center"
)

// edgeBand is the fraction of a pane's width or height that counts as
// an edge zone on each side. Cursor positions in the middle half of
// both axes fall through to the center zone.
const edgeBand = 0.25

// ParseZone validates a wire-format zone string.
func ParseZone(s string) (Zone, error) {
	switch z := Zone(s); z {
	case ZoneLeft, ZoneRight, ZoneTop, ZoneBottom, ZoneCenter:
		return z, nil
	default:
		return "", fmt.Errorf("unknown drop zone %q", s)
	}
}

// Placement translates a zone into the split that realizes it: the
// axis of the new divider and whether the dropped session becomes the
// first or second child. Center has no direction of its own and maps
// to a right-hand split.
func (z Zone) Placement() (axis Axis, dropFirst bool) {
	switch z {
	case ZoneLeft:
		return Horizontal, true
	case ZoneRight:
		return Horizontal, false
	case ZoneTop:
		return Vertical, true
	case ZoneBottom:
		return Vertical, false
	default:
		return Horizontal, false
	}
}

// zoneAt maps a point inside a pane's rect to a drop zone. Horizontal
// bands win over vertical ones where they overlap in the corners.
func zoneAt(r Rect, p Point) Zone {
	if r.Width <= 0 || r.Height <= 0 {
		return ZoneCenter
	}
	fx := (p.X - r.X) / r.Width
	fy := (p.Y - r.Y) / r.Height
	switch {
	case fx < edgeBand:
		return ZoneLeft
	case fx > 1-edgeBand:
		return ZoneRight
	case fy > 1-edgeBand:
		return ZoneTop
	case fy < edgeBand:
		return ZoneBottom
	default:
		return ZoneCenter
	}
}
