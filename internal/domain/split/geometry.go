package split

// Axis is the direction along which a split divides its area.
type Axis string

const (
	// Horizontal places children side by side: first on the left,
	// second on the right.
	Horizontal Axis = "horizontal"
	// Vertical stacks children: first on top, second on the bottom.
	Vertical Axis = "vertical"
)

// IsValid reports whether a is a known axis.
func (a Axis) IsValid() bool {
	return a == Horizontal || a == Vertical
}

// Point is a position in the container's coordinate space. The origin
// sits at the bottom-left corner, so Y grows upward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// UnitRect is the normalized bounds assigned to a container that has
// not been given explicit geometry.
func UnitRect() Rect {
	return Rect{X: 0, Y: 0, Width: 1, Height: 1}
}

// Contains reports whether p lies inside r. Edges count as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Halve cuts r in two along the given axis and returns the areas for
// the first and second child. A horizontal cut yields left and right
// halves; a vertical cut yields top and bottom halves, the first child
// taking the upper one.
func (r Rect) Halve(axis Axis) (first, second Rect) {
	switch axis {
	case Horizontal:
		half := r.Width / 2
		first = Rect{X: r.X, Y: r.Y, Width: half, Height: r.Height}
		second = Rect{X: r.X + half, Y: r.Y, Width: r.Width - half, Height: r.Height}
	case Vertical:
		half := r.Height / 2
		first = Rect{X: r.X, Y: r.Y + half, Width: r.Width, Height: r.Height - half}
		second = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: half}
	default:
		first, second = r, r
	}
	return first, second
}
