package icy

// Position is a signed cell coordinate. Negative values are legal
// intermediate states (offsets, scroll math) and are not clamped here.
type Position struct {
	X, Y int
}

// Add returns the component-wise sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{p.X + o.X, p.Y + o.Y}
}

// Sub returns the component-wise difference of two positions.
func (p Position) Sub(o Position) Position {
	return Position{p.X - o.X, p.Y - o.Y}
}

// Size is a non-negative cell extent.
type Size struct {
	Width, Height int
}

// Area returns Width*Height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Rectangle is a Position/Size pair, half-open on the high side:
// a cell at (x,y) is inside iff Start.X <= x < Start.X+Size.Width and
// Start.Y <= y < Start.Y+Size.Height.
type Rectangle struct {
	Start Position
	Size  Size
}

// NewRectangle builds a Rectangle from a start position and size.
func NewRectangle(start Position, size Size) Rectangle {
	return Rectangle{Start: start, Size: size}
}

// Right is the exclusive upper-x bound.
func (r Rectangle) Right() int { return r.Start.X + r.Size.Width }

// Bottom is the exclusive upper-y bound.
func (r Rectangle) Bottom() int { return r.Start.Y + r.Size.Height }

// Contains reports whether pos falls within the half-open rectangle.
func (r Rectangle) Contains(pos Position) bool {
	return pos.X >= r.Start.X && pos.X < r.Right() &&
		pos.Y >= r.Start.Y && pos.Y < r.Bottom()
}

// Intersect returns the overlapping rectangle, which may have zero area.
func (r Rectangle) Intersect(o Rectangle) Rectangle {
	x0, y0 := max(r.Start.X, o.Start.X), max(r.Start.Y, o.Start.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rectangle{Start: Position{x0, y0}, Size: Size{x1 - x0, y1 - y0}}
}
