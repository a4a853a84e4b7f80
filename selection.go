package icy

// SelectionShape distinguishes a line-oriented selection (whole rows
// between anchor and lead) from a rectangular block selection.
type SelectionShape int

const (
	SelectionLines SelectionShape = iota
	SelectionRectangle
)

// AddType controls how a Selection combines with the existing SelectionMask.
type AddType int

const (
	AddDefault AddType = iota
	AddAdd
	AddSubtract
)

// Selection is the current drag/keyboard selection: an anchor/lead pair
// plus how it should be combined into the SelectionMask.
type Selection struct {
	Anchor  Position
	Lead    Position
	Shape   SelectionShape
	AddType AddType
	Locked  bool
}

// NewSelection starts a selection at pos with both endpoints equal.
func NewSelection(pos Position, shape SelectionShape) *Selection {
	return &Selection{Anchor: pos, Lead: pos, Shape: shape}
}

// normalizedRect returns the selection's bounding rectangle with Start
// being the smaller of Anchor/Lead on each axis, half-open high.
func (s *Selection) normalizedRect() Rectangle {
	x0, x1 := s.Anchor.X, s.Lead.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := s.Anchor.Y, s.Lead.Y
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle{Start: Position{x0, y0}, Size: Size{Width: x1 - x0 + 1, Height: y1 - y0 + 1}}
}

// Rectangle returns the cell range the selection currently covers. For
// SelectionLines, X spans the full declared width.
func (s *Selection) Rectangle(bufferWidth int) Rectangle {
	r := s.normalizedRect()
	if s.Shape == SelectionLines {
		r.Start.X = 0
		r.Size.Width = bufferWidth
	}
	return r
}

// SelectionMask is a sparse set of selected cells, independent of any
// currently dragging Selection.
type SelectionMask struct {
	cells map[Position]bool
	size  Size // cached bounding size, grown on add; subtract leaves it unchanged
}

// NewSelectionMask returns an empty mask.
func NewSelectionMask() *SelectionMask {
	return &SelectionMask{cells: make(map[Position]bool)}
}

// IsEmpty reports whether no cell is selected.
func (m *SelectionMask) IsEmpty() bool { return len(m.cells) == 0 }

// IsSelected reports whether pos is selected.
func (m *SelectionMask) IsSelected(pos Position) bool { return m.cells[pos] }

// Clear empties the mask.
func (m *SelectionMask) Clear() {
	m.cells = make(map[Position]bool)
	m.size = Size{}
}

// AddRectangle marks every cell in r as selected, and grows the cached size.
func (m *SelectionMask) AddRectangle(r Rectangle) {
	for y := r.Start.Y; y < r.Bottom(); y++ {
		for x := r.Start.X; x < r.Right(); x++ {
			m.cells[Position{x, y}] = true
		}
	}
	if r.Right() > m.size.Width {
		m.size.Width = r.Right()
	}
	if r.Bottom() > m.size.Height {
		m.size.Height = r.Bottom()
	}
}

// SubtractRectangle unmarks every cell in r.
func (m *SelectionMask) SubtractRectangle(r Rectangle) {
	for y := r.Start.Y; y < r.Bottom(); y++ {
		for x := r.Start.X; x < r.Right(); x++ {
			delete(m.cells, Position{x, y})
		}
	}
}

// Apply combines sel into the mask according to its AddType.
func (m *SelectionMask) Apply(sel *Selection, bufferWidth int) {
	r := sel.Rectangle(bufferWidth)
	switch sel.AddType {
	case AddSubtract:
		m.SubtractRectangle(r)
	default: // AddDefault, AddAdd both add for a freshly closed selection
		m.AddRectangle(r)
	}
}

// Inverse returns a new mask selecting exactly the cells of bounds not
// currently selected (InverseSelection undo op).
func (m *SelectionMask) Inverse(bounds Rectangle) *SelectionMask {
	inv := NewSelectionMask()
	for y := bounds.Start.Y; y < bounds.Bottom(); y++ {
		for x := bounds.Start.X; x < bounds.Right(); x++ {
			p := Position{x, y}
			if !m.cells[p] {
				inv.cells[p] = true
			}
		}
	}
	inv.size = bounds.Size
	return inv
}

// Clone returns an independent copy, used by undo snapshots.
func (m *SelectionMask) Clone() *SelectionMask {
	c := &SelectionMask{cells: make(map[Position]bool, len(m.cells)), size: m.size}
	for k, v := range m.cells {
		c.cells[k] = v
	}
	return c
}
