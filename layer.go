package icy

// Role distinguishes a drawing plane's purpose.
type Role int

const (
	RoleNormal Role = iota
	RoleImage
	RolePastePreview
	RolePasteImage
)

// Mode controls which part of a composited cell a layer contributes.
type Mode int

const (
	ModeNormal     Mode = iota // contributes glyph and attribute
	ModeChars                  // contributes glyph only
	ModeAttributes              // contributes attribute only
)

// Properties holds the layer flags the binary format and undo engine both
// need to snapshot together.
type Properties struct {
	Title              string
	Visible            bool
	PositionLocked     bool
	EditLocked         bool
	HasAlpha           bool
	AlphaLocked        bool
	Mode               Mode
	HasTint            bool
	Tint               RGB
}

// DefaultProperties returns a fresh, visible, unlocked layer's properties.
func DefaultProperties(title string) Properties {
	return Properties{Title: title, Visible: true, Mode: ModeNormal}
}

// Clone returns an independent copy.
func (p Properties) Clone() Properties { return p }

// Sixel is pixel-graphics payload embedded in an Image-role layer,
// corresponding to a DCS sixel sequence captured by a parser dialect.
type Sixel struct {
	Width, Height           int
	VerticalScale           int
	HorizontalScale         int
	PictureData             []byte
}

// Layer is one drawing plane inside a Buffer. Index 0 composites on the
// bottom; the topmost layer paints last.
type Layer struct {
	Properties       Properties
	Role             Role
	Offset           Position
	size             Size
	DefaultFontPage  uint8
	Transparency     uint8
	Lines            []Line
	Sixels           []Sixel
}

// NewLayer creates a visible Normal layer of the given size, with no
// populated lines yet (all rows implicitly invisible until written).
func NewLayer(title string, size Size) *Layer {
	return &Layer{
		Properties: DefaultProperties(title),
		Role:       RoleNormal,
		size:       size,
	}
}

// Size returns the layer's declared extent. Lines may be shorter
// (never longer than size.Height, possibly shorter).
func (l *Layer) Size() Size { return l.size }

// GetLineCount returns the number of populated rows.
func (l *Layer) GetLineCount() int { return len(l.Lines) }

// CharAt returns the cell at pos local to this layer (not accounting for
// Offset), or Invisible() if pos is out of range.
func (l *Layer) CharAt(pos Position) AttributedChar {
	if pos.X < 0 || pos.Y < 0 || pos.X >= l.size.Width || pos.Y >= l.size.Height {
		return Invisible()
	}
	if pos.Y >= len(l.Lines) {
		return Invisible()
	}
	return l.Lines[pos.Y].CharAt(pos.X)
}

// SetChar writes ch at pos, growing the line table as needed. Out-of-range
// writes are ignored.
func (l *Layer) SetChar(pos Position, ch AttributedChar) {
	if pos.X < 0 || pos.Y < 0 || pos.X >= l.size.Width || pos.Y >= l.size.Height {
		return
	}
	for len(l.Lines) <= pos.Y {
		l.Lines = append(l.Lines, nil)
	}
	l.Lines[pos.Y].SetChar(pos.X, ch)
}

// SwapChar exchanges the cells at p1 and p2.
func (l *Layer) SwapChar(p1, p2 Position) {
	c1, c2 := l.CharAt(p1), l.CharAt(p2)
	l.SetChar(p1, c2)
	l.SetChar(p2, c1)
}

// Stamp pastes other onto l at pos, honoring transparency: invisible
// source cells never overwrite, so the destination keeps its own cell
// there; every visible source cell within range overwrites.
func (l *Layer) Stamp(pos Position, other *Layer) {
	for y := 0; y < other.size.Height; y++ {
		for x := 0; x < other.size.Width; x++ {
			src := other.CharAt(Position{X: x, Y: y})
			if !src.IsVisible() {
				continue
			}
			l.SetChar(Position{X: pos.X + x, Y: pos.Y + y}, src)
		}
	}
}

// SetSize truncates or extends the layer, padding new rows/columns with
// invisible cells.
func (l *Layer) SetSize(newSize Size) {
	l.size = newSize
	if len(l.Lines) > newSize.Height {
		l.Lines = l.Lines[:newSize.Height]
	}
	for i := range l.Lines {
		if len(l.Lines[i]) > newSize.Width {
			l.Lines[i] = l.Lines[i][:newSize.Width]
		}
	}
}

// SetWidth changes only the width, preserving height.
func (l *Layer) SetWidth(w int) { l.SetSize(Size{Width: w, Height: l.size.Height}) }

// SetHeight changes only the height, preserving width.
func (l *Layer) SetHeight(h int) { l.SetSize(Size{Width: l.size.Width, Height: h}) }

// SetOffset repositions the layer within the buffer's coordinate space.
func (l *Layer) SetOffset(pos Position) { l.Offset = pos }

// Clone returns a deep, independent copy of the layer, used by undo
// snapshots (AddLayer/RemoveLayer/Paste/Crop) and MergeLayerDown.
func (l *Layer) Clone() *Layer {
	c := &Layer{
		Properties:      l.Properties.Clone(),
		Role:            l.Role,
		Offset:          l.Offset,
		size:            l.size,
		DefaultFontPage: l.DefaultFontPage,
		Transparency:    l.Transparency,
		Lines:           make([]Line, len(l.Lines)),
		Sixels:          append([]Sixel(nil), l.Sixels...),
	}
	for i, ln := range l.Lines {
		c.Lines[i] = ln.Clone()
	}
	return c
}

// IsLineEmpty reports whether row y has no visible cells.
func (l *Layer) IsLineEmpty(y int) bool {
	if y < 0 || y >= len(l.Lines) {
		return true
	}
	for _, c := range l.Lines[y] {
		if c.IsVisible() {
			return false
		}
	}
	return true
}

// InsertRow inserts a blank row at y, shifting rows below it down and
// dropping any row that would fall off the bottom.
func (l *Layer) InsertRow(y int, line Line) {
	if y < 0 || y > l.size.Height {
		return
	}
	for len(l.Lines) < y {
		l.Lines = append(l.Lines, nil)
	}
	l.Lines = append(l.Lines, nil)
	copy(l.Lines[y+1:], l.Lines[y:])
	l.Lines[y] = line
	if len(l.Lines) > l.size.Height {
		l.Lines = l.Lines[:l.size.Height]
	}
}

// DeleteRow removes row y, shifting rows below it up and returning the
// removed Line (for undo capture).
func (l *Layer) DeleteRow(y int) Line {
	if y < 0 || y >= len(l.Lines) {
		return nil
	}
	removed := l.Lines[y]
	l.Lines = append(l.Lines[:y], l.Lines[y+1:]...)
	return removed
}

// InsertColumn inserts a blank column at x across every row.
func (l *Layer) InsertColumn(x int) {
	for i := range l.Lines {
		line := l.Lines[i]
		if x >= len(line) {
			continue
		}
		grown := make(Line, len(line)+1)
		copy(grown, line[:x])
		grown[x] = Invisible()
		copy(grown[x+1:], line[x:])
		l.Lines[i] = grown
	}
}

// DeleteColumn removes column x from every row, returning the removed
// cells (for undo capture), one per populated row.
func (l *Layer) DeleteColumn(x int) []AttributedChar {
	removed := make([]AttributedChar, len(l.Lines))
	for i := range l.Lines {
		line := l.Lines[i]
		if x >= len(line) {
			removed[i] = Invisible()
			continue
		}
		removed[i] = line[x]
		l.Lines[i] = append(line[:x], line[x+1:]...)
	}
	return removed
}
