package icy

// AttrFlag packs the boolean/enum display attributes of a TextAttribute
// into a single u16, matching the binary format's packed `attr` field.
type AttrFlag uint16

const (
	AttrBold AttrFlag = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline       // single underline
	AttrDoubleUnderline // double underline
	AttrBlink           // slow blink
	AttrFastBlink
	AttrInverse
	AttrConcealed
	AttrCrossedOut
	AttrOverlined
	AttrProtected
	AttrInvisible
	// AttrShortData is not a display attribute: it is a codec bit the
	// binary format (format/icydraw) sets on the wire to indicate the
	// compact 1-byte ch/fg/bg/font_page encoding of a cell. It is
	// stripped before the attribute is handed back to callers.
	AttrShortData
)

// Visible reports whether a, applied to a character, leaves it visible.
// Invisible characters compare equal regardless of color.
func (a AttrFlag) Visible() bool { return a&AttrInvisible == 0 }

// TextAttribute is the full display attribute set for one cell: a pair of
// Colors, a font page selector and the packed boolean/enum attribute bits.
type TextAttribute struct {
	Foreground Color
	Background Color
	FontPage   uint8
	Attr       AttrFlag
}

// DefaultAttribute is the attribute a fresh Caret starts with: default
// foreground/background palette slots, no style bits set.
var DefaultAttribute = TextAttribute{
	Foreground: PaletteIndex(7),
	Background: PaletteIndex(0),
}

// IsVisible reports whether this attribute's INVISIBLE bit is clear.
func (a TextAttribute) IsVisible() bool { return a.Attr.Visible() }

// WithAttr returns a copy of a with the given flag set (on) or cleared (off).
func (a TextAttribute) WithAttr(flag AttrFlag, on bool) TextAttribute {
	if on {
		a.Attr |= flag
	} else {
		a.Attr &^= flag
	}
	return a
}

// AttributedChar pairs a rune with its display attribute. The zero value
// is not automatically invisible; use Invisible() for the distinguished
// empty cell.
type AttributedChar struct {
	Ch        rune
	Attribute TextAttribute
}

// Invisible returns the distinguished empty cell used for out-of-range
// reads and as the implicit fill value of short lines.
func Invisible() AttributedChar {
	return AttributedChar{Ch: ' ', Attribute: TextAttribute{Attr: AttrInvisible}}
}

// IsVisible reports whether this cell paints anything.
func (c AttributedChar) IsVisible() bool { return c.Attribute.IsVisible() }

// Equal compares two cells for the purposes of undo round-trip and
// property tests: invisible cells are equal regardless of their color or
// rune payload.
func (c AttributedChar) Equal(o AttributedChar) bool {
	if !c.IsVisible() && !o.IsVisible() {
		return true
	}
	return c == o
}

// Line is an ordered run of cells. It may be shorter than its owning
// layer's width; missing trailing cells are implicitly Invisible().
type Line []AttributedChar

// CharAt returns the cell at x, or Invisible() if x is outside the
// populated prefix of the line.
func (l Line) CharAt(x int) AttributedChar {
	if x < 0 || x >= len(l) {
		return Invisible()
	}
	return l[x]
}

// SetChar writes ch at x, growing the line with invisible cells as needed.
func (l *Line) SetChar(x int, ch AttributedChar) {
	if x < 0 {
		return
	}
	if x >= len(*l) {
		grown := make(Line, x+1)
		copy(grown, *l)
		for i := len(*l); i < x; i++ {
			grown[i] = Invisible()
		}
		*l = grown
	}
	(*l)[x] = ch
}

// Clone returns an independent copy of the line.
func (l Line) Clone() Line {
	return append(Line(nil), l...)
}
