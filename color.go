// Package icy implements the core text-buffer model, undo subsystem and
// rendering adapter shared by every terminal-emulation/ANSI-art frontend.
//
// This package contains:
//   - Primitives (Position, Size, Rectangle) and color/palette handling
//   - Attributed characters, layers and the layered Buffer
//   - The undo/redo engine and EditState mutation API
//   - A pure rendering adapter (Buffer -> RGBA)
//
// Byte-stream parsers live in the parser/ sub-packages; the binary file
// format lives in format/icydraw. Host frontends (editors, terminal
// clients, scripting) are external collaborators, not part of this
// package.
package icy

// PaletteMode describes how the palette's entries are interpreted by a
// dialect/renderer.
type PaletteMode int

const (
	PaletteModeRGB     PaletteMode = iota // arbitrary 24-bit entries
	PaletteModeFixed16                    // the 16 fixed ANSI colors
	PaletteModeFree8                      // up to 8 freely assignable colors
	PaletteModeFree16                     // up to 16 freely assignable colors
	PaletteModeIce                        // ICE-mode 16/256 palette used by the binary format
)

// RGB is a resolved 24-bit color triple.
type RGB struct {
	R, G, B uint8
}

// ANSIColorsRGB is the standard 16-color ANSI palette (0-7 normal, 8-15 bright).
var ANSIColorsRGB = [16]RGB{
	{0x00, 0x00, 0x00}, {0xAA, 0x00, 0x00}, {0x00, 0xAA, 0x00}, {0xAA, 0x55, 0x00},
	{0x00, 0x00, 0xAA}, {0xAA, 0x00, 0xAA}, {0x00, 0xAA, 0xAA}, {0xAA, 0xAA, 0xAA},
	{0x55, 0x55, 0x55}, {0xFF, 0x55, 0x55}, {0x55, 0xFF, 0x55}, {0xFF, 0xFF, 0x55},
	{0x55, 0x55, 0xFF}, {0xFF, 0x55, 0xFF}, {0x55, 0xFF, 0xFF}, {0xFF, 0xFF, 0xFF},
}

// colorTrueColorBit marks a Color as carrying an inline RGB triple rather
// than referencing a Palette slot. This mirrors the packed-u32 encoding
// the binary format persists for TextAttribute foreground/background
// fields.
const colorTrueColorBit = uint32(1) << 31

// Color is a foreground/background reference: either a Palette index or
// an inline RGB truecolor value. It is stored as a single u32 so it
// round-trips byte-for-byte through the binary container.
type Color uint32

// PaletteIndex builds a Color referencing slot i of the active Palette.
func PaletteIndex(i uint32) Color {
	return Color(i &^ colorTrueColorBit)
}

// TrueColor builds an inline RGB Color that bypasses the palette.
func TrueColor(r, g, b uint8) Color {
	return Color(colorTrueColorBit | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// IsTrueColor reports whether this Color carries an inline RGB value.
func (c Color) IsTrueColor() bool { return uint32(c)&colorTrueColorBit != 0 }

// Index returns the palette slot this Color references. Only meaningful
// when IsTrueColor is false.
func (c Color) Index() uint32 { return uint32(c) &^ colorTrueColorBit }

// RGBValue returns the inline RGB triple. Only meaningful when IsTrueColor
// is true.
func (c Color) RGBValue() RGB {
	v := uint32(c) &^ colorTrueColorBit
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Resolve returns the concrete RGB this Color paints with, given the
// active palette. Out-of-range palette indices resolve to black.
func (c Color) Resolve(p *Palette) RGB {
	if c.IsTrueColor() {
		return c.RGBValue()
	}
	return p.At(int(c.Index()))
}

// Raw returns the packed u32 representation, used directly by the binary
// codec (format/icydraw) which persists foreground/background as u32.
func (c Color) Raw() uint32 { return uint32(c) }

// ColorFromRaw reconstructs a Color from its packed u32 representation.
func ColorFromRaw(v uint32) Color { return Color(v) }

// Palette is an ordered, insertion-deduplicated table of RGB entries plus
// a mode tag. Index 0 is conventionally the background color.
type Palette struct {
	mode    PaletteMode
	entries []RGB
	index   map[RGB]int
}

// NewPalette returns the default 16-color Fixed16 palette, matching the
// conventional ANSI color order used by every dialect in parser/.
func NewPalette() *Palette {
	p := &Palette{mode: PaletteModeFixed16, index: make(map[RGB]int, 16)}
	for _, rgb := range ANSIColorsRGB {
		p.InsertColorRGB(rgb.R, rgb.G, rgb.B)
	}
	return p
}

// NewEmptyPalette returns a palette with no entries, used by formats that
// build up their own table (e.g. a loaded PALETTE chunk).
func NewEmptyPalette(mode PaletteMode) *Palette {
	return &Palette{mode: mode, index: make(map[RGB]int)}
}

// Mode reports the palette's interpretation tag.
func (p *Palette) Mode() PaletteMode { return p.mode }

// SetMode changes the palette's interpretation tag without touching entries.
func (p *Palette) SetMode(m PaletteMode) { p.mode = m }

// Len returns the number of distinct entries.
func (p *Palette) Len() int { return len(p.entries) }

// At returns the RGB entry at index i, or black if out of range.
func (p *Palette) At(i int) RGB {
	if i < 0 || i >= len(p.entries) {
		return RGB{}
	}
	return p.entries[i]
}

// InsertColorRGB returns the existing index for (r,g,b) if present,
// otherwise appends a new entry and returns its index. Idempotent:
// repeated calls with the same triple never grow the palette.
func (p *Palette) InsertColorRGB(r, g, b uint8) int {
	rgb := RGB{r, g, b}
	if idx, ok := p.index[rgb]; ok {
		return idx
	}
	idx := len(p.entries)
	p.entries = append(p.entries, rgb)
	p.index[rgb] = idx
	return idx
}

// IsDefault reports whether this palette is exactly the default 16-color
// Fixed16 table, used by the binary format to skip writing a PALETTE chunk.
func (p *Palette) IsDefault() bool {
	if p.mode != PaletteModeFixed16 || len(p.entries) != 16 {
		return false
	}
	for i, rgb := range ANSIColorsRGB {
		if p.entries[i] != rgb {
			return false
		}
	}
	return true
}

// Clone returns a deep, independent copy of the palette.
func (p *Palette) Clone() *Palette {
	c := &Palette{
		mode:    p.mode,
		entries: append([]RGB(nil), p.entries...),
		index:   make(map[RGB]int, len(p.index)),
	}
	for k, v := range p.index {
		c.index[k] = v
	}
	return c
}

// Entries returns the raw entry slice (read-only use expected by callers).
func (p *Palette) Entries() []RGB { return p.entries }

// ReplaceEntries rebuilds the palette from an explicit entry list, used by
// format readers that load an on-disk palette wholesale.
func (p *Palette) ReplaceEntries(entries []RGB) {
	p.entries = append([]RGB(nil), entries...)
	p.index = make(map[RGB]int, len(entries))
	for i, rgb := range p.entries {
		if _, ok := p.index[rgb]; !ok {
			p.index[rgb] = i
		}
	}
}
