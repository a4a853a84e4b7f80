package icy

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BitFont is a named raster font: a fixed cell size and one bitmap per
// codepoint. Font page 0 is primary; pages 1..N are loaded on demand
// (SAUCE font-name resolution, embedded PSF2 bytes, or the ANSI
// font-page registry).
type BitFont struct {
	name          string
	size          Size // cell width/height in pixels
	glyphs        map[rune][]byte
	bytesPerGlyph int
}

// NewBitFont creates an empty font of the given cell size.
func NewBitFont(name string, size Size) *BitFont {
	return &BitFont{
		name:          name,
		size:          size,
		glyphs:        make(map[rune][]byte),
		bytesPerGlyph: (size.Width + 7) / 8 * size.Height,
	}
}

// Name returns the font's display name (often a SAUCE TInfoS value).
func (f *BitFont) Name() string { return f.name }

// Size returns the cell pixel dimensions.
func (f *BitFont) Size() Size { return f.size }

// Glyph returns the packed 1-bpp bitmap for r, row-major, MSB-first, or
// nil if the glyph is not present (the renderer should fall back to a
// blank cell).
func (f *BitFont) Glyph(r rune) []byte { return f.glyphs[r] }

// SetGlyph installs a packed 1-bpp bitmap for r. The slice must be
// exactly bytesPerGlyph long.
func (f *BitFont) SetGlyph(r rune, bits []byte) {
	buf := make([]byte, f.bytesPerGlyph)
	copy(buf, bits)
	f.glyphs[r] = buf
}

// Pixel reports whether the glyph for r has its pixel (x,y) set.
func (f *BitFont) Pixel(r rune, x, y int) bool {
	g := f.glyphs[r]
	if g == nil || x < 0 || y < 0 || x >= f.size.Width || y >= f.size.Height {
		return false
	}
	stride := (f.size.Width + 7) / 8
	byteIdx := y*stride + x/8
	if byteIdx >= len(g) {
		return false
	}
	bit := 7 - uint(x%8)
	return g[byteIdx]&(1<<bit) != 0
}

// ToPSF2Bytes encodes the font as a PSF2 font file, the wire format the
// binary container (format/icydraw) embeds per FONT_<slot> chunk.
func (f *BitFont) ToPSF2Bytes() []byte {
	var buf bytes.Buffer
	hdr := psf2Header{
		Magic:          psf2Magic,
		Version:        0,
		HeaderSize:     32,
		Flags:          0,
		NumGlyphs:      uint32(len(f.glyphs)),
		BytesPerGlyph:  uint32(f.bytesPerGlyph),
		Height:         uint32(f.size.Height),
		Width:          uint32(f.size.Width),
	}
	writePSF2Header(&buf, hdr)
	// Glyphs are written in codepoint order for determinism.
	keys := sortedRunes(f.glyphs)
	for _, r := range keys {
		buf.Write(f.glyphs[r])
	}
	return buf.Bytes()
}

// BitFontFromBytes decodes a PSF2 font file into a named BitFont, as read
// from a FONT_<slot> chunk.
func BitFontFromBytes(name string, data []byte) (*BitFont, error) {
	hdr, body, err := readPSF2Header(data)
	if err != nil {
		return nil, err
	}
	f := NewBitFont(name, Size{Width: int(hdr.Width), Height: int(hdr.Height)})
	f.bytesPerGlyph = int(hdr.BytesPerGlyph)
	if f.bytesPerGlyph == 0 {
		f.bytesPerGlyph = (f.size.Width + 7) / 8 * f.size.Height
	}
	for i := uint32(0); i < hdr.NumGlyphs; i++ {
		off := int(i) * f.bytesPerGlyph
		if off+f.bytesPerGlyph > len(body) {
			break
		}
		f.glyphs[rune(i)] = append([]byte(nil), body[off:off+f.bytesPerGlyph]...)
	}
	return f, nil
}

const psf2Magic = uint32(0x864ab572)

type psf2Header struct {
	Magic         uint32
	Version       uint32
	HeaderSize    uint32
	Flags         uint32
	NumGlyphs     uint32
	BytesPerGlyph uint32
	Height        uint32
	Width         uint32
}

func writePSF2Header(buf *bytes.Buffer, h psf2Header) {
	var le [4]byte
	put := func(v uint32) {
		le[0], le[1], le[2], le[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
		buf.Write(le[:])
	}
	put(h.Magic)
	put(h.Version)
	put(h.HeaderSize)
	put(h.Flags)
	put(h.NumGlyphs)
	put(h.BytesPerGlyph)
	put(h.Height)
	put(h.Width)
}

func readPSF2Header(data []byte) (psf2Header, []byte, error) {
	if len(data) < 32 {
		return psf2Header{}, nil, fmt.Errorf("icy: psf2 header truncated (%d bytes)", len(data))
	}
	get := func(o int) uint32 {
		return uint32(data[o]) | uint32(data[o+1])<<8 | uint32(data[o+2])<<16 | uint32(data[o+3])<<24
	}
	h := psf2Header{
		Magic:         get(0),
		Version:       get(4),
		HeaderSize:    get(8),
		Flags:         get(12),
		NumGlyphs:     get(16),
		BytesPerGlyph: get(20),
		Height:        get(24),
		Width:         get(28),
	}
	if h.Magic != psf2Magic {
		return psf2Header{}, nil, fmt.Errorf("icy: not a psf2 font (bad magic %#x)", h.Magic)
	}
	hs := int(h.HeaderSize)
	if hs < 32 || hs > len(data) {
		hs = 32
	}
	return h, data[hs:], nil
}

func sortedRunes(m map[rune][]byte) []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	// insertion sort is fine: font tables are at most a few hundred glyphs
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// BuiltinFallbackFont rasterizes golang.org/x/image's basicfont.Face7x13
// into a BitFont. It is the font page used when a buffer carries no SAUCE
// font name, no embedded PSF2 bytes and no explicit ANSI font-page
// selection.
func BuiltinFallbackFont() *BitFont {
	face := basicfont.Face7x13
	cell := Size{Width: 7, Height: 13}
	f := NewBitFont("IBM VGA fallback (Go basicfont 7x13)", cell)
	for r := rune(0x20); r < 0x7F; r++ {
		bits := rasterizeGlyph(face, r, cell)
		f.SetGlyph(r, bits)
	}
	return f
}

// rasterizeGlyph renders r with face into a packed 1-bpp, row-major,
// MSB-first bitmap of the given cell size, using golang.org/x/image/font's
// glyph-drawing primitives.
func rasterizeGlyph(face font.Face, r rune, cell Size) []byte {
	stride := (cell.Width + 7) / 8
	bits := make([]byte, stride*cell.Height)
	dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, cell.Height-3), r)
	if !ok {
		return bits
	}
	for y := 0; y < cell.Height; y++ {
		for x := 0; x < cell.Width; x++ {
			sx, sy := x-dr.Min.X, y-dr.Min.Y
			if sx < 0 || sy < 0 || sx >= dr.Dx() || sy >= dr.Dy() {
				continue
			}
			_, _, _, a := mask.At(maskp.X+sx, maskp.Y+sy).RGBA()
			if a == 0 {
				continue
			}
			byteIdx := y*stride + x/8
			bit := 7 - uint(x%8)
			bits[byteIdx] |= 1 << bit
		}
	}
	return bits
}
