package icydraw

import (
	"bytes"
	"encoding/binary"
	"io"

	icy "github.com/icy-engine/icy-core"
)

// layerFlag bits pack Properties booleans into the per-layer u32 flags
// field.
const (
	layerFlagVisible = 1 << iota
	layerFlagPositionLocked
	layerFlagEditLocked
	layerFlagHasAlpha
	layerFlagAlphaLocked
)

// sentinelInvisible marks a single default/empty cell with no body.
// sentinelRowEnd marks the end of a row's populated cells: it combines
// AttrInvisible with AttrShortData, a combination no real cell ever
// produces (a visible short-data cell always has AttrInvisible clear; a
// plain invisible cell never sets AttrShortData), so it is unambiguous.
const (
	sentinelInvisible = uint16(icy.AttrInvisible)
	sentinelRowEnd    = uint16(icy.AttrInvisible) | uint16(icy.AttrShortData)
)

func putU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func putString(buf *bytes.Buffer, s string) {
	putU32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// encodeCell writes one cell using the short/full/invisible form the
// wire format uses.
func encodeCell(buf *bytes.Buffer, c icy.AttributedChar) {
	if !c.IsVisible() && c.Attribute.Attr == icy.AttrInvisible {
		putU16(buf, sentinelInvisible)
		return
	}
	fg, fgOK := shortColor(c.Attribute.Foreground)
	bg, bgOK := shortColor(c.Attribute.Background)
	if fgOK && bgOK && c.Ch <= 0xFF {
		putU16(buf, uint16(c.Attribute.Attr)|uint16(icy.AttrShortData))
		buf.WriteByte(byte(c.Ch))
		buf.WriteByte(fg)
		buf.WriteByte(bg)
		buf.WriteByte(c.Attribute.FontPage)
		return
	}
	putU16(buf, uint16(c.Attribute.Attr)&^uint16(icy.AttrShortData))
	putU32(buf, uint32(c.Ch))
	putU32(buf, c.Attribute.Foreground.Raw())
	putU32(buf, c.Attribute.Background.Raw())
	putU16(buf, uint16(c.Attribute.FontPage))
}

func shortColor(c icy.Color) (byte, bool) {
	if c.IsTrueColor() {
		return 0, false
	}
	idx := c.Index()
	if idx > 0xFF {
		return 0, false
	}
	return byte(idx), true
}

func encodeRow(buf *bytes.Buffer, line icy.Line) {
	for _, c := range line {
		encodeCell(buf, c)
	}
	putU16(buf, sentinelRowEnd)
}

func decodeRow(r *bytes.Reader) (icy.Line, error) {
	var line icy.Line
	for {
		var attrRaw uint16
		if err := binary.Read(r, binary.LittleEndian, &attrRaw); err != nil {
			return nil, err
		}
		if attrRaw == sentinelRowEnd {
			return line, nil
		}
		if attrRaw == sentinelInvisible {
			line = append(line, icy.Invisible())
			continue
		}
		attr := icy.AttrFlag(attrRaw)
		if attr&icy.AttrShortData != 0 {
			var body [4]byte
			if _, err := io.ReadFull(r, body[:]); err != nil {
				return nil, err
			}
			line = append(line, icy.AttributedChar{
				Ch: rune(body[0]),
				Attribute: icy.TextAttribute{
					Foreground: icy.PaletteIndex(uint32(body[1])),
					Background: icy.PaletteIndex(uint32(body[2])),
					FontPage:   body[3],
					Attr:       attr &^ icy.AttrShortData,
				},
			})
			continue
		}
		var ch, fg, bg uint32
		var fp uint16
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &fg); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &bg); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &fp); err != nil {
			return nil, err
		}
		line = append(line, icy.AttributedChar{
			Ch: rune(ch),
			Attribute: icy.TextAttribute{
				Foreground: icy.ColorFromRaw(fg),
				Background: icy.ColorFromRaw(bg),
				FontPage:   uint8(fp),
				Attr:       attr,
			},
		})
	}
}

// encodeLayer serializes one layer into the LAYER_<i> body layout:
// title, role, reserved bytes, mode, tint, flags, transparency,
// offset, size, default font page, body length, then either sixel bytes
// (Image role) or row-major cell data (Normal role).
func encodeLayer(l *icy.Layer) []byte {
	var body bytes.Buffer
	if l.Role == icy.RoleImage {
		for _, sx := range l.Sixels {
			putU32(&body, uint32(sx.Width))
			putU32(&body, uint32(sx.Height))
			putU32(&body, uint32(sx.VerticalScale))
			putU32(&body, uint32(sx.HorizontalScale))
			putU32(&body, uint32(len(sx.PictureData)))
			body.Write(sx.PictureData)
		}
	} else {
		size := l.Size()
		for y := 0; y < size.Height; y++ {
			var line icy.Line
			if y < len(l.Lines) {
				line = l.Lines[y]
			}
			encodeRow(&body, line)
		}
	}

	var out bytes.Buffer
	putString(&out, l.Properties.Title)
	out.WriteByte(byte(l.Role))
	out.Write(make([]byte, 4)) // reserved
	out.WriteByte(byte(l.Properties.Mode))
	if l.Properties.HasTint {
		out.WriteByte(l.Properties.Tint.R)
		out.WriteByte(l.Properties.Tint.G)
		out.WriteByte(l.Properties.Tint.B)
		out.WriteByte(255)
	} else {
		out.Write([]byte{0, 0, 0, 0})
	}
	var flags uint32
	if l.Properties.Visible {
		flags |= layerFlagVisible
	}
	if l.Properties.PositionLocked {
		flags |= layerFlagPositionLocked
	}
	if l.Properties.EditLocked {
		flags |= layerFlagEditLocked
	}
	if l.Properties.HasAlpha {
		flags |= layerFlagHasAlpha
	}
	if l.Properties.AlphaLocked {
		flags |= layerFlagAlphaLocked
	}
	putU32(&out, flags)
	out.WriteByte(l.Transparency)
	putU32(&out, uint32(int32(l.Offset.X)))
	putU32(&out, uint32(int32(l.Offset.Y)))
	putU32(&out, uint32(int32(l.Size().Width)))
	putU32(&out, uint32(int32(l.Size().Height)))
	putU16(&out, uint16(l.DefaultFontPage))
	putU64(&out, uint64(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// decodeLayer parses one LAYER_<i> blob (already reassembled from any
// continuation chunks) back into an *icy.Layer.
func decodeLayer(data []byte) (*icy.Layer, error) {
	r := bytes.NewReader(data)
	title, err := readString(r)
	if err != nil {
		return nil, newLoadingError("LAYER", "reading title: "+err.Error())
	}
	roleByte, err := r.ReadByte()
	if err != nil {
		return nil, newLoadingError("LAYER", "reading role: "+err.Error())
	}
	if _, err := r.Seek(4, io.SeekCurrent); err != nil {
		return nil, newLoadingError("LAYER", "skipping reserved bytes: "+err.Error())
	}
	modeByte, err := r.ReadByte()
	if err != nil {
		return nil, newLoadingError("LAYER", "reading mode: "+err.Error())
	}
	var tint [4]byte
	if _, err := io.ReadFull(r, tint[:]); err != nil {
		return nil, newLoadingError("LAYER", "reading tint: "+err.Error())
	}
	var flags uint32
	if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
		return nil, newLoadingError("LAYER", "reading flags: "+err.Error())
	}
	transparency, err := r.ReadByte()
	if err != nil {
		return nil, newLoadingError("LAYER", "reading transparency: "+err.Error())
	}
	var offX, offY, w, h int32
	for _, p := range []*int32{&offX, &offY, &w, &h} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return nil, newLoadingError("LAYER", "reading geometry: "+err.Error())
		}
	}
	var fontPage uint16
	if err := binary.Read(r, binary.LittleEndian, &fontPage); err != nil {
		return nil, newLoadingError("LAYER", "reading font page: "+err.Error())
	}
	var bodyLen uint64
	if err := binary.Read(r, binary.LittleEndian, &bodyLen); err != nil {
		return nil, newLoadingError("LAYER", "reading body length: "+err.Error())
	}

	l := icy.NewLayer(title, icy.Size{Width: int(w), Height: int(h)})
	l.Role = icy.Role(roleByte)
	l.Offset = icy.Position{X: int(offX), Y: int(offY)}
	l.DefaultFontPage = uint8(fontPage)
	l.Transparency = transparency
	l.Properties.Title = title
	l.Properties.Mode = icy.Mode(modeByte)
	l.Properties.Visible = flags&layerFlagVisible != 0
	l.Properties.PositionLocked = flags&layerFlagPositionLocked != 0
	l.Properties.EditLocked = flags&layerFlagEditLocked != 0
	l.Properties.HasAlpha = flags&layerFlagHasAlpha != 0
	l.Properties.AlphaLocked = flags&layerFlagAlphaLocked != 0
	if tint[3] != 0 {
		l.Properties.HasTint = true
		l.Properties.Tint = icy.RGB{R: tint[0], G: tint[1], B: tint[2]}
	}

	if l.Role == icy.RoleImage {
		for r.Len() > 0 {
			var sx icy.Sixel
			var sw, sh, vs, hs, plen uint32
			if err := binary.Read(r, binary.LittleEndian, &sw); err != nil {
				break
			}
			binary.Read(r, binary.LittleEndian, &sh)
			binary.Read(r, binary.LittleEndian, &vs)
			binary.Read(r, binary.LittleEndian, &hs)
			binary.Read(r, binary.LittleEndian, &plen)
			sx.Width, sx.Height, sx.VerticalScale, sx.HorizontalScale = int(sw), int(sh), int(vs), int(hs)
			sx.PictureData = make([]byte, plen)
			if _, err := io.ReadFull(r, sx.PictureData); err != nil {
				return nil, newLoadingError("LAYER", "truncated sixel payload: "+err.Error())
			}
			l.Sixels = append(l.Sixels, sx)
		}
		return l, nil
	}

	for y := 0; y < int(h); y++ {
		if r.Len() == 0 {
			break
		}
		line, err := decodeRow(r)
		if err != nil {
			return nil, newLoadingError("LAYER", "decoding row: "+err.Error())
		}
		l.Lines = append(l.Lines, line)
	}
	return l, nil
}
