package icydraw

import (
	"bytes"
	"encoding/binary"
	"io"

	icy "github.com/icy-engine/icy-core"
)

// encodePalette writes p in "ICE format": a mode byte, a u16 entry count,
// then count RGB triples.
func encodePalette(p *icy.Palette) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(p.Mode()))
	entries := p.Entries()
	putU16(&buf, uint16(len(entries)))
	for _, rgb := range entries {
		buf.WriteByte(rgb.R)
		buf.WriteByte(rgb.G)
		buf.WriteByte(rgb.B)
	}
	return buf.Bytes()
}

// decodePalette reverses encodePalette.
func decodePalette(data []byte) (*icy.Palette, error) {
	r := bytes.NewReader(data)
	modeByte, err := r.ReadByte()
	if err != nil {
		return nil, newLoadingError("PALETTE", "reading mode: "+err.Error())
	}
	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, newLoadingError("PALETTE", "reading entry count: "+err.Error())
	}
	p := icy.NewEmptyPalette(icy.PaletteMode(modeByte))
	var rgb [3]byte
	for i := 0; i < int(count); i++ {
		if _, err := io.ReadFull(r, rgb[:]); err != nil {
			return nil, newLoadingError("PALETTE", "truncated entry list: "+err.Error())
		}
		p.InsertColorRGB(rgb[0], rgb[1], rgb[2])
	}
	return p, nil
}
