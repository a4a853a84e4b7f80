package icydraw

import "encoding/binary"

// headerSize is the fixed 19-byte encoding of an ICED chunk.
const headerSize = 19

// formatVersion is the container version this package writes; readers
// accept any version but treat an unknown one as a forward-compatible
// best-effort parse (all fields after Version are fixed-width either way).
const formatVersion = 1

// header mirrors the ICED chunk layout: u16 version, u32 type (reserved),
// u16 buffer_type, u8 ice_mode/palette_mode/font_mode, u32 width/height.
type header struct {
	Version     uint16
	Type        uint32
	BufferType  uint16
	IceMode     uint8
	PaletteMode uint8
	FontMode    uint8
	Width       uint32
	Height      uint32
}

func (h header) encode() []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint16(buf[0:2], h.Version)
	binary.LittleEndian.PutUint32(buf[2:6], h.Type)
	binary.LittleEndian.PutUint16(buf[6:8], h.BufferType)
	buf[8] = h.IceMode
	buf[9] = h.PaletteMode
	buf[10] = h.FontMode
	binary.LittleEndian.PutUint32(buf[11:15], h.Width)
	binary.LittleEndian.PutUint32(buf[15:19], h.Height)
	return buf
}

func decodeHeader(b []byte) (header, error) {
	if len(b) < headerSize {
		return header{}, newLoadingError("ICED", "header truncated")
	}
	return header{
		Version:     binary.LittleEndian.Uint16(b[0:2]),
		Type:        binary.LittleEndian.Uint32(b[2:6]),
		BufferType:  binary.LittleEndian.Uint16(b[6:8]),
		IceMode:     b[8],
		PaletteMode: b[9],
		FontMode:    b[10],
		Width:       binary.LittleEndian.Uint32(b[11:15]),
		Height:      binary.LittleEndian.Uint32(b[15:19]),
	}, nil
}
