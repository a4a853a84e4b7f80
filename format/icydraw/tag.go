package icydraw

import (
	"bytes"
	"encoding/binary"
	"io"

	icy "github.com/icy-engine/icy-core"
)

// encodeTags writes the TAG chunk body: u16 count then repeated tag
// records.
func encodeTags(tags []icy.Tag) []byte {
	var buf bytes.Buffer
	putU16(&buf, uint16(len(tags)))
	for _, t := range tags {
		putString(&buf, t.Preview)
		putString(&buf, t.ReplacementValue)
		putU32(&buf, uint32(int32(t.Position.X)))
		putU32(&buf, uint32(int32(t.Position.Y)))
		putU32(&buf, uint32(int32(t.Length)))
		var flags byte
		if t.Enabled {
			flags |= 1
		}
		buf.WriteByte(flags)
		buf.WriteByte(byte(t.Alignment))
		buf.WriteByte(byte(t.Placement))
		buf.WriteByte(byte(t.Role))
		putU32(&buf, t.Attribute.Foreground.Raw())
		putU32(&buf, t.Attribute.Background.Raw())
		buf.WriteByte(t.Attribute.FontPage)
		putU16(&buf, uint16(t.Attribute.Attr))
	}
	return buf.Bytes()
}

// decodeTags reverses encodeTags.
func decodeTags(data []byte) ([]icy.Tag, error) {
	r := bytes.NewReader(data)
	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, newLoadingError("TAG", "reading count: "+err.Error())
	}
	tags := make([]icy.Tag, 0, count)
	for i := 0; i < int(count); i++ {
		preview, err := readString(r)
		if err != nil {
			return nil, newLoadingError("TAG", "reading preview: "+err.Error())
		}
		replacement, err := readString(r)
		if err != nil {
			return nil, newLoadingError("TAG", "reading replacement: "+err.Error())
		}
		var x, y, length int32
		for _, p := range []*int32{&x, &y, &length} {
			if err := binary.Read(r, binary.LittleEndian, p); err != nil {
				return nil, newLoadingError("TAG", "reading geometry: "+err.Error())
			}
		}
		var flags, alignment, placement, role byte
		for _, p := range []*byte{&flags, &alignment, &placement, &role} {
			b, err := r.ReadByte()
			if err != nil {
				return nil, newLoadingError("TAG", "reading flags: "+err.Error())
			}
			*p = b
		}
		var fg, bg uint32
		if err := binary.Read(r, binary.LittleEndian, &fg); err != nil {
			return nil, newLoadingError("TAG", "reading attribute color: "+err.Error())
		}
		if err := binary.Read(r, binary.LittleEndian, &bg); err != nil {
			return nil, newLoadingError("TAG", "reading attribute color: "+err.Error())
		}
		fontPage, err := r.ReadByte()
		if err != nil {
			return nil, newLoadingError("TAG", "reading font page: "+err.Error())
		}
		var attr uint16
		if err := binary.Read(r, binary.LittleEndian, &attr); err != nil {
			return nil, newLoadingError("TAG", "reading attr bits: "+err.Error())
		}
		tags = append(tags, icy.Tag{
			Preview:          preview,
			ReplacementValue: replacement,
			Position:         icy.Position{X: int(x), Y: int(y)},
			Length:           int(length),
			Enabled:          flags&1 != 0,
			Alignment:        icy.TagAlignment(alignment),
			Placement:        icy.TagPlacement(placement),
			Role:             icy.TagRole(role),
			Attribute: icy.TextAttribute{
				Foreground: icy.ColorFromRaw(fg),
				Background: icy.ColorFromRaw(bg),
				FontPage:   fontPage,
				Attr:       icy.AttrFlag(attr),
			},
		})
	}
	if _, err := io.ReadAll(r); err != nil {
		return nil, newLoadingError("TAG", "trailing garbage: "+err.Error())
	}
	return tags, nil
}
