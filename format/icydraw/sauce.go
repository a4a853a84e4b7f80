package icydraw

import (
	"bytes"
	"encoding/binary"
	"strings"

	icy "github.com/icy-engine/icy-core"
)

// sauceRecordSize is the fixed size of a SAUCE record, per the SAUCE 00.5
// specification: the standard trailer this binary format persists
// verbatim in its SAUCE chunk.
const sauceRecordSize = 128

const commentLineSize = 64

// encodeSauce renders m as a raw SAUCE record plus any COMNT block, in
// the standard trailer layout ANSI-art tools append to a file.
func encodeSauce(m *icy.SauceMetadata) []byte {
	var buf bytes.Buffer
	if len(m.Comments) > 0 {
		buf.WriteString("COMNT")
		for _, c := range m.Comments {
			buf.WriteString(padTrunc(c, commentLineSize))
		}
	}
	buf.WriteString("SAUCE")
	buf.WriteString("00")
	buf.WriteString(padTrunc(m.Title, 35))
	buf.WriteString(padTrunc(m.Author, 20))
	buf.WriteString(padTrunc(m.Group, 20))
	buf.WriteString(strings.Repeat("0", 8)) // CCYYMMDD, unused by the core
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], 0) // filesize, filled in by a host on write
	buf.Write(u32[:])
	buf.WriteByte(m.DataType)
	buf.WriteByte(m.FileType)
	for _, v := range m.TInfo {
		var u16 [2]byte
		binary.LittleEndian.PutUint16(u16[:], v)
		buf.Write(u16[:])
	}
	buf.WriteByte(byte(len(m.Comments)))
	buf.WriteByte(m.Flags)
	buf.WriteString(padTrunc(m.FontName, 22))
	return buf.Bytes()
}

// decodeSauce parses a raw SAUCE chunk payload (optionally preceded by a
// COMNT block) back into a SauceMetadata.
func decodeSauce(data []byte) (*icy.SauceMetadata, error) {
	body := data
	var comments []string
	if idx := bytes.Index(data, []byte("COMNT")); idx >= 0 {
		sauceIdx := bytes.Index(data, []byte("SAUCE"))
		if sauceIdx < 0 {
			return nil, newLoadingError("SAUCE", "COMNT block with no SAUCE record")
		}
		commentBlock := data[idx+5 : sauceIdx]
		for i := 0; i+commentLineSize <= len(commentBlock); i += commentLineSize {
			comments = append(comments, strings.TrimRight(string(commentBlock[i:i+commentLineSize]), " \x00"))
		}
		body = data[sauceIdx:]
	}
	if len(body) < sauceRecordSize {
		return nil, newLoadingError("SAUCE", "record truncated")
	}
	if string(body[:5]) != "SAUCE" {
		return nil, newLoadingError("SAUCE", "missing SAUCE signature")
	}
	off := 7
	title := strings.TrimRight(string(body[off:off+35]), " \x00")
	off += 35
	author := strings.TrimRight(string(body[off:off+20]), " \x00")
	off += 20
	group := strings.TrimRight(string(body[off:off+20]), " \x00")
	off += 20
	off += 8 // date
	off += 4 // filesize
	dataType := body[off]
	off++
	fileType := body[off]
	off++
	var tinfo [4]uint16
	for i := range tinfo {
		tinfo[i] = binary.LittleEndian.Uint16(body[off : off+2])
		off += 2
	}
	off++ // comment line count (derived from comments slice instead)
	flags := body[off]
	off++
	fontName := strings.TrimRight(string(body[off:min(off+22, len(body))]), " \x00")

	return &icy.SauceMetadata{
		Title:    title,
		Author:   author,
		Group:    group,
		Comments: comments,
		FontName: fontName,
		Flags:    flags,
		TInfo:    tinfo,
		DataType: dataType,
		FileType: fileType,
	}, nil
}

func padTrunc(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}
