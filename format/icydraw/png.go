package icydraw

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"io"
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// rawChunk is one length-prefixed, CRC-checked PNG chunk.
type rawChunk struct {
	Type string
	Data []byte
}

// readRawChunks splits a byte stream shaped like a PNG file into its
// constituent chunks, stopping after (and including) IEND.
func readRawChunks(data []byte) ([]rawChunk, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], pngSignature[:]) {
		return nil, newLoadingError("", "not a PNG-shaped stream")
	}
	var chunks []rawChunk
	pos := 8
	for pos+8 <= len(data) {
		length := binary.BigEndian.Uint32(data[pos:])
		typ := string(data[pos+4 : pos+8])
		start := pos + 8
		end := start + int(length)
		if end < start || end+4 > len(data) {
			return nil, newLoadingError(typ, "truncated chunk")
		}
		chunks = append(chunks, rawChunk{Type: typ, Data: append([]byte(nil), data[start:end]...)})
		pos = end + 4
		if typ == "IEND" {
			break
		}
	}
	return chunks, nil
}

// writeRawChunk appends one length+type+data+crc32 chunk to w.
func writeRawChunk(w *bytes.Buffer, typ string, data []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	w.Write(lenBuf[:])
	w.WriteString(typ)
	w.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc.Sum32())
	w.Write(crcBuf[:])
}

// encodeTextChunk builds a zTXt-shaped chunk carrying keyword and a
// zlib-compressed, base64-encoded payload.
func encodeTextChunk(keyword string, payload []byte) (typ string, data []byte, err error) {
	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	if _, err = zw.Write(payload); err != nil {
		return "", nil, err
	}
	if err = zw.Close(); err != nil {
		return "", nil, err
	}
	b64 := base64.StdEncoding.EncodeToString(zbuf.Bytes())
	var out bytes.Buffer
	out.WriteString(keyword)
	out.WriteByte(0)
	out.WriteByte(0) // compression method, always 0 (zlib/deflate)
	out.WriteString(b64)
	return "zTXt", out.Bytes(), nil
}

// decodeTextChunk reverses encodeTextChunk.
func decodeTextChunk(data []byte) (keyword string, payload []byte, err error) {
	nul := bytes.IndexByte(data, 0)
	if nul < 0 || nul+2 > len(data) {
		return "", nil, newLoadingError("zTXt", "malformed text chunk")
	}
	keyword = string(data[:nul])
	b64 := data[nul+2:]
	comp, err := base64.StdEncoding.DecodeString(string(b64))
	if err != nil {
		return "", nil, newLoadingError(keyword, "invalid base64: "+err.Error())
	}
	zr, err := zlib.NewReader(bytes.NewReader(comp))
	if err != nil {
		return "", nil, newLoadingError(keyword, "invalid zlib stream: "+err.Error())
	}
	defer zr.Close()
	payload, err = io.ReadAll(zr)
	if err != nil {
		return "", nil, newLoadingError(keyword, "truncated zlib stream: "+err.Error())
	}
	return keyword, payload, nil
}

// encodePreviewPNG renders img via the standard library's PNG encoder,
// producing the container's visible payload: a standard PNG any image
// viewer decodes as a preview rendering. image/png is used
// directly (no third-party PNG codec) since it is the one concern in
// this package the example pack offers no alternative library for; see
// DESIGN.md.
func encodePreviewPNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePreviewImage decodes just the standard PNG chunks of a container
// built by SaveBuffer, ignoring the interleaved custom text chunks. A
// host browsing a directory of saved files can use this to show preview
// thumbnails without paying for a full LoadBuffer.
func DecodePreviewImage(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newLoadingError("IDAT", err.Error())
	}
	return img, nil
}

// spliceTextChunks inserts textChunks (already-built type/data pairs)
// into a complete PNG byte stream immediately before IEND, producing the
// final container bytes.
func spliceTextChunks(basePNG []byte, textChunks []rawChunk) ([]byte, error) {
	chunks, err := readRawChunks(basePNG)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.Write(pngSignature[:])
	for _, c := range chunks {
		if c.Type == "IEND" {
			for _, t := range textChunks {
				writeRawChunk(&out, t.Type, t.Data)
			}
		}
		writeRawChunk(&out, c.Type, c.Data)
	}
	return out.Bytes(), nil
}
