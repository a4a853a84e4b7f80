package icy

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// BufferType selects the byte<->rune mapping and default dialect
// conventions for a Buffer.
type BufferType int

const (
	BufferTypeCP437 BufferType = iota
	BufferTypeAtascii
	BufferTypePetscii
	BufferTypeUnicode
	BufferTypeViewData
)

// codepageTable maps each BufferType that is byte-oriented to the
// golang.org/x/text encoding used to turn a raw byte into a rune. The
// Atascii/Petscii dialects use their own fixed tables (parser/atascii,
// parser/petscii) since x/text has no charmap for either; CP437 is
// covered directly by x/text/encoding/charmap.
var codepageTable = map[BufferType]encoding.Encoding{
	BufferTypeCP437: charmap.CodePage437,
}

// DecodeByte converts one input byte to a rune using bt's codepage. For
// BufferTypeUnicode the byte is assumed to already be part of a UTF-8
// stream and is returned unchanged; callers handling UTF-8 continuation
// bytes should not route them through DecodeByte.
func DecodeByte(bt BufferType, b byte) rune {
	enc, ok := codepageTable[bt]
	if !ok {
		return rune(b)
	}
	dst, err := enc.NewDecoder().Bytes([]byte{b})
	if err != nil || len(dst) == 0 {
		return rune(b)
	}
	r := []rune(string(dst))
	if len(r) == 0 {
		return rune(b)
	}
	return r[0]
}

// sauceFontCodepage maps a SAUCE TInfoS font name to a BufferType/codepage
// choice (IBM/Amiga font family names recorded in SAUCE trailers).
var sauceFontCodepage = map[string]BufferType{
	"ibm vga":      BufferTypeCP437,
	"ibm vga50":    BufferTypeCP437,
	"ibm vga25g":   BufferTypeCP437,
	"ibm ega":      BufferTypeCP437,
	"ibm ega43":    BufferTypeCP437,
	"amiga topaz 1": BufferTypeUnicode,
	"amiga topaz 2": BufferTypeUnicode,
	"amiga microknight": BufferTypeUnicode,
	"amiga mosoul": BufferTypeUnicode,
	"atari":        BufferTypeAtascii,
	"viewdata":     BufferTypeViewData,
}

// ResolveSauceFontCodepage maps a SAUCE font name (case-insensitive,
// whitespace-trimmed) to the BufferType it implies, or BufferTypeCP437 if
// the name is unrecognized.
func ResolveSauceFontCodepage(fontName string) BufferType {
	key := strings.ToLower(strings.TrimSpace(fontName))
	if bt, ok := sauceFontCodepage[key]; ok {
		return bt
	}
	return BufferTypeCP437
}
