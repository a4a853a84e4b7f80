// Package petscii implements the Commodore PETSCII dialect:
// an 8-bit home-computer character/control scheme with no CSI state
// machine at all — every control byte is a single-byte screen-code
// action (cursor move, color select, reverse video, clear) rather than
// an escape sequence, the same flat control-byte-dispatch shape
// parser/pcboard and parser/avatar use for their own non-ANSI grammars.
package petscii

import (
	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
)

// colorCodes maps the well-known PETSCII color control bytes to the
// standard C64 16-color palette index they select. Values follow the
// conventional VICE/C64 PETSCII control-code table.
var colorCodes = map[byte]int{
	0x05: 1,  // white
	0x1C: 2,  // red
	0x1E: 5,  // green
	0x1F: 6,  // blue (cyan slot reused; core palette has no native C64 order)
	0x81: 8,  // orange
	0x90: 0,  // black
	0x95: 9,  // brown
	0x96: 10, // light red/pink
	0x97: 11, // dark grey
	0x98: 12, // grey
	0x99: 13, // light green
	0x9A: 14, // light blue
	0x9B: 15, // light grey
	0x9C: 4,  // purple
	0x9E: 3,  // yellow
	0x9F: 7,  // cyan
}

// Dialect implements parser.CommandParser for PETSCII.
type Dialect struct{}

// New returns a fresh PETSCII dialect parser.
func New() *Dialect { return &Dialect{} }

// Parse implements parser.CommandParser.
func (d *Dialect) Parse(data []byte, sink parser.CommandSink) {
	for _, b := range data {
		d.step(b, sink)
	}
}

func (d *Dialect) step(b byte, sink parser.CommandSink) {
	if idx, ok := colorCodes[b]; ok {
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRForeground, Color: icy.PaletteIndex(uint32(idx))}})
		return
	}
	switch b {
	case 0x0D:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0CR})
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0LF})
	case 0x11: // cursor down
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUD, Params: []int{1}}})
	case 0x91: // cursor up
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUU, Params: []int{1}}})
	case 0x1D: // cursor right
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUF, Params: []int{1}}})
	case 0x9D: // cursor left
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUB, Params: []int{1}}})
	case 0x93: // clear screen + home
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSIED, Params: []int{2}}})
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUP, Params: []int{1, 1}}})
	case 0x13: // home
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUP, Params: []int{1, 1}}})
	case 0x12: // reverse on
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRInverse, On: true}})
	case 0x92: // reverse off
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRInverse, On: false}})
	case 0x14: // delete/backspace
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0BS})
	default:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{ScreenCodeToASCII(b)}})
	}
}

// ScreenCodeToASCII decodes one PETSCII byte to the ASCII-ish byte a host
// rendering with a PETSCII BitFont would index a glyph by. Bytes
// 0x20-0x7E are returned unchanged; every other byte is returned as '.'.
func ScreenCodeToASCII(b byte) byte {
	if b >= 0x20 && b < 0x7F {
		return b
	}
	return '.'
}
