// Package atascii implements the Atari 8-bit ATASCII dialect: like
// PETSCII, a flat single-byte control scheme with no CSI
// grammar. Atari's high bit on a character cell means "inverse video"
// rather than selecting a different codepoint, so decoding splits the
// incoming byte into a base glyph and an inverse flag before handing it
// to the sink.
package atascii

import "github.com/icy-engine/icy-core/parser"

// Dialect implements parser.CommandParser for ATASCII.
type Dialect struct{}

// New returns a fresh ATASCII dialect parser.
func New() *Dialect { return &Dialect{} }

// Parse implements parser.CommandParser.
func (d *Dialect) Parse(data []byte, sink parser.CommandSink) {
	for _, b := range data {
		d.step(b, sink)
	}
}

func (d *Dialect) step(b byte, sink parser.CommandSink) {
	switch b {
	case 0x1C: // cursor up
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUU, Params: []int{1}}})
	case 0x1D: // cursor down
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUD, Params: []int{1}}})
	case 0x1E: // cursor left
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUB, Params: []int{1}}})
	case 0x1F: // cursor right
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUF, Params: []int{1}}})
	case 0x7D: // clear screen
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSIED, Params: []int{2}}})
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUP, Params: []int{1, 1}}})
	case 0x9B: // EOL
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0CR})
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0LF})
	case 0xFD, 0xFE: // bell variants
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0BEL})
	case 0x7E: // backspace
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0BS})
	case 0x7F: // tab
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0HT})
	default:
		glyph, inverse := DecodeByte(b)
		if inverse {
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRInverse, On: true}})
		}
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{glyph}})
		if inverse {
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRInverse, On: false}})
		}
	}
}

// DecodeByte splits an ATASCII byte into its base glyph code (high bit
// clear) and whether the high bit requested inverse video for that cell.
func DecodeByte(b byte) (glyph byte, inverse bool) {
	if b&0x80 != 0 {
		return b &^ 0x80, true
	}
	return b, false
}
