// Package avatar implements the Avatar `^V` (0x16) color-code dialect
// control set. Avatar is a small escape family FidoNet/BBS doors used as
// a cheaper alternative to full ANSI: one control byte (0x16) followed by
// a command byte and a short fixed argument list, rather than ANSI's
// variable-length CSI grammar. The state machine below follows the same
// byte-at-a-time scanState shape parser/pcboard uses for its own small
// grammar, scaled up to Avatar's multi-byte commands.
package avatar

import (
	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
)

const avatarEsc = 0x16

type scanState int

const (
	stGround scanState = iota
	stAvatar     // just saw 0x16, waiting for command byte
	stSetAttr    // command 1: waiting for the attribute byte
	stClear      // command 2 takes no args
	stRepeatChar // command 6: waiting for the char to repeat
	stRepeatLo   // waiting for count low byte
	stRepeatHi   // waiting for count high byte
	stGotoY      // command 8: waiting for row byte
	stGotoX      // waiting for column byte
)

// Dialect implements parser.CommandParser for the Avatar control set.
type Dialect struct {
	state      scanState
	cmd        byte
	repeatChar byte
	repeatLo   byte
	gotoY      byte
}

// New returns a fresh Avatar dialect parser.
func New() *Dialect { return &Dialect{} }

// Parse implements parser.CommandParser.
func (d *Dialect) Parse(data []byte, sink parser.CommandSink) {
	for _, b := range data {
		d.step(b, sink)
	}
}

func (d *Dialect) step(b byte, sink parser.CommandSink) {
	switch d.state {
	case stGround:
		switch {
		case b == avatarEsc:
			d.state = stAvatar
		case b == 0x0D:
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0CR})
		case b == 0x0A:
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0LF})
		default:
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{b}})
		}
	case stAvatar:
		d.cmd = b
		switch b {
		case 1:
			d.state = stSetAttr
		case 2:
			d.emitClear(sink)
			d.state = stGround
		case 6:
			d.state = stRepeatChar
		case 8:
			d.state = stGotoY
		default:
			sink.ReportError(parser.ParseError{Kind: parser.ErrUnsupportedEscape, Command: "Avatar ^V", Value: byteHex(b)})
			d.state = stGround
		}
	case stSetAttr:
		bg := int(b >> 4)
		fg := int(b & 0x0F)
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRForeground, Color: icy.PaletteIndex(uint32(fg))}})
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRBackground, Color: icy.PaletteIndex(uint32(bg))}})
		d.state = stGround
	case stRepeatChar:
		d.repeatChar = b
		d.state = stRepeatLo
	case stRepeatLo:
		d.repeatLo = b
		d.state = stRepeatHi
	case stRepeatHi:
		count := int(d.repeatHi(b))
		for i := 0; i < count; i++ {
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{d.repeatChar}})
		}
		d.state = stGround
	case stGotoY:
		d.gotoY = b
		d.state = stGotoX
	case stGotoX:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{
			Kind:   parser.CSICUP,
			Params: []int{int(d.gotoY) + 1, int(b) + 1},
		}})
		d.state = stGround
	}
}

func (d *Dialect) repeatHi(hi byte) uint16 {
	return uint16(d.repeatLo) | uint16(hi)<<8
}

func (d *Dialect) emitClear(sink parser.CommandSink) {
	sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSIED, Params: []int{2}}})
	sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: parser.CSICommand{Kind: parser.CSICUP, Params: []int{1, 1}}})
}

func byteHex(b byte) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0xF]})
}
