// Package pcboard implements the PCBoard `@Xxx` color-code dialect
// dialect, built on the same tokenizer shape as parser/ansi but
// with a far smaller grammar: `@X` followed by two hex digits (background
// nibble, foreground nibble) indexing the standard 16-color ANSI
// palette. Any other `@` code is emitted as Unknown holding only the `@`
// and the byte after it; the rest of the macro name prints as text
// (PCBoard macros read from a BBS's user record are out of scope for
// this core).
package pcboard

import (
	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
)

type scanState int

const (
	stGround scanState = iota
	stAt
	stX
	stFirstHex
)

// Dialect implements parser.CommandParser for PCBoard `@X` color codes.
type Dialect struct {
	state    scanState
	firstHex byte
}

// New returns a fresh PCBoard dialect parser.
func New() *Dialect { return &Dialect{} }

func hexVal(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	default:
		return 0, false
	}
}

// Parse implements parser.CommandParser.
func (d *Dialect) Parse(data []byte, sink parser.CommandSink) {
	for _, b := range data {
		switch d.state {
		case stGround:
			if b == '@' {
				d.state = stAt
				continue
			}
			if b == 0x0D {
				sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0CR})
			} else if b == 0x0A {
				sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0LF})
			} else {
				sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{b}})
			}
		case stAt:
			if b == 'X' || b == 'x' {
				d.state = stX
			} else {
				sink.Emit(parser.TerminalCommand{Kind: parser.CmdUnknown, String: "@" + string(b)})
				d.state = stGround
			}
		case stX:
			if v, ok := hexVal(b); ok {
				d.firstHex = byte(v)
				d.state = stFirstHex
			} else {
				sink.ReportError(parser.ParseError{Kind: parser.ErrInvalidParameter, Command: "@X", Value: string(b), Expected: "hex digit"})
				d.state = stGround
			}
		case stFirstHex:
			if v, ok := hexVal(b); ok {
				bg := int(d.firstHex)
				fg := v
				sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRBackground, Color: icy.PaletteIndex(uint32(bg))}})
				sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRForeground, Color: icy.PaletteIndex(uint32(fg))}})
			} else {
				sink.ReportError(parser.ParseError{Kind: parser.ErrInvalidParameter, Command: "@X", Value: string(b), Expected: "hex digit"})
			}
			d.state = stGround
		}
	}
}
