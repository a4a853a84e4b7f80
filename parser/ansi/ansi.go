// Package ansi implements the ECMA-48 + DEC/xterm dialect, the most
// detailed of the parser/ dialects. Dialect translates tokens from
// parser.Engine into parser.TerminalCommand values delivered to a
// parser.CommandSink; it holds no Buffer/EditState reference itself —
// the parser is a pure producer, consumed by hosts that apply commands
// to an EditState (terminal.Screen being the in-tree one).
package ansi

import (
	"strconv"
	"strings"

	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
)

// Dialect implements parser.CommandParser for ECMA-48 + DEC/xterm.
type Dialect struct {
	engine *parser.Engine
	sink   parser.CommandSink
}

// New returns a fresh ANSI dialect parser.
func New() *Dialect {
	d := &Dialect{}
	d.engine = parser.NewEngine(d)
	return d
}

// Parse implements parser.CommandParser.
func (d *Dialect) Parse(data []byte, sink parser.CommandSink) {
	d.sink = sink
	d.engine.Feed(data)
	d.sink = nil
}

func (d *Dialect) HandlePrintable(b byte) {
	d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{b}})
}

func (d *Dialect) HandleC0(b byte) {
	var c parser.C0
	switch b {
	case 0x00:
		c = parser.C0NUL
	case 0x07:
		c = parser.C0BEL
	case 0x08:
		c = parser.C0BS
	case 0x09:
		c = parser.C0HT
	case 0x0A:
		c = parser.C0LF
	case 0x0B:
		c = parser.C0VT
	case 0x0C:
		c = parser.C0FF
	case 0x0D:
		c = parser.C0CR
	default:
		return
	}
	d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: c})
}

func (d *Dialect) HandleEscape(final byte) {
	var kind parser.EscKind
	switch final {
	case '7':
		kind = parser.EscSaveCursor
	case '8':
		kind = parser.EscRestoreCursor
	case 'D':
		kind = parser.EscIndex
	case 'E':
		kind = parser.EscNextLine
	case 'H':
		kind = parser.EscSetTab
	case 'M':
		kind = parser.EscReverseIndex
	case 'c':
		kind = parser.EscReset
	case '=', '>', '(', ')': // keypad / charset selection: recognized, no buffer effect
		kind = parser.EscOther
	default:
		d.sink.ReportError(parser.ParseError{Kind: parser.ErrUnsupportedEscape, Command: "ESC " + string(final)})
		kind = parser.EscOther
	}
	d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdEsc, Esc: parser.EscCommand{Kind: kind, Final: final}})
}

func (d *Dialect) HandleCSI(final, private, intermediate byte, params []int, raw []string) {
	cmd, ok := decodeCSI(final, private, intermediate, params, raw)
	if !ok {
		d.sink.ReportError(parser.ParseError{Kind: parser.ErrUnsupportedEscape, Command: "CSI " + string(final)})
		d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdUnknown, String: "CSI " + string(final)})
		return
	}
	if final == 'm' {
		d.emitSGR(cmd)
		return
	}
	if final == 'h' || final == 'l' {
		d.emitModeSet(cmd, final == 'h')
		return
	}
	d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdCSI, CSI: cmd})
}

func decodeCSI(final, private, intermediate byte, params []int, raw []string) (parser.CSICommand, bool) {
	c := parser.CSICommand{Params: params, RawParams: raw, Private: private, Intermediate: intermediate}
	switch final {
	case 'A':
		c.Kind = parser.CSICUU
	case 'B':
		c.Kind = parser.CSICUD
	case 'C':
		c.Kind = parser.CSICUF
	case 'D':
		if intermediate == ' ' {
			c.Kind = parser.CSIFontSelection
		} else {
			c.Kind = parser.CSICUB
		}
	case 'E':
		c.Kind = parser.CSICNL
	case 'F':
		c.Kind = parser.CSICPL
	case 'G':
		c.Kind = parser.CSICHA
	case 'H', 'f':
		c.Kind = parser.CSICUP
	case 'J':
		c.Kind = parser.CSIED
	case 'K':
		c.Kind = parser.CSIEL
	case 'L':
		c.Kind = parser.CSIIL
	case 'M':
		c.Kind = parser.CSIDL
	case 'P':
		c.Kind = parser.CSIDCH
	case '@':
		c.Kind = parser.CSIICH
	case 'X':
		c.Kind = parser.CSIECH
	case 'S':
		c.Kind = parser.CSISU
	case 'T':
		c.Kind = parser.CSISD
	case 'b':
		c.Kind = parser.CSIREP
	case 'd':
		c.Kind = parser.CSIVPA
	case 'e':
		c.Kind = parser.CSIVPR
	case 'g':
		c.Kind = parser.CSITBC
	case '`', '\'':
		c.Kind = parser.CSIHPA
	case 'r':
		switch {
		case intermediate == '*':
			c.Kind = parser.CSIBaudEmulation
		case private == '=':
			c.Kind = parser.CSIResetMargins
		default:
			c.Kind = parser.CSIDECSTBM
		}
	case 'm':
		c.Kind = 0 // dispatched separately as SGR
	case 'h', 'l':
		c.Kind = 0 // dispatched separately as mode set
	case 's':
		c.Kind = parser.CSISCP
	case 'u':
		c.Kind = parser.CSIRCP
	case 'n':
		c.Kind = parser.CSIDSR
	case 'c':
		c.Kind = parser.CSIDA
	case 't':
		c.Kind = parser.CSIWindowManip
	case 'q':
		if intermediate == ' ' {
			c.Kind = parser.CSIDECSCUSR
		} else if intermediate == '"' {
			c.Kind = parser.CSIFontSelection
		} else {
			return c, false
		}
	case 'x':
		if intermediate != '$' {
			return c, false
		}
		c.Kind = parser.CSIRectFill
	case 'z':
		switch intermediate {
		case '$':
			c.Kind = parser.CSIRectErase
		case '*':
			c.Kind = parser.CSIInvokeMacro
		default:
			return c, false
		}
	case '{':
		switch intermediate {
		case '$':
			c.Kind = parser.CSISelectiveErase
		case '*':
			c.Kind = parser.CSIDECRQUPSS
		default:
			return c, false
		}
	case 'w':
		if intermediate != '$' {
			return c, false
		}
		c.Kind = parser.CSITabStopReport
	case 'y':
		if intermediate != '*' {
			return c, false
		}
		c.Kind = parser.CSIDECRQCRA
	default:
		return c, false
	}
	return c, true
}

func (d *Dialect) emitModeSet(cmd parser.CSICommand, set bool) {
	if cmd.Private == '?' {
		for _, p := range cmd.Params {
			mode, recognized := decDecMode(p)
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdDECModeSet, DECMode: parser.DECModeSetCommand{Mode: mode, Set: set, Raw: p}})
			if !recognized {
				d.sink.ReportError(parser.ParseError{Kind: parser.ErrInvalidParameter, Command: "DECSET/RST", Value: strconv.Itoa(p)})
			}
		}
		return
	}
	for _, p := range cmd.Params {
		d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdANSIModeSet, ANSIMode: parser.ANSIModeSetCommand{Mode: p, Set: set}})
	}
}

func decDecMode(p int) (parser.DECMode, bool) {
	switch p {
	case 25:
		return parser.DECModeCursorVisible, true
	case 7:
		return parser.DECModeAutoWrap, true
	case 6:
		return parser.DECModeOriginMode, true
	case 5:
		return parser.DECModeReverseVideo, true
	case 4:
		return parser.DECModeInsertReplace, true
	case 69:
		return parser.DECModeLeftRightMargin, true
	case 1000, 1002, 1003:
		return parser.DECModeVT200Mouse, true
	case 2004:
		return parser.DECModeBracketedPaste, true
	case 3:
		return parser.DECModeColumn132, true
	default:
		return parser.DECModeUnknown, false
	}
}

func (d *Dialect) emitSGR(cmd parser.CSICommand) {
	if len(cmd.Params) == 0 {
		d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRReset}})
		return
	}
	i := 0
	for i < len(cmd.Params) {
		p := cmd.Params[i]
		switch {
		case p == 0:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRReset}})
		case p == 1 || p == 2 || p == 22:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRIntensity, Value: p, On: p != 22}})
		case p == 3 || p == 23:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRItalic, On: p == 3}})
		case p == 4 || p == 24:
			style := int(icy.UnderlineSingle)
			if p == 24 {
				style = int(icy.UnderlineNone)
			} else if i < len(cmd.RawParams) {
				_, subs := parser.ParseSubparams(cmd.RawParams[i])
				if len(subs) > 0 {
					style = subs[0]
				}
			}
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRUnderline, Value: style}})
		case p == 5 || p == 6:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRBlinkRate, Value: p - 4}})
		case p == 25:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRBlinkRate, Value: 0}})
		case p == 7 || p == 27:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRInverse, On: p == 7}})
		case p == 8 || p == 28:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRConcealed, On: p == 8}})
		case p == 9 || p == 29:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGRCrossedOut, On: p == 9}})
		case p == 53 || p == 55:
			d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: parser.SGROverlined, On: p == 53}})
		case p >= 30 && p <= 37:
			d.emitColor(parser.SGRForeground, icy.PaletteIndex(uint32(p-30)))
		case p >= 90 && p <= 97:
			d.emitColor(parser.SGRForeground, icy.PaletteIndex(uint32(p-90+8)))
		case p >= 40 && p <= 47:
			d.emitColor(parser.SGRBackground, icy.PaletteIndex(uint32(p-40)))
		case p >= 100 && p <= 107:
			d.emitColor(parser.SGRBackground, icy.PaletteIndex(uint32(p-100+8)))
		case p == 39:
			d.emitColor(parser.SGRForeground, icy.DefaultAttribute.Foreground)
		case p == 49:
			d.emitColor(parser.SGRBackground, icy.DefaultAttribute.Background)
		case p == 38 || p == 48:
			kind := parser.SGRForeground
			if p == 48 {
				kind = parser.SGRBackground
			}
			col, consumed, ok := d.extendedColor(cmd, i)
			if ok {
				d.emitColor(kind, col)
			} else {
				d.sink.ReportError(parser.ParseError{Kind: parser.ErrInvalidParameter, Command: "SGR 38/48", Value: strconv.Itoa(p)})
			}
			i += consumed
		}
		i++
	}
}

func (d *Dialect) emitColor(kind parser.SGRKind, c icy.Color) {
	d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdSGR, SGR: parser.SGRCommand{Kind: kind, Color: c}})
}

// extendedColor decodes SGR 38/48 in both colon-subparameter and
// semicolon-parameter form, returning how many extra top-level params
// were consumed in the semicolon form (0 for the colon form).
func (d *Dialect) extendedColor(cmd parser.CSICommand, i int) (icy.Color, int, bool) {
	if i < len(cmd.RawParams) {
		_, subs := parser.ParseSubparams(cmd.RawParams[i])
		if len(subs) >= 2 && subs[0] == 5 {
			return icy.PaletteIndex(uint32(subs[1])), 0, true
		}
		if len(subs) >= 4 && subs[0] == 2 {
			r, g, b := subs[len(subs)-3], subs[len(subs)-2], subs[len(subs)-1]
			return icy.TrueColor(uint8(r), uint8(g), uint8(b)), 0, true
		}
	}
	if i+2 < len(cmd.Params) && cmd.Params[i+1] == 5 {
		return icy.PaletteIndex(uint32(cmd.Params[i+2])), 2, true
	}
	if i+4 < len(cmd.Params) && cmd.Params[i+1] == 2 {
		return icy.TrueColor(uint8(cmd.Params[i+2]), uint8(cmd.Params[i+3]), uint8(cmd.Params[i+4])), 4, true
	}
	return 0, 0, false
}

func (d *Dialect) HandleOSC(body string) {
	numStr, payload, _ := strings.Cut(body, ";")
	num, _ := strconv.Atoi(numStr)
	var kind parser.OSCKind
	switch num {
	case 0:
		kind = parser.OSCSetIconAndTitle
	case 1:
		kind = parser.OSCSetIconName
	case 2:
		kind = parser.OSCSetWindowTitle
	case 4:
		kind = parser.OSCSetPalette
	case 8:
		kind = parser.OSCHyperlink
	default:
		kind = parser.OSCOther
	}
	d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdOSC, OSC: parser.OSCCommand{Kind: kind, Num: num, Payload: payload}})
}

func (d *Dialect) HandleDCS(body string) {
	d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdDcsString, String: body})
}

func (d *Dialect) HandleAPS(body string) {
	d.sink.Emit(parser.TerminalCommand{Kind: parser.CmdApsString, String: body})
}

func (d *Dialect) ReportError(err parser.ParseError) { d.sink.ReportError(err) }
