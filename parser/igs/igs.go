package igs

import "github.com/icy-engine/icy-core/parser"

// opKinds maps the single-letter IGS command op to its decoded
// CommandKind. Op letters IG assigns to audio synthesis, windowing, or
// input plumbing (chip music, noise, pauses, cursor and input control)
// are intentionally absent: those fall outside the drawing engine this
// package implements.
var opKinds = map[byte]CommandKind{
	'A': CmdAttributeForFills,
	'C': CmdColorSet,
	'S': CmdSetPenColor,
	'T': CmdLineType,
	'M': CmdDrawingMode,
	'H': CmdHollowSet,
	'L': CmdLine,
	'D': CmdLineDrawTo,
	'B': CmdBox,
	'Z': CmdFilledRectangle,
	'U': CmdRoundedRectangle,
	'O': CmdCircle,
	'Q': CmdEllipse,
	'K': CmdArc,
	'J': CmdEllipticalArc,
	'F': CmdFloodFill,
	'V': CmdPieSlice,
	'Y': CmdEllipticalPieSlice,
	'z': CmdPolyLine,
	'f': CmdPolyFill,
	'P': CmdPolyMarker,
	'W': CmdWriteText,
	'E': CmdTextEffects,
	's': CmdScreenClear,
	'g': CmdGraphicScaling,
	'I': CmdInitialize,
	'R': CmdSetResolution,
	'X': CmdBlit,
}

type igsPhase int

const (
	phGround igsPhase = iota
	phParams // between `op>` and the command terminator
	phText   // reading a text payload until the text terminator
)

// Dialect implements parser.CommandParser for IGS, tokenizing the
// `op>p1,p2,...:` / `op>p1,p2,...:TEXT@` command grammar. `:` terminates
// a plain command's parameter list; commands that embed strings
// (WriteText) switch to reading text until their own terminator byte
// (`@`), so commands chain back to back: `I>0:C>0,2:L>10,10,50,50:`.
type Dialect struct {
	Executor *DrawExecutor

	phase    igsPhase
	op       byte
	pending  byte // candidate op letter waiting for '>'
	hasPend  bool
	paramBuf []byte
	textBuf  []byte
}

// New returns an IGS dialect parser painting onto a screen of the given
// pixel dimensions.
func New(width, height int) *Dialect {
	return &Dialect{Executor: NewDrawExecutor(width, height)}
}

// Parse implements parser.CommandParser. Partial commands are buffered
// across calls; plain text outside of any `op>` command passes through
// as CmdPrintable.
func (d *Dialect) Parse(data []byte, sink parser.CommandSink) {
	for _, b := range data {
		d.step(b, sink)
	}
}

// Flush forces any buffered partial command through (end of stream).
func (d *Dialect) Flush(sink parser.CommandSink) {
	switch d.phase {
	case phParams, phText:
		d.finalize(sink)
	default:
		d.flushPending(sink)
	}
}

func (d *Dialect) step(b byte, sink parser.CommandSink) {
	switch d.phase {
	case phGround:
		if d.hasPend {
			if b == '>' {
				if _, ok := opKinds[d.pending]; ok {
					d.op = d.pending
					d.hasPend = false
					d.phase = phParams
					d.paramBuf = d.paramBuf[:0]
					d.textBuf = d.textBuf[:0]
					return
				}
				sink.Emit(parser.TerminalCommand{Kind: parser.CmdUnknown, String: "igs op " + string(d.pending)})
				d.hasPend = false
				return
			}
			d.flushPending(sink)
		}
		switch {
		case b == 0x0D:
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0CR})
		case b == 0x0A:
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0LF})
		case (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z'):
			d.pending = b
			d.hasPend = true
		default:
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{b}})
		}
	case phParams:
		switch b {
		case ':':
			if opKinds[d.op] == CmdWriteText {
				d.phase = phText
				return
			}
			d.finalize(sink)
		case '@', '\n':
			d.finalize(sink)
		default:
			d.paramBuf = append(d.paramBuf, b)
		}
	case phText:
		if b == '@' || b == '\n' {
			d.finalize(sink)
			return
		}
		d.textBuf = append(d.textBuf, b)
	}
}

func (d *Dialect) flushPending(sink parser.CommandSink) {
	if d.hasPend {
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{d.pending}})
		d.hasPend = false
	}
}

func (d *Dialect) finalize(sink parser.CommandSink) {
	params, _, _ := tokenizeArgs(string(d.paramBuf))
	cmd := Command{Kind: opKinds[d.op], Params: params, Text: string(d.textBuf), Raw: d.op}
	d.phase = phGround
	d.paramBuf = d.paramBuf[:0]
	d.textBuf = d.textBuf[:0]
	d.Executor.Execute(cmd)
	if !sink.EmitViewData(cmd) {
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdUnknown, String: "igs " + string(d.op)})
	}
}
