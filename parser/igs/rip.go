package igs

import "github.com/icy-engine/icy-core/parser"

// ripOpKinds maps RIPscrip's two-letter command codes to the shared
// CommandKind enum. RIP commands are introduced by '|' rather than IGS's
// single-letter-then-'>' form, and take comma-separated parameters with
// no trailing-text colon convention, but resolve to the same drawing
// primitives DrawExecutor already implements for IGS, so RIP is wired as
// a thin sibling dialect rather than a second executor.
var ripOpKinds = map[string]CommandKind{
	"w":  CmdInitialize, // set text window / reset
	"c":  CmdColorSet,
	"cl": CmdScreenClear,
	"l":  CmdLine,
	"r":  CmdBox,
	"b":  CmdFilledRectangle,
	"oe": CmdEllipse,
	"oc": CmdCircle,
	"op": CmdPieSlice,
	"f":  CmdFloodFill,
	"p":  CmdPolyLine,
	"pg": CmdPolyFill,
	"T":  CmdWriteText,
	"m":  CmdBlit,
}

// RIPDialect implements parser.CommandParser for RIPscrip, sharing a
// DrawExecutor instance with (or independent from) an igs.Dialect.
type RIPDialect struct {
	Executor *DrawExecutor
	buf      []byte
}

// NewRIP returns a RIPscrip dialect parser painting onto a screen of the
// given pixel dimensions.
func NewRIP(width, height int) *RIPDialect {
	return &RIPDialect{Executor: NewDrawExecutor(width, height)}
}

// Parse implements parser.CommandParser.
func (d *RIPDialect) Parse(data []byte, sink parser.CommandSink) {
	for _, b := range data {
		d.buf = append(d.buf, b)
		if b == '\n' {
			d.flush(sink)
		}
	}
}

// Flush forces any buffered partial command through.
func (d *RIPDialect) Flush(sink parser.CommandSink) {
	if len(d.buf) > 0 {
		d.flush(sink)
	}
}

func (d *RIPDialect) flush(sink parser.CommandSink) {
	line := d.buf
	d.buf = nil
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	start := 0
	for start < len(line) {
		bar := -1
		for i := start; i < len(line); i++ {
			if line[i] == '|' {
				bar = i
				break
			}
		}
		if bar < 0 {
			if start < len(line) {
				sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: append([]byte(nil), line[start:]...)})
			}
			return
		}
		if bar > start {
			sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: append([]byte(nil), line[start:bar]...)})
		}
		next := len(line)
		for i := bar + 1; i < len(line); i++ {
			if line[i] == '|' {
				next = i
				break
			}
		}
		d.dispatch(line[bar+1:next], sink)
		start = next
	}
}

func (d *RIPDialect) dispatch(body []byte, sink parser.CommandSink) {
	op := ""
	i := 0
	for i < len(body) && isAlpha(body[i]) {
		i++
	}
	op = string(body[:i])
	kind, ok := ripOpKinds[op]
	if !ok {
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdUnknown, String: "rip " + op})
		return
	}
	params, text, _ := tokenizeArgs(string(body[i:]))
	cmd := Command{Kind: kind, Params: params, Text: text, Raw: body[0]}
	d.Executor.Execute(cmd)
	if !sink.EmitViewData(cmd) {
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdUnknown, String: "rip " + op})
	}
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
