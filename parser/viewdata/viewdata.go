// Package viewdata implements the Viewdata/Prestel mosaic-attribute
// dialect: a teletext-derived control scheme where a handful
// of codes in the C1-adjacent 0x10-0x1F range switch the current
// alphanumeric/graphics color and mosaic mode instead of an ANSI escape
// sequence. Genuine ASCII controls (BEL/BS/HT/LF/VT/FF/CR) keep their
// ordinary 0x00-0x0F meanings; only 0x10-0x1F is the dialect-specific
// attribute band, following the same compact non-ANSI grammar PCBoard and
// Avatar use for their own small code spaces.
package viewdata

import (
	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
)

// Kind enumerates the Viewdata mosaic-attribute events, delivered to a
// CommandSink via the EmitViewData(any) hook rather than the generic TerminalCommand union, since
// they carry dialect-specific semantics (held graphics cells, double
// height) no other dialect needs.
type Kind int

const (
	KindAlphaColor Kind = iota
	KindGraphicsColor
	KindFlash
	KindSteady
	KindNormalHeight
	KindDoubleHeight
	KindConceal
	KindContiguousGraphics
	KindSeparatedGraphics
	KindHoldGraphics
	KindReleaseGraphics
)

// Command is the structured Viewdata attribute event.
type Command struct {
	Kind  Kind
	Color icy.Color // meaningful for KindAlphaColor/KindGraphicsColor
}

// viewdataColors is the 7-entry mosaic color table (red, green, yellow,
// blue, magenta, cyan, white), matching the ANSI 1-7 palette slots so a
// host sharing one Palette renders Viewdata and ANSI content identically.
var viewdataColors = [7]icy.Color{
	icy.PaletteIndex(1), icy.PaletteIndex(2), icy.PaletteIndex(3),
	icy.PaletteIndex(4), icy.PaletteIndex(5), icy.PaletteIndex(6), icy.PaletteIndex(7),
}

// Dialect implements parser.CommandParser for Viewdata.
type Dialect struct {
	inGraphicsMode bool
}

// New returns a fresh Viewdata dialect parser.
func New() *Dialect { return &Dialect{} }

// Parse implements parser.CommandParser.
func (d *Dialect) Parse(data []byte, sink parser.CommandSink) {
	for _, b := range data {
		d.step(b, sink)
	}
}

func (d *Dialect) step(b byte, sink parser.CommandSink) {
	if b >= 0x10 && b <= 0x1F {
		d.emitAttribute(b, sink)
		return
	}
	switch b {
	case 0x07:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0BEL})
	case 0x08:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0BS})
	case 0x09:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0HT})
	case 0x0A:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0LF})
	case 0x0B:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0VT})
	case 0x0C:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0FF})
	case 0x0D:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdC0, C0: parser.C0CR})
	default:
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdPrintable, Printable: []byte{b}})
	}
}

func (d *Dialect) emitAttribute(b byte, sink parser.CommandSink) {
	var cmd Command
	switch {
	case b >= 0x10 && b <= 0x16:
		idx := b - 0x10
		color := viewdataColors[idx]
		if d.inGraphicsMode {
			cmd = Command{Kind: KindGraphicsColor, Color: color}
		} else {
			cmd = Command{Kind: KindAlphaColor, Color: color}
		}
	case b == 0x17:
		cmd = Command{Kind: KindFlash}
	case b == 0x18:
		cmd = Command{Kind: KindSteady}
	case b == 0x19:
		cmd = Command{Kind: KindNormalHeight}
	case b == 0x1A:
		cmd = Command{Kind: KindDoubleHeight}
	case b == 0x1B:
		cmd = Command{Kind: KindConceal}
	case b == 0x1C:
		d.inGraphicsMode = true
		cmd = Command{Kind: KindContiguousGraphics}
	case b == 0x1D:
		d.inGraphicsMode = true
		cmd = Command{Kind: KindSeparatedGraphics}
	case b == 0x1E:
		cmd = Command{Kind: KindHoldGraphics}
	case b == 0x1F:
		d.inGraphicsMode = false
		cmd = Command{Kind: KindReleaseGraphics}
	}
	if !sink.EmitViewData(cmd) {
		sink.Emit(parser.TerminalCommand{Kind: parser.CmdUnknown, String: "viewdata attr " + string(rune(b))})
	}
}
