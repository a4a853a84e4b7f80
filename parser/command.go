// Package parser defines the dialect-independent command model shared by
// every byte-stream parser (parser/ansi, parser/pcboard, parser/avatar,
// parser/viewdata, parser/igs, parser/petscii, parser/atascii): the
// CommandParser/CommandSink interfaces, the TerminalCommand tagged union,
// and ParseError. Dialects embed the shared tokenizer in engine.go.
package parser

import icy "github.com/icy-engine/icy-core"

// CommandParser is implemented by every dialect parser: it consumes a
// chunk of bytes and reports structured commands (or parse errors)
// through sink, buffering any trailing partial sequence until the next
// call.
type CommandParser interface {
	Parse(data []byte, sink CommandSink)
}

// CommandSink receives the structured command stream a dialect produces.
// EmitViewData is an optional hook dialects that need a richer, non-
// TerminalCommand payload (Viewdata mosaic attributes) may call; sinks
// that don't care return false and the dialect falls back to a generic
// Unknown command.
type CommandSink interface {
	Emit(cmd TerminalCommand)
	ReportError(err ParseError)
	EmitViewData(cmd any) bool
}

// BaseSink is an embeddable CommandSink that simply appends to Commands
// and Errors; dialect tests and simple hosts can embed it directly.
type BaseSink struct {
	Commands []TerminalCommand
	Errors   []ParseError
}

func (s *BaseSink) Emit(cmd TerminalCommand)     { s.Commands = append(s.Commands, cmd) }
func (s *BaseSink) ReportError(err ParseError)   { s.Errors = append(s.Errors, err) }
func (s *BaseSink) EmitViewData(cmd any) bool     { return false }

// ParseErrorKind enumerates the recoverable parse-fault categories.
type ParseErrorKind int

const (
	ErrInvalidParameter ParseErrorKind = iota
	ErrUnsupportedEscape
	ErrTruncatedSequence
)

// ParseError is a recoverable parse fault: the dialect always continues.
// Only some faults come with a fallback command (parser/ansi emits a
// DECModeUnknown mode command for an unrecognised DEC private mode);
// others, such as a malformed SGR 38/48 colour or a bad pcboard hex
// digit, are reported with no accompanying command.
type ParseError struct {
	Kind     ParseErrorKind
	Command  string
	Value    string
	Expected string
}

func (e ParseError) Error() string {
	switch e.Kind {
	case ErrInvalidParameter:
		return "parser: invalid parameter for " + e.Command + ": got " + e.Value + ", expected " + e.Expected
	case ErrUnsupportedEscape:
		return "parser: unsupported escape sequence: " + e.Command
	case ErrTruncatedSequence:
		return "parser: truncated sequence"
	default:
		return "parser: error"
	}
}

// CommandKind tags TerminalCommand's active field, since Go has no
// tagged-union syntax.
type CommandKind int

const (
	CmdPrintable CommandKind = iota
	CmdC0
	CmdEsc
	CmdCSI
	CmdSGR
	CmdDECModeSet
	CmdANSIModeSet
	CmdOSC
	CmdDcsString
	CmdApsString
	CmdUnknown
)

// C0 names the recognized single-byte control codes.
type C0 int

const (
	C0NUL C0 = iota
	C0BEL
	C0BS
	C0HT
	C0LF
	C0VT
	C0FF
	C0CR
)

// EscKind names the plain (non-CSI/OSC/DCS/APS) escape sequences the
// dialects recognize; EscOther carries the raw final byte for the rest.
type EscKind int

const (
	EscSaveCursor EscKind = iota // ESC 7
	EscRestoreCursor              // ESC 8
	EscIndex                      // ESC D
	EscNextLine                   // ESC E
	EscSetTab                     // ESC H
	EscReverseIndex               // ESC M
	EscReset                      // ESC c
	EscOther                      // any other final byte, in Final
)

// EscCommand is a decoded plain escape sequence.
type EscCommand struct {
	Kind  EscKind
	Final byte
}

// CSIKind enumerates every recognized CSI command.
type CSIKind int

const (
	CSICUU CSIKind = iota // Cursor Up
	CSICUD
	CSICUF
	CSICUB
	CSICNL
	CSICPL
	CSICHA
	CSICUP // also HVP
	CSIED
	CSIEL
	CSIIL
	CSIDL
	CSIDCH
	CSIICH
	CSIECH
	CSISU
	CSISD
	CSIVPA
	CSIHPA
	CSIDECSTBM
	CSIDA
	CSISCP
	CSIRCP
	CSIDSR
	CSIWindowManip
	CSIDECSCUSR
	CSIRectFill
	CSIRectErase
	CSISelectiveErase
	CSITabStopReport
	CSIDECRQCRA
	CSIInvokeMacro
	CSIDECRQUPSS
	CSIBaudEmulation
	CSIFontSelection
	CSIResetMargins
	CSIREP // repeat preceding printable
	CSIVPR
	CSITBC
)

// CSICommand carries a decoded CSI command with its parameter list (raw,
// for subparameter-aware dialects like SGR) and any intermediate/private
// prefix bytes.
type CSICommand struct {
	Kind         CSIKind
	Params       []int
	RawParams    []string
	Private      byte
	Intermediate byte
}

// SGRKind enumerates the logical SGR attribute changes.
type SGRKind int

const (
	SGRReset SGRKind = iota
	SGRIntensity // Bold/Faint/Normal, value carries which
	SGRItalic
	SGRUnderline // value carries UnderlineStyle
	SGRBlinkRate // 0=off,1=slow,2=fast
	SGRInverse
	SGRConcealed
	SGRCrossedOut
	SGROverlined
	SGRForeground
	SGRBackground
	SGRFontSlot
)

// SGRCommand carries one logical SGR change.
type SGRCommand struct {
	Kind  SGRKind
	On    bool
	Value int
	Color icy.Color
}

// DECMode names a DEC private mode toggled by CSI ?h/?l.
type DECMode int

const (
	DECModeCursorVisible DECMode = iota
	DECModeAutoWrap
	DECModeOriginMode
	DECModeReverseVideo
	DECModeInsertReplace
	DECModeLeftRightMargin
	DECModeVT200Mouse
	DECModeBracketedPaste
	DECModeColumn132
	DECModeUnknown
)

// DECModeSetCommand records a DEC private mode being set or reset.
type DECModeSetCommand struct {
	Mode DECMode
	Set  bool
	Raw  int // the numeric mode, for DECModeUnknown
}

// ANSIModeSetCommand records an ANSI (non-DEC, `CSI Ps h/l`) mode toggle.
type ANSIModeSetCommand struct {
	Mode int
	Set  bool
}

// OSCKind enumerates the recognized OSC command families.
type OSCKind int

const (
	OSCSetIconAndTitle OSCKind = iota
	OSCSetIconName
	OSCSetWindowTitle
	OSCSetPalette
	OSCHyperlink
	OSCOther
)

// OSCCommand carries a decoded OSC payload.
type OSCCommand struct {
	Kind    OSCKind
	Num     int
	Payload string
}

// TerminalCommand is the tagged-struct union every dialect emits through
// CommandSink.Emit. Exactly one field is meaningful, selected by Kind.
type TerminalCommand struct {
	Kind CommandKind

	Printable []byte
	C0        C0
	Esc       EscCommand
	CSI       CSICommand
	SGR       SGRCommand
	DECMode   DECModeSetCommand
	ANSIMode  ANSIModeSetCommand
	OSC       OSCCommand
	String    string // DcsString / ApsString / Unknown payload
}
