package ansi

import (
	"testing"

	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, input string) *parser.BaseSink {
	t.Helper()
	sink := &parser.BaseSink{}
	d := New()
	d.Parse([]byte(input), sink)
	require.Empty(t, sink.Errors)
	return sink
}

// Bold+red 'A', a plain space, then reset and 'B'.
func TestScenarioBoldRedThenReset(t *testing.T) {
	sink := parseAll(t, "\x1b[1;31mA \x1b[0mB")

	require.Len(t, sink.Commands, 6)
	assert.Equal(t, parser.SGRIntensity, sink.Commands[0].SGR.Kind)
	assert.True(t, sink.Commands[0].SGR.On)
	assert.Equal(t, parser.SGRForeground, sink.Commands[1].SGR.Kind)
	assert.Equal(t, icy.PaletteIndex(1), sink.Commands[1].SGR.Color)
	assert.Equal(t, []byte("A"), sink.Commands[2].Printable)
	assert.Equal(t, []byte(" "), sink.Commands[3].Printable)
	assert.Equal(t, parser.SGRReset, sink.Commands[4].SGR.Kind)
	assert.Equal(t, []byte("B"), sink.Commands[5].Printable)
}

// Clear screen, cursor position, then a printable.
func TestScenarioClearAndPosition(t *testing.T) {
	sink := parseAll(t, "\x1b[2J\x1b[5;10HX")

	require.Len(t, sink.Commands, 3)
	require.Equal(t, parser.CmdCSI, sink.Commands[0].Kind)
	assert.Equal(t, parser.CSIED, sink.Commands[0].CSI.Kind)
	assert.Equal(t, []int{2}, sink.Commands[0].CSI.Params)

	require.Equal(t, parser.CmdCSI, sink.Commands[1].Kind)
	assert.Equal(t, parser.CSICUP, sink.Commands[1].CSI.Kind)
	assert.Equal(t, []int{5, 10}, sink.Commands[1].CSI.Params)

	assert.Equal(t, []byte("X"), sink.Commands[2].Printable)
}

// 24-bit truecolor foreground via semicolon parameters.
func TestScenarioTruecolorForeground(t *testing.T) {
	sink := parseAll(t, "\x1b[38;2;255;128;64m#")

	require.Len(t, sink.Commands, 2)
	assert.Equal(t, parser.SGRForeground, sink.Commands[0].SGR.Kind)
	col := sink.Commands[0].SGR.Color
	require.True(t, col.IsTrueColor())
	assert.Equal(t, icy.RGB{R: 255, G: 128, B: 64}, col.RGBValue())
	assert.Equal(t, []byte("#"), sink.Commands[1].Printable)
}

func TestExtendedColorColonSubparamForm(t *testing.T) {
	sink := parseAll(t, "\x1b[38:2:255:128:64m")
	require.Len(t, sink.Commands, 1)
	col := sink.Commands[0].SGR.Color
	assert.True(t, col.IsTrueColor())
	assert.Equal(t, icy.RGB{R: 255, G: 128, B: 64}, col.RGBValue())
}

func TestExtendedColorIndexed256Form(t *testing.T) {
	sink := parseAll(t, "\x1b[38;5;200m")
	require.Len(t, sink.Commands, 1)
	col := sink.Commands[0].SGR.Color
	assert.False(t, col.IsTrueColor())
	assert.Equal(t, uint32(200), col.Index())
}

// SGR composition: CSI 0 m followed by any SGR
// sequence must emit the same two logical commands regardless of the
// attribute state that preceded the reset.
func TestSGRCompositionAfterReset(t *testing.T) {
	baseline := parseAll(t, "\x1b[0m\x1b[32m")
	afterBold := parseAll(t, "\x1b[1m\x1b[0m\x1b[32m")

	require.Len(t, baseline.Commands, 2)
	require.Len(t, afterBold.Commands, 3)
	// Drop the leading bold command and compare what follows the reset.
	assert.Equal(t, baseline.Commands[0].SGR, afterBold.Commands[1].SGR)
	assert.Equal(t, baseline.Commands[1].SGR, afterBold.Commands[2].SGR)
}

func TestCSIDefaultParamsAbsentParamsAreZero(t *testing.T) {
	sink := parseAll(t, "\x1b[H")
	require.Len(t, sink.Commands, 1)
	assert.Equal(t, parser.CSICUP, sink.Commands[0].CSI.Kind)
	assert.Equal(t, []int{0}, sink.Commands[0].CSI.Params, "an omitted CSI parameter tokenizes to a bare 0, not an explicit value")

	assert.Equal(t, 1, parser.GetParam(sink.Commands[0].CSI.Params, 0, 1), "GetParam supplies the CUP default of 1")
}

func TestGetParamDefaultsAndPassthrough(t *testing.T) {
	assert.Equal(t, 5, parser.GetParam(nil, 0, 5))
	assert.Equal(t, 3, parser.GetParam([]int{3}, 0, 1))
	assert.Equal(t, 1, parser.GetParam([]int{0}, 0, 1), "an explicit 0 parameter still resolves to the command's default")
}

func TestDECPrivateModeSet(t *testing.T) {
	sink := parseAll(t, "\x1b[?25h\x1b[?25l")
	require.Len(t, sink.Commands, 2)
	assert.Equal(t, parser.DECModeCursorVisible, sink.Commands[0].DECMode.Mode)
	assert.True(t, sink.Commands[0].DECMode.Set)
	assert.False(t, sink.Commands[1].DECMode.Set)
}

func TestPlainEscapeSequencesDecode(t *testing.T) {
	sink := parseAll(t, "\x1b7\x1b8\x1bD\x1bE\x1bH\x1bM\x1bc")

	want := []parser.EscKind{
		parser.EscSaveCursor, parser.EscRestoreCursor, parser.EscIndex,
		parser.EscNextLine, parser.EscSetTab, parser.EscReverseIndex, parser.EscReset,
	}
	require.Len(t, sink.Commands, len(want))
	for i, k := range want {
		require.Equal(t, parser.CmdEsc, sink.Commands[i].Kind)
		assert.Equal(t, k, sink.Commands[i].Esc.Kind, "sequence %d", i)
	}
}

func TestUnsupportedEscapeReportsButContinues(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte("\x1bQok"), sink)

	require.NotEmpty(t, sink.Errors)
	assert.Equal(t, parser.ErrUnsupportedEscape, sink.Errors[0].Kind)
	// The escape still yields a command, then parsing continues.
	assert.Equal(t, parser.CmdEsc, sink.Commands[0].Kind)
	assert.Equal(t, []byte("o"), sink.Commands[1].Printable)
}

func TestIntermediateDispatchedFinals(t *testing.T) {
	cases := []struct {
		input string
		kind  parser.CSIKind
	}{
		{"\x1b[2$w", parser.CSITabStopReport},
		{"\x1b[1;1;1;2;10*y", parser.CSIDECRQCRA},
		{"\x1b[5*z", parser.CSIInvokeMacro},
		{"\x1b[0;3*r", parser.CSIBaudEmulation},
		{"\x1b[32;1;1;4;4$x", parser.CSIRectFill},
		{"\x1b[1;1;4;4$z", parser.CSIRectErase},
		{"\x1b[1;1;4;4${", parser.CSISelectiveErase},
		{"\x1b[0;30 D", parser.CSIFontSelection},
		{"\x1b[=r", parser.CSIResetMargins},
		{"\x1b[3b", parser.CSIREP},
		{"\x1b[2e", parser.CSIVPR},
		{"\x1b[0g", parser.CSITBC},
	}
	for _, tc := range cases {
		sink := parseAll(t, tc.input)
		require.Len(t, sink.Commands, 1, "input %q", tc.input)
		require.Equal(t, parser.CmdCSI, sink.Commands[0].Kind, "input %q", tc.input)
		assert.Equal(t, tc.kind, sink.Commands[0].CSI.Kind, "input %q", tc.input)
	}
}

func TestOSCHyperlinkDecodes(t *testing.T) {
	sink := parseAll(t, "\x1b]8;;https://example.net\x1b\\")
	require.Len(t, sink.Commands, 1)
	require.Equal(t, parser.CmdOSC, sink.Commands[0].Kind)
	assert.Equal(t, parser.OSCHyperlink, sink.Commands[0].OSC.Kind)
	assert.Equal(t, ";https://example.net", sink.Commands[0].OSC.Payload)
}

func TestDCSAndAPSPassThroughAsStrings(t *testing.T) {
	sink := parseAll(t, "\x1bP1;0;0!zABC\x1b\\\x1b_meta\x1b\\")
	require.Len(t, sink.Commands, 2)
	assert.Equal(t, parser.CmdDcsString, sink.Commands[0].Kind)
	assert.Equal(t, "1;0;0!zABC", sink.Commands[0].String)
	assert.Equal(t, parser.CmdApsString, sink.Commands[1].Kind)
	assert.Equal(t, "meta", sink.Commands[1].String)
}

func TestSGRUnderlineVariants(t *testing.T) {
	sink := parseAll(t, "\x1b[4m\x1b[4:2m\x1b[24m")
	require.Len(t, sink.Commands, 3)
	assert.Equal(t, int(icy.UnderlineSingle), sink.Commands[0].SGR.Value)
	assert.Equal(t, int(icy.UnderlineDouble), sink.Commands[1].SGR.Value)
	assert.Equal(t, int(icy.UnderlineNone), sink.Commands[2].SGR.Value)
}

func TestSGRBlinkRates(t *testing.T) {
	sink := parseAll(t, "\x1b[5m\x1b[6m\x1b[25m")
	require.Len(t, sink.Commands, 3)
	assert.Equal(t, 1, sink.Commands[0].SGR.Value)
	assert.Equal(t, 2, sink.Commands[1].SGR.Value)
	assert.Equal(t, 0, sink.Commands[2].SGR.Value)
}
