package pcboard

import (
	"testing"

	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// @X1F sets background nibble 1, foreground nibble
// F (15), followed by five printable cells.
func TestScenarioColorCodeThenText(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte("@X1FHello"), sink)
	require.Empty(t, sink.Errors)

	require.Len(t, sink.Commands, 7)
	assert.Equal(t, parser.SGRBackground, sink.Commands[0].SGR.Kind)
	assert.Equal(t, icy.PaletteIndex(1), sink.Commands[0].SGR.Color)
	assert.Equal(t, parser.SGRForeground, sink.Commands[1].SGR.Kind)
	assert.Equal(t, icy.PaletteIndex(15), sink.Commands[1].SGR.Color)

	want := "Hello"
	for i, r := range want {
		assert.Equal(t, []byte(string(r)), sink.Commands[2+i].Printable)
	}
}

func TestLowercaseXAndHexAccepted(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte("@xae"), sink)
	require.Empty(t, sink.Errors)
	require.Len(t, sink.Commands, 2)
	assert.Equal(t, icy.PaletteIndex(10), sink.Commands[0].SGR.Color)
	assert.Equal(t, icy.PaletteIndex(14), sink.Commands[1].SGR.Color)
}

func TestInvalidHexDigitReportsErrorAndResets(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte("@XZZA"), sink)
	require.NotEmpty(t, sink.Errors)
	assert.Equal(t, parser.ErrInvalidParameter, sink.Errors[0].Kind)
	// After the bad digit resets to ground, the remaining bytes are plain text.
	require.Len(t, sink.Commands, 2)
	assert.Equal(t, []byte("Z"), sink.Commands[0].Printable)
	assert.Equal(t, []byte("A"), sink.Commands[1].Printable)
}

func TestUnknownAtCodePassesThroughAsUnknown(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte("@CLS"), sink)
	require.Len(t, sink.Commands, 3)
	assert.Equal(t, parser.CmdUnknown, sink.Commands[0].Kind)
	assert.Equal(t, []byte("L"), sink.Commands[1].Printable)
	assert.Equal(t, []byte("S"), sink.Commands[2].Printable)
}

func TestCRAndLFEmitAsC0(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte("A\r\n"), sink)
	require.Len(t, sink.Commands, 3)
	assert.Equal(t, []byte("A"), sink.Commands[0].Printable)
	assert.Equal(t, parser.C0CR, sink.Commands[1].C0)
	assert.Equal(t, parser.C0LF, sink.Commands[2].C0)
}
