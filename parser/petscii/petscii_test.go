package petscii

import (
	"testing"

	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorCodesSelectForeground(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte{0x05, 'A', 0x1C, 'B'}, sink)

	require.Len(t, sink.Commands, 4)
	assert.Equal(t, parser.SGRForeground, sink.Commands[0].SGR.Kind)
	assert.Equal(t, icy.PaletteIndex(1), sink.Commands[0].SGR.Color)
	assert.Equal(t, []byte("A"), sink.Commands[1].Printable)
	assert.Equal(t, icy.PaletteIndex(2), sink.Commands[2].SGR.Color)
}

func TestReverseVideoToggles(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte{0x12, 'x', 0x92}, sink)

	require.Len(t, sink.Commands, 3)
	assert.True(t, sink.Commands[0].SGR.On)
	assert.Equal(t, parser.SGRInverse, sink.Commands[0].SGR.Kind)
	assert.False(t, sink.Commands[2].SGR.On)
}

func TestCursorAndScreenControls(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte{0x11, 0x91, 0x1D, 0x9D, 0x13, 0x93}, sink)

	wantKinds := []parser.CSIKind{parser.CSICUD, parser.CSICUU, parser.CSICUF, parser.CSICUB, parser.CSICUP, parser.CSIED, parser.CSICUP}
	require.Len(t, sink.Commands, len(wantKinds))
	for i, k := range wantKinds {
		assert.Equal(t, k, sink.Commands[i].CSI.Kind, "command %d", i)
	}
}

func TestReturnEmitsCRLF(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte{0x0D}, sink)

	require.Len(t, sink.Commands, 2)
	assert.Equal(t, parser.C0CR, sink.Commands[0].C0)
	assert.Equal(t, parser.C0LF, sink.Commands[1].C0)
}

func TestPrintableASCIIPassesThrough(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte("HELLO 123"), sink)

	var got []byte
	for _, c := range sink.Commands {
		require.Equal(t, parser.CmdPrintable, c.Kind)
		got = append(got, c.Printable...)
	}
	assert.Equal(t, []byte("HELLO 123"), got)
}
