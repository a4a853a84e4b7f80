package atascii

import (
	"testing"

	"github.com/icy-engine/icy-core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighBitMeansInverseVideo(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte{'A' | 0x80}, sink)

	require.Len(t, sink.Commands, 3)
	assert.Equal(t, parser.SGRInverse, sink.Commands[0].SGR.Kind)
	assert.True(t, sink.Commands[0].SGR.On)
	assert.Equal(t, []byte("A"), sink.Commands[1].Printable)
	assert.False(t, sink.Commands[2].SGR.On, "inverse is per cell, cleared after the glyph")
}

func TestEOLEmitsCRLF(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte{'a', 0x9B, 'b'}, sink)

	require.Len(t, sink.Commands, 4)
	assert.Equal(t, parser.C0CR, sink.Commands[1].C0)
	assert.Equal(t, parser.C0LF, sink.Commands[2].C0)
}

func TestCursorControls(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte{0x1C, 0x1D, 0x1E, 0x1F}, sink)

	wantKinds := []parser.CSIKind{parser.CSICUU, parser.CSICUD, parser.CSICUB, parser.CSICUF}
	require.Len(t, sink.Commands, len(wantKinds))
	for i, k := range wantKinds {
		assert.Equal(t, k, sink.Commands[i].CSI.Kind)
	}
}

func TestClearScreenEmitsEraseAndHome(t *testing.T) {
	sink := &parser.BaseSink{}
	New().Parse([]byte{0x7D}, sink)

	require.Len(t, sink.Commands, 2)
	assert.Equal(t, parser.CSIED, sink.Commands[0].CSI.Kind)
	assert.Equal(t, parser.CSICUP, sink.Commands[1].CSI.Kind)
}

func TestDecodeByteSplitsGlyphAndFlag(t *testing.T) {
	g, inv := DecodeByte(0xC1)
	assert.Equal(t, byte(0x41), g)
	assert.True(t, inv)

	g, inv = DecodeByte(0x41)
	assert.Equal(t, byte(0x41), g)
	assert.False(t, inv)
}
