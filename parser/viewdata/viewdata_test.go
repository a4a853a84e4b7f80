package viewdata

import (
	"testing"

	icy "github.com/icy-engine/icy-core"
	"github.com/icy-engine/icy-core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vdSink collects Viewdata attribute events via the EmitViewData hook.
type vdSink struct {
	parser.BaseSink
	attrs []Command
}

func (s *vdSink) EmitViewData(cmd any) bool {
	if c, ok := cmd.(Command); ok {
		s.attrs = append(s.attrs, c)
		return true
	}
	return false
}

func TestAlphaColorCodes(t *testing.T) {
	s := &vdSink{}
	New().Parse([]byte{0x11, 'A'}, s)

	require.Len(t, s.attrs, 1)
	assert.Equal(t, KindAlphaColor, s.attrs[0].Kind)
	assert.Equal(t, icy.PaletteIndex(2), s.attrs[0].Color)
	require.Len(t, s.Commands, 1)
	assert.Equal(t, []byte("A"), s.Commands[0].Printable)
}

func TestGraphicsModeSwitchesColorKind(t *testing.T) {
	s := &vdSink{}
	New().Parse([]byte{0x1C, 0x12, 0x1F, 0x12}, s)

	require.Len(t, s.attrs, 4)
	assert.Equal(t, KindContiguousGraphics, s.attrs[0].Kind)
	assert.Equal(t, KindGraphicsColor, s.attrs[1].Kind, "after graphics-on, color codes select mosaic colors")
	assert.Equal(t, KindReleaseGraphics, s.attrs[2].Kind)
	assert.Equal(t, KindAlphaColor, s.attrs[3].Kind, "release returns to alphanumeric colors")
}

func TestFlashAndHeightCodes(t *testing.T) {
	s := &vdSink{}
	New().Parse([]byte{0x17, 0x18, 0x1A, 0x19}, s)

	kinds := []Kind{KindFlash, KindSteady, KindDoubleHeight, KindNormalHeight}
	require.Len(t, s.attrs, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, s.attrs[i].Kind)
	}
}

func TestOrdinaryControlsKeepC0Meaning(t *testing.T) {
	s := &vdSink{}
	New().Parse([]byte("a\r\n"), s)

	require.Len(t, s.Commands, 3)
	assert.Equal(t, parser.C0CR, s.Commands[1].C0)
	assert.Equal(t, parser.C0LF, s.Commands[2].C0)
}

func TestSinkWithoutViewDataHookGetsUnknown(t *testing.T) {
	s := &parser.BaseSink{}
	New().Parse([]byte{0x11}, s)

	require.Len(t, s.Commands, 1)
	assert.Equal(t, parser.CmdUnknown, s.Commands[0].Kind)
}
