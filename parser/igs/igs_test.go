package igs

import (
	"bytes"
	"testing"

	"github.com/icy-engine/icy-core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A classic IG transcript: initialize, set line color 2, draw a diagonal.
func TestScenarioInitColorLine(t *testing.T) {
	d := New(320, 200)
	sink := &parser.BaseSink{}
	d.Parse([]byte("I>0:C>0,2:L>10,10,50,50:"), sink)

	assert.Equal(t, byte(2), d.Executor.PenColor)
	scr := d.Executor.Screen
	for _, p := range [][2]int{{10, 10}, {30, 30}, {50, 50}} {
		assert.Equal(t, byte(2), scr.Pixels[p[1]*scr.Width+p[0]], "pixel (%d,%d)", p[0], p[1])
	}
	assert.Equal(t, byte(0), scr.Pixels[0], "pixels off the line stay background")
}

func TestCommandsSplitAcrossParseCalls(t *testing.T) {
	d := New(64, 64)
	sink := &parser.BaseSink{}
	d.Parse([]byte("L>1,1,"), sink)
	d.Parse([]byte("10,1:"), sink)

	scr := d.Executor.Screen
	assert.Equal(t, byte(1), scr.Pixels[1*scr.Width+5])
}

func TestWriteTextReadsUntilAt(t *testing.T) {
	d := New(64, 64)
	sink := &parser.BaseSink{}
	var got Command
	d.Parse([]byte("W>5,10:hi there@"), &captureSink{BaseSink: sink, last: &got})

	assert.Equal(t, CmdWriteText, got.Kind)
	assert.Equal(t, []int{5, 10}, got.Params)
	assert.Equal(t, "hi there", got.Text)
}

// captureSink records the last IGS command delivered via EmitViewData.
type captureSink struct {
	*parser.BaseSink
	last *Command
}

func (s *captureSink) EmitViewData(cmd any) bool {
	if c, ok := cmd.(Command); ok {
		*s.last = c
	}
	return true
}

func TestPlainTextOutsideCommandsPassesThrough(t *testing.T) {
	d := New(16, 16)
	sink := &parser.BaseSink{}
	d.Parse([]byte("1+1"), sink)
	d.Flush(sink)

	var printed []byte
	for _, c := range sink.Commands {
		if c.Kind == parser.CmdPrintable {
			printed = append(printed, c.Printable...)
		}
	}
	assert.Equal(t, []byte("1+1"), printed)
}

// Geometric determinism: identical command streams over
// identical initial state produce byte-identical pixel buffers.
func TestGeometricDeterminism(t *testing.T) {
	stream := []byte("I>0:C>0,3:B>2,2,30,20:F>10,10:O>16,16,8:z>1,1,10,5,20,1:")
	run := func() []byte {
		d := New(48, 48)
		d.Parse(stream, &parser.BaseSink{})
		return d.Executor.Screen.Pixels
	}
	require.True(t, bytes.Equal(run(), run()))
}

func TestFilledRectangleUsesFillColorAndPattern(t *testing.T) {
	d := New(32, 32)
	sink := &parser.BaseSink{}
	d.Parse([]byte("A>5,0:Z>1,1,4,4:"), sink)

	scr := d.Executor.Screen
	assert.Equal(t, byte(5), scr.Pixels[2*scr.Width+2])
}

func TestFloodFillStopsAtBoundary(t *testing.T) {
	d := New(32, 32)
	sink := &parser.BaseSink{}
	d.Parse([]byte("C>0,4:B>0,0,10,10:A>7,0:F>5,5:"), sink)

	scr := d.Executor.Screen
	assert.Equal(t, byte(7), scr.Pixels[5*scr.Width+5], "interior filled")
	assert.Equal(t, byte(0), scr.Pixels[15*scr.Width+15], "exterior untouched")
}

func TestXorDrawingMode(t *testing.T) {
	d := New(16, 16)
	sink := &parser.BaseSink{}
	d.Parse([]byte("C>0,3:M>2:L>0,0,7,0:L>0,0,7,0:"), sink)

	scr := d.Executor.Screen
	assert.Equal(t, byte(0), scr.Pixels[3], "drawing the same line twice in XOR mode cancels out")
}

func TestLineTypeMaskSkipsPixels(t *testing.T) {
	d := New(32, 32)
	sink := &parser.BaseSink{}
	d.Parse([]byte("T>2:L>0,0,15,0:"), sink)

	scr := d.Executor.Screen
	lit := 0
	for x := 0; x <= 15; x++ {
		if scr.Pixels[x] != 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
	assert.Less(t, lit, 16, "a dotted line must not light every pixel")
}

func TestBlitScreenMemoryRoundTrip(t *testing.T) {
	d := New(32, 32)
	sink := &parser.BaseSink{}
	// Paint a block, stash it to memory, clear, restore.
	d.Parse([]byte("A>6,0:Z>0,0,7,7:"), sink)
	d.Parse([]byte("X>1,0,0,0,0,8,8:"), sink) // ScreenToMemory
	d.Parse([]byte("s>0:"), sink)
	require.Equal(t, byte(0), d.Executor.Screen.Pixels[3*32+3])
	d.Parse([]byte("X>2,0,0,0,0,8,8:"), sink) // MemoryToScreen
	assert.Equal(t, byte(6), d.Executor.Screen.Pixels[3*32+3])
}

func TestResolutionAspectRatios(t *testing.T) {
	w, h := ResolutionLow.AspectRatio()
	assert.Equal(t, [2]int{338, 372}, [2]int{w, h})
	w, h = ResolutionMedium.AspectRatio()
	assert.Equal(t, [2]int{440, 1000}, [2]int{w, h})
	w, h = ResolutionHigh.AspectRatio()
	assert.Equal(t, [2]int{372, 372}, [2]int{w, h})
}

func TestRIPCommandsShareExecutorPrimitives(t *testing.T) {
	d := NewRIP(64, 64)
	sink := &parser.BaseSink{}
	d.Parse([]byte("|c0,5|l1,1,20,1\n"), sink)

	scr := d.Executor.Screen
	assert.Equal(t, byte(5), scr.Pixels[1*scr.Width+10])
}

func TestTokenizeArgsSignsAndText(t *testing.T) {
	params, text, hasText := tokenizeArgs("-3,+4,10:hello")
	assert.Equal(t, []int{-3, 4, 10}, params)
	assert.True(t, hasText)
	assert.Equal(t, "hello", text)
}
