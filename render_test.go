package icy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBufferWithCell(attr TextAttribute) *Buffer {
	b := NewBuffer(Size{Width: 2, Height: 1})
	b.LayerAt(0).SetChar(Position{0, 0}, AttributedChar{Ch: 'X', Attribute: attr})
	return b
}

func TestRenderIsDeterministic(t *testing.T) {
	b := testBufferWithCell(TextAttribute{Foreground: PaletteIndex(15), Background: PaletteIndex(1)})
	rect := Rectangle{Size: Size{Width: 2, Height: 1}}
	_, p1 := b.RenderRegionToRGBA(rect, RenderOptions{BlinkOn: true})
	_, p2 := b.RenderRegionToRGBA(rect, RenderOptions{BlinkOn: true})
	require.True(t, bytes.Equal(p1, p2))
}

func TestRenderPixelExtentMatchesFontCells(t *testing.T) {
	b := NewBuffer(Size{Width: 4, Height: 2})
	font := b.GetFont(0)
	rect := Rectangle{Size: Size{Width: 4, Height: 2}}
	size, pix := b.RenderRegionToRGBA(rect, RenderOptions{BlinkOn: true})

	assert.Equal(t, 4*font.Size().Width, size.Width)
	assert.Equal(t, 2*font.Size().Height, size.Height)
	assert.Len(t, pix, size.Width*size.Height*4)
}

func TestScanLineModeDoublesHeight(t *testing.T) {
	b := NewBuffer(Size{Width: 1, Height: 1})
	font := b.GetFont(0)
	rect := Rectangle{Size: Size{Width: 1, Height: 1}}
	size, _ := b.RenderRegionToRGBA(rect, RenderOptions{BlinkOn: true, OverrideScanLines: true})
	assert.Equal(t, 2*font.Size().Height, size.Height)
}

func TestBlinkingCellHiddenInOffPhase(t *testing.T) {
	attr := TextAttribute{Foreground: PaletteIndex(15), Background: PaletteIndex(0), Attr: AttrBlink}
	b := testBufferWithCell(attr)
	rect := Rectangle{Size: Size{Width: 1, Height: 1}}

	_, off := b.RenderRegionToRGBA(rect, RenderOptions{BlinkOn: false})
	bg := b.Palette().At(0)
	for i := 0; i < len(off); i += 4 {
		assert.Equal(t, bg.R, off[i])
		assert.Equal(t, bg.G, off[i+1])
		assert.Equal(t, bg.B, off[i+2])
	}

	_, on := b.RenderRegionToRGBA(rect, RenderOptions{BlinkOn: true})
	assert.False(t, bytes.Equal(off, on), "the visible blink phase must differ from the hidden one")
}

func TestSelectionOverrideColors(t *testing.T) {
	b := testBufferWithCell(TextAttribute{Foreground: PaletteIndex(15), Background: PaletteIndex(0)})
	mask := NewSelectionMask()
	mask.AddRectangle(Rectangle{Size: Size{Width: 1, Height: 1}})

	rect := Rectangle{Size: Size{Width: 1, Height: 1}}
	_, pix := b.RenderRegionToRGBA(rect, RenderOptions{
		BlinkOn:             true,
		Selection:           mask,
		HasSelectionColors:  true,
		SelectionForeground: RGB{R: 1, G: 2, B: 3},
		SelectionBackground: RGB{R: 4, G: 5, B: 6},
	})

	seenBg := false
	for i := 0; i < len(pix); i += 4 {
		rgb := RGB{R: pix[i], G: pix[i+1], B: pix[i+2]}
		assert.Contains(t, []RGB{{1, 2, 3}, {4, 5, 6}}, rgb, "selected cells paint only with the override colors")
		if rgb == (RGB{4, 5, 6}) {
			seenBg = true
		}
	}
	assert.True(t, seenBg)
}

func TestInverseAttributeSwapsColors(t *testing.T) {
	plain := testBufferWithCell(TextAttribute{Foreground: PaletteIndex(15), Background: PaletteIndex(1)})
	inverted := testBufferWithCell(TextAttribute{Foreground: PaletteIndex(15), Background: PaletteIndex(1), Attr: AttrInverse})
	rect := Rectangle{Size: Size{Width: 1, Height: 1}}

	_, p1 := b2pix(plain, rect)
	_, p2 := b2pix(inverted, rect)
	assert.False(t, bytes.Equal(p1, p2))
}

func b2pix(b *Buffer, rect Rectangle) (Size, []byte) {
	return b.RenderRegionToRGBA(rect, RenderOptions{BlinkOn: true})
}
