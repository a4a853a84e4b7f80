package icydraw

import (
	"bytes"
	"image/png"
	"testing"

	icy "github.com/icy-engine/icy-core"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestBuffer constructs a buffer exercising every chunk type: two 100x50
// layers of varied glyphs, a non-default palette entry, a font at slot
// 100, three tags.
func buildTestBuffer(t *testing.T) *icy.Buffer {
	t.Helper()
	b := icy.NewBuffer(icy.Size{Width: 100, Height: 50})
	es := icy.NewEditState(b)
	require.NoError(t, es.AddLayer(1, "Overlay"))

	extra := b.Palette().InsertColorRGB(12, 34, 56)

	bottom := b.LayerAt(0)
	top := b.LayerAt(1)
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x += 3 {
			bottom.SetChar(icy.Position{X: x, Y: y}, icy.AttributedChar{
				Ch:        rune('A' + (x+y)%26),
				Attribute: icy.TextAttribute{Foreground: icy.PaletteIndex(uint32((x + y) % 16)), Background: icy.PaletteIndex(uint32(y % 8))},
			})
		}
	}
	top.Offset = icy.Position{X: 2, Y: 3}
	top.SetChar(icy.Position{X: 0, Y: 0}, icy.AttributedChar{
		Ch:        '█',
		Attribute: icy.TextAttribute{Foreground: icy.PaletteIndex(uint32(extra)), Attr: icy.AttrBold | icy.AttrUnderline},
	})
	top.SetChar(icy.Position{X: 9, Y: 9}, icy.AttributedChar{
		Ch:        'x',
		Attribute: icy.TextAttribute{Foreground: icy.PaletteIndex(9), FontPage: 100},
	})

	f := icy.NewBitFont("block", icy.Size{Width: 8, Height: 16})
	glyph := make([]byte, 16)
	for i := range glyph {
		glyph[i] = 0xAA
	}
	f.SetGlyph('#', glyph)
	b.SetFont(100, f)

	b.SetTags([]icy.Tag{
		{Preview: "NAME", ReplacementValue: "@NAME@", Position: icy.Position{X: 1, Y: 1}, Length: 4, Enabled: true, Role: icy.TagRoleDisplaycode},
		{Preview: "link", ReplacementValue: "https://example.net", Position: icy.Position{X: 5, Y: 2}, Length: 4, Enabled: true, Role: icy.TagRoleHyperlink, Alignment: icy.TagAlignCenter},
		{Preview: "off", Position: icy.Position{X: 0, Y: 49}, Length: 3},
	})
	b.SetSauceMeta(&icy.SauceMetadata{Title: "test piece", Author: "nobody", Group: "none", FontName: "IBM VGA", Comments: []string{"first", "second"}})
	return b
}

// Full save/load round trip.
func TestSaveLoadRoundTrip(t *testing.T) {
	b := buildTestBuffer(t)
	data, err := SaveBuffer(b, SaveOptions{})
	require.NoError(t, err)

	loaded, err := LoadBuffer(data)
	require.NoError(t, err)

	assert.Equal(t, b.Size(), loaded.Size())
	assert.Equal(t, b.BufferType(), loaded.BufferType())
	require.Len(t, loaded.Layers(), 2)

	for li, orig := range b.Layers() {
		got := loaded.Layers()[li]
		assert.Equal(t, orig.Properties.Title, got.Properties.Title, "layer %d title", li)
		assert.Equal(t, orig.Offset, got.Offset, "layer %d offset", li)
		assert.Equal(t, orig.Size(), got.Size(), "layer %d size", li)
		for y := 0; y < orig.Size().Height; y++ {
			for x := 0; x < orig.Size().Width; x++ {
				pos := icy.Position{X: x, Y: y}
				if !orig.CharAt(pos).Equal(got.CharAt(pos)) {
					t.Fatalf("layer %d cell (%d,%d): want %+v got %+v", li, x, y, orig.CharAt(pos), got.CharAt(pos))
				}
			}
		}
	}

	if diff := cmp.Diff(b.Palette().Entries(), loaded.Palette().Entries()); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}

	origFont := b.GetFont(100)
	gotFont := loaded.GetFont(100)
	require.NotNil(t, gotFont)
	assert.Equal(t, origFont.Name(), gotFont.Name())
	assert.Equal(t, origFont.ToPSF2Bytes(), gotFont.ToPSF2Bytes())

	assert.Equal(t, b.Tags(), loaded.Tags())

	require.NotNil(t, loaded.SauceMeta())
	assert.Equal(t, *b.SauceMeta(), *loaded.SauceMeta())
}

// The container must remain a valid PNG any image viewer can decode.
func TestContainerIsDecodablePNG(t *testing.T) {
	b := buildTestBuffer(t)
	data, err := SaveBuffer(b, SaveOptions{MaxPreviewLines: 4})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
}

func TestLoadRejectsNonPNGData(t *testing.T) {
	_, err := LoadBuffer([]byte("not a png at all"))
	require.Error(t, err)
}

func TestUnknownChunkKeywordsAreSkipped(t *testing.T) {
	b := icy.NewBuffer(icy.Size{Width: 8, Height: 4})
	data, err := SaveBuffer(b, SaveOptions{})
	require.NoError(t, err)

	typ, extra, err := encodeTextChunk("BOGUS", []byte{1, 2, 3})
	require.NoError(t, err)
	out, err := spliceTextChunks(data, []rawChunk{{Type: typ, Data: extra}})
	require.NoError(t, err)

	loaded, err := LoadBuffer(out)
	require.NoError(t, err)
	assert.Equal(t, icy.Size{Width: 8, Height: 4}, loaded.Size())
}

func TestLayerKeywordParsing(t *testing.T) {
	idx, part, err := parseLayerKeyword("LAYER_3")
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 0, part)

	idx, part, err = parseLayerKeyword("LAYER_12~4")
	require.NoError(t, err)
	assert.Equal(t, 12, idx)
	assert.Equal(t, 4, part)

	_, _, err = parseLayerKeyword("LAYER_x")
	require.Error(t, err)
}

// Continuation chunks must reassemble exactly: simulate by splitting an
// encoded layer blob at an arbitrary byte and decoding the concatenation.
func TestLayerBlobSplitIsTransparent(t *testing.T) {
	b := buildTestBuffer(t)
	blob := encodeLayer(b.LayerAt(0))
	mid := len(blob) / 2
	var joined bytes.Buffer
	joined.Write(blob[:mid])
	joined.Write(blob[mid:])

	l, err := decodeLayer(joined.Bytes())
	require.NoError(t, err)
	orig := b.LayerAt(0)
	for y := 0; y < orig.Size().Height; y++ {
		for x := 0; x < orig.Size().Width; x++ {
			pos := icy.Position{X: x, Y: y}
			require.True(t, orig.CharAt(pos).Equal(l.CharAt(pos)), "cell (%d,%d)", x, y)
		}
	}
}

func TestImageLayerSixelRoundTrip(t *testing.T) {
	b := icy.NewBuffer(icy.Size{Width: 10, Height: 5})
	img := icy.NewLayer("Picture", icy.Size{Width: 10, Height: 5})
	img.Role = icy.RoleImage
	img.Sixels = []icy.Sixel{{Width: 4, Height: 2, VerticalScale: 1, HorizontalScale: 1, PictureData: []byte{9, 8, 7, 6, 5, 4, 3, 2}}}
	b.ReplaceLayers([]*icy.Layer{icy.NewLayer("Background", icy.Size{Width: 10, Height: 5}), img})

	data, err := SaveBuffer(b, SaveOptions{})
	require.NoError(t, err)
	loaded, err := LoadBuffer(data)
	require.NoError(t, err)

	require.Len(t, loaded.Layers(), 2)
	got := loaded.Layers()[1]
	assert.Equal(t, icy.RoleImage, got.Role)
	require.Len(t, got.Sixels, 1)
	assert.Equal(t, img.Sixels[0], got.Sixels[0])
}
