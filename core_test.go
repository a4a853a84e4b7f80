package icy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferGetCharCompositesTopDown(t *testing.T) {
	b := NewBuffer(Size{Width: 4, Height: 2})
	bottom := b.LayerAt(0)
	bottom.SetChar(Position{0, 0}, AttributedChar{Ch: 'A', Attribute: TextAttribute{Foreground: PaletteIndex(1)}})

	es := NewEditState(b)
	require.NoError(t, es.AddLayer(1, "Top"))
	top := b.LayerAt(1)
	top.Properties.Mode = ModeChars
	top.SetChar(Position{0, 0}, AttributedChar{Ch: 'B', Attribute: TextAttribute{Foreground: PaletteIndex(2)}})

	got := b.GetChar(Position{0, 0})
	assert.Equal(t, rune('B'), got.Ch, "ModeChars layer should override only the glyph")
	assert.Equal(t, PaletteIndex(1), got.Attribute.Foreground, "ModeChars layer must not override color")
}

func TestBufferGetCharSkipsImageLayer(t *testing.T) {
	b := NewBuffer(Size{Width: 2, Height: 2})
	b.LayerAt(0).SetChar(Position{0, 0}, AttributedChar{Ch: 'X', Attribute: TextAttribute{Foreground: PaletteIndex(3)}})

	es := NewEditState(b)
	require.NoError(t, es.AddLayer(1, "Pic"))
	img := b.LayerAt(1)
	img.Role = RoleImage
	img.SetChar(Position{0, 0}, AttributedChar{Ch: 'Z'})

	got := b.GetChar(Position{0, 0})
	assert.Equal(t, rune('X'), got.Ch, "Image-role layers must not participate in compositing")
}

func TestBufferVersionMonotonic(t *testing.T) {
	b := NewBuffer(Size{Width: 3, Height: 3})
	v0 := b.Version()
	es := NewEditState(b)
	require.NoError(t, es.SetChar(Position{0, 0}, AttributedChar{Ch: 'Q'}))
	v1 := b.Version()
	require.NoError(t, es.SetChar(Position{1, 0}, AttributedChar{Ch: 'R'}))
	v2 := b.Version()

	assert.Greater(t, v1, v0)
	assert.Greater(t, v2, v1)
}

func TestPaletteInsertColorRGBIsIdempotent(t *testing.T) {
	p := NewEmptyPalette(PaletteModeRGB)
	i1 := p.InsertColorRGB(10, 20, 30)
	i2 := p.InsertColorRGB(10, 20, 30)
	i3 := p.InsertColorRGB(40, 50, 60)

	assert.Equal(t, i1, i2, "inserting the same RGB twice must return the same index")
	assert.NotEqual(t, i1, i3)
	assert.Equal(t, 2, p.Len())
}

func TestInvisibleCellsCompareEqualRegardlessOfColor(t *testing.T) {
	a := AttributedChar{Ch: 'x', Attribute: TextAttribute{Attr: AttrInvisible, Foreground: PaletteIndex(1)}}
	b := AttributedChar{Ch: 'y', Attribute: TextAttribute{Attr: AttrInvisible, Foreground: PaletteIndex(9)}}
	assert.True(t, a.Equal(b))

	visible := AttributedChar{Ch: 'x', Attribute: TextAttribute{Foreground: PaletteIndex(1)}}
	assert.False(t, a.Equal(visible))
}

func TestSetCharUndoRoundTrip(t *testing.T) {
	b := NewBuffer(Size{Width: 5, Height: 5})
	es := NewEditState(b)
	before := b.GetChar(Position{2, 2})

	require.NoError(t, es.SetChar(Position{2, 2}, AttributedChar{Ch: 'Q', Attribute: TextAttribute{Foreground: PaletteIndex(4)}}))
	require.True(t, es.CanUndo())

	require.NoError(t, es.Undo())
	after := b.GetChar(Position{2, 2})
	assert.True(t, before.Equal(after), "undo must restore the prior cell exactly")
	assert.False(t, es.CanUndo())
	assert.True(t, es.CanRedo())

	require.NoError(t, es.Redo())
	restored := b.GetChar(Position{2, 2})
	assert.Equal(t, rune('Q'), restored.Ch)
}

func TestAddRemoveLayerUndoRoundTrip(t *testing.T) {
	b := NewBuffer(Size{Width: 3, Height: 3})
	es := NewEditState(b)
	n0 := len(b.Layers())

	require.NoError(t, es.AddLayer(1, "New"))
	assert.Equal(t, n0+1, len(b.Layers()))

	require.NoError(t, es.Undo())
	assert.Equal(t, n0, len(b.Layers()), "undoing AddLayer must remove it again")

	require.NoError(t, es.Redo())
	assert.Equal(t, n0+1, len(b.Layers()))
}

func TestResizeBufferUndoRoundTrip(t *testing.T) {
	b := NewBuffer(Size{Width: 10, Height: 10})
	es := NewEditState(b)
	orig := b.Size()

	require.NoError(t, es.ResizeBuffer(Size{Width: 20, Height: 5}))
	assert.Equal(t, Size{Width: 20, Height: 5}, b.Size())

	require.NoError(t, es.Undo())
	assert.Equal(t, orig, b.Size())
}

func TestRowColumnInsertDeleteUndoRoundTrip(t *testing.T) {
	b := NewBuffer(Size{Width: 4, Height: 4})
	es := NewEditState(b)
	es.Buffer.LayerAt(0).SetChar(Position{1, 1}, AttributedChar{Ch: 'M', Attribute: TextAttribute{Foreground: PaletteIndex(5)}})
	before := b.GetChar(Position{1, 1})

	require.NoError(t, es.InsertRow(0))
	moved := b.GetChar(Position{1, 2})
	assert.Equal(t, rune('M'), moved.Ch, "inserting a row above must shift content down")

	require.NoError(t, es.Undo())
	restored := b.GetChar(Position{1, 1})
	assert.True(t, before.Equal(restored))

	require.NoError(t, es.InsertColumn(0))
	movedCol := b.GetChar(Position{2, 1})
	assert.Equal(t, rune('M'), movedCol.Ch)

	require.NoError(t, es.Undo())
	restoredCol := b.GetChar(Position{1, 1})
	assert.True(t, before.Equal(restoredCol))
}

func TestSwitchPaletteReversedUndo(t *testing.T) {
	b := NewBuffer(Size{Width: 2, Height: 2})
	es := NewEditState(b)
	oldPalette := b.Palette()

	newPalette := NewEmptyPalette(PaletteModeRGB)
	newPalette.InsertColorRGB(9, 9, 9)
	require.NoError(t, es.SwitchPalette(newPalette))
	assert.Same(t, newPalette, b.Palette())

	require.NoError(t, es.Undo())
	assert.Same(t, oldPalette, b.Palette(), "undo of SwitchPalette must restore the exact prior palette")

	require.NoError(t, es.Redo())
	assert.Same(t, newPalette, b.Palette())
}

func TestInverseSelectionReversedUndo(t *testing.T) {
	b := NewBuffer(Size{Width: 3, Height: 3})
	es := NewEditState(b)
	es.SelectionMask.AddRectangle(Rectangle{Start: Position{0, 0}, Size: Size{Width: 1, Height: 1}})
	before := es.SelectionMask.Clone()

	require.NoError(t, es.InverseSelection())
	assert.False(t, es.SelectionMask.IsSelected(Position{0, 0}))
	assert.True(t, es.SelectionMask.IsSelected(Position{1, 1}))

	require.NoError(t, es.Undo())
	assert.True(t, es.SelectionMask.IsSelected(Position{0, 0}))
	assert.False(t, es.SelectionMask.IsSelected(Position{1, 1}))
	_ = before
}

func TestAtomicUndoGroupsMultipleEditsIntoOneStep(t *testing.T) {
	b := NewBuffer(Size{Width: 5, Height: 1})
	es := NewEditState(b)

	es.BeginAtomicUndo("Fill Row", OperationType(0))
	require.NoError(t, es.SetChar(Position{0, 0}, AttributedChar{Ch: 'A'}))
	require.NoError(t, es.SetChar(Position{1, 0}, AttributedChar{Ch: 'B'}))
	require.NoError(t, es.SetChar(Position{2, 0}, AttributedChar{Ch: 'C'}))
	es.EndAtomicUndo()

	assert.Equal(t, rune('A'), b.GetChar(Position{0, 0}).Ch)
	assert.Equal(t, rune('C'), b.GetChar(Position{2, 0}).Ch)

	require.NoError(t, es.Undo())
	assert.False(t, b.GetChar(Position{0, 0}).IsVisible(), "undoing the atomic group must revert every child edit")
	assert.False(t, b.GetChar(Position{1, 0}).IsVisible())
	assert.False(t, b.GetChar(Position{2, 0}).IsVisible())

	require.NoError(t, es.Redo())
	assert.Equal(t, rune('A'), b.GetChar(Position{0, 0}).Ch)
	assert.Equal(t, rune('C'), b.GetChar(Position{2, 0}).Ch)
}

func TestAtomicUndoWithNoChildrenIsDroppedSilently(t *testing.T) {
	b := NewBuffer(Size{Width: 2, Height: 2})
	es := NewEditState(b)

	es.BeginAtomicUndo("Empty", OperationType(0))
	es.EndAtomicUndo()

	assert.False(t, es.CanUndo(), "an atomic group recording zero children must not push an undo step")
}

func TestRedoStackClearedByNewMutation(t *testing.T) {
	b := NewBuffer(Size{Width: 3, Height: 1})
	es := NewEditState(b)

	require.NoError(t, es.SetChar(Position{0, 0}, AttributedChar{Ch: 'A'}))
	require.NoError(t, es.Undo())
	require.True(t, es.CanRedo())

	require.NoError(t, es.SetChar(Position{1, 0}, AttributedChar{Ch: 'B'}))
	assert.False(t, es.CanRedo(), "a fresh mutation must clear the redo stack")
}

func TestDefaultTabStopsEveryEightColumns(t *testing.T) {
	b := NewBuffer(Size{Width: 40, Height: 1})
	ts := b.TerminalState()
	assert.Contains(t, ts.TabStops, 8)
	assert.Contains(t, ts.TabStops, 16)
	assert.NotContains(t, ts.TabStops, 5)
}

func TestPaletteCloneIsIndependentDeepCopy(t *testing.T) {
	p := NewPalette()
	clone := p.Clone()
	clone.InsertColorRGB(1, 2, 3)

	if diff := cmp.Diff(p.Entries(), ANSIColorsRGB[:]); diff != "" {
		t.Errorf("original palette must be unaffected by mutating its clone (-got +want):\n%s", diff)
	}
	assert.Equal(t, 17, clone.Len())
	assert.Equal(t, 16, p.Len())
}
