package icy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaretRightWrapsWithAutoWrap(t *testing.T) {
	b := NewBuffer(Size{Width: 4, Height: 3})
	es := NewEditState(b)
	es.Caret.Position = Position{X: 3, Y: 0}

	es.CaretRight()
	assert.Equal(t, Position{X: 0, Y: 1}, es.Caret.Position)

	b.TerminalState().SetDECMode(DECModeAutoWrap, false)
	es.Caret.Position = Position{X: 3, Y: 1}
	es.CaretRight()
	assert.Equal(t, Position{X: 3, Y: 1}, es.Caret.Position, "without auto-wrap the caret sticks at the margin")
}

func TestCaretLFScrollsAtBottomMargin(t *testing.T) {
	b := NewBuffer(Size{Width: 3, Height: 2})
	es := NewEditState(b)
	es.TypeChar('a')
	es.Caret.Position = Position{X: 0, Y: 1}
	es.TypeChar('b')

	es.Caret.Position = Position{X: 0, Y: 1}
	es.CaretLF()
	assert.Equal(t, 1, es.Caret.Position.Y, "caret stays on the bottom margin")
	assert.Equal(t, rune('b'), b.GetChar(Position{X: 0, Y: 0}).Ch, "content scrolled up")
}

func TestCaretTabForward(t *testing.T) {
	b := NewBuffer(Size{Width: 32, Height: 1})
	es := NewEditState(b)
	es.CaretTabForward()
	assert.Equal(t, 8, es.Caret.Position.X)
	es.CaretTabForward()
	assert.Equal(t, 16, es.Caret.Position.X)
}

func TestCaretHomeEolCR(t *testing.T) {
	b := NewBuffer(Size{Width: 10, Height: 2})
	es := NewEditState(b)
	for _, r := range "abc" {
		es.TypeChar(r)
	}
	es.CaretEol()
	assert.Equal(t, 2, es.Caret.Position.X)
	es.CaretHome()
	assert.Equal(t, 0, es.Caret.Position.X)

	es.Caret.Position = Position{X: 5, Y: 0}
	es.CaretCR()
	assert.Equal(t, 0, es.Caret.Position.X)
}

func TestCaretBackspaceBlanksCell(t *testing.T) {
	b := NewBuffer(Size{Width: 10, Height: 1})
	es := NewEditState(b)
	es.TypeChar('a')
	es.TypeChar('b')
	es.CaretBackspace()
	assert.Equal(t, Position{X: 1, Y: 0}, es.Caret.Position)
	assert.Equal(t, rune(' '), b.GetChar(Position{X: 1, Y: 0}).Ch)
	assert.Equal(t, rune('a'), b.GetChar(Position{X: 0, Y: 0}).Ch)
}

func TestCaretDeleteShiftsRowLeft(t *testing.T) {
	b := NewBuffer(Size{Width: 10, Height: 1})
	es := NewEditState(b)
	for _, r := range "abc" {
		es.TypeChar(r)
	}
	es.Caret.Position = Position{X: 0, Y: 0}
	es.CaretDelete()
	assert.Equal(t, rune('b'), b.GetChar(Position{X: 0, Y: 0}).Ch)
	assert.Equal(t, rune('c'), b.GetChar(Position{X: 1, Y: 0}).Ch)
}

func TestTypeCharInsertModeShiftsRight(t *testing.T) {
	b := NewBuffer(Size{Width: 5, Height: 1})
	es := NewEditState(b)
	for _, r := range "abc" {
		es.TypeChar(r)
	}
	es.Caret.Position = Position{X: 0, Y: 0}
	es.ToggleInsertMode()
	require.True(t, es.Caret.Insert)
	es.TypeChar('X')

	assert.Equal(t, rune('X'), b.GetChar(Position{X: 0, Y: 0}).Ch)
	assert.Equal(t, rune('a'), b.GetChar(Position{X: 1, Y: 0}).Ch)
	assert.Equal(t, rune('c'), b.GetChar(Position{X: 3, Y: 0}).Ch)
}

func TestCaretReverseLFScrollsDownAtTop(t *testing.T) {
	b := NewBuffer(Size{Width: 3, Height: 3})
	es := NewEditState(b)
	es.TypeChar('a')
	es.Caret.Position = Position{}
	es.CaretReverseLF()
	assert.Equal(t, 0, es.Caret.Position.Y)
	assert.Equal(t, rune('a'), b.GetChar(Position{X: 0, Y: 1}).Ch, "top-margin reverse LF scrolls content down")
}

func TestCaretMovementDoesNotRecordUndo(t *testing.T) {
	b := NewBuffer(Size{Width: 10, Height: 5})
	es := NewEditState(b)
	es.CaretRight()
	es.CaretDown()
	es.CaretTabForward()
	assert.False(t, es.CanUndo())
}

func TestCharCellWidthClasses(t *testing.T) {
	assert.Equal(t, 1, CharCellWidth('A'))
	assert.Equal(t, 1, CharCellWidth('é'))
	assert.Equal(t, 2, CharCellWidth('漢'))
	assert.Equal(t, 2, CharCellWidth('ア'))
	assert.Equal(t, 2, CharCellWidth('Ａ'), "fullwidth latin is two cells")
	assert.Equal(t, 0, CharCellWidth('́'), "combining acute occupies no cell")
	assert.Equal(t, 0, CharCellWidth('‍'), "zero-width joiner occupies no cell")
	assert.True(t, IsCombiningMark('́'))
	assert.False(t, IsCombiningMark('x'))
}

func TestTypeCharWideGlyphAdvancesTwoCells(t *testing.T) {
	b := NewBuffer(Size{Width: 8, Height: 1})
	es := NewEditState(b)
	es.TypeChar('漢')
	assert.Equal(t, 2, es.Caret.Position.X)
	assert.Equal(t, rune('漢'), b.GetChar(Position{0, 0}).Ch)
	assert.False(t, b.GetChar(Position{1, 0}).IsVisible(), "the spacer cell stays default")

	es.TypeChar('x')
	assert.Equal(t, rune('x'), b.GetChar(Position{2, 0}).Ch)
}

func TestTypeCharCombiningMarkDoesNotAdvance(t *testing.T) {
	b := NewBuffer(Size{Width: 4, Height: 1})
	es := NewEditState(b)
	es.TypeChar('e')
	es.TypeChar('́')
	assert.Equal(t, 1, es.Caret.Position.X)
	es.TypeChar('f')
	assert.Equal(t, rune('f'), b.GetChar(Position{1, 0}).Ch)
}
