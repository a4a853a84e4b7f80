package icy

// Caret movement helpers. These move the caret without recording undo
// steps: caret position is transient terminal state, not document data
// (MoveCaretTo is the recorded variant, used when a caret move must
// participate in an atomic group). Wrapping and margin behavior follow
// the buffer's current terminal modes.

func (es *EditState) margins() (top, bottom, left, right int) {
	ts := es.Buffer.TerminalState()
	top, bottom = ts.MarginTop, ts.MarginBottom
	left, right = 0, es.Buffer.GetWidth()-1
	if ts.DECModeEnabled(DECModeLeftRightMargin) {
		left, right = ts.MarginLeft, ts.MarginRight
	}
	if bottom <= 0 || bottom >= es.Buffer.GetHeight() {
		bottom = es.Buffer.GetHeight() - 1
	}
	return top, bottom, left, right
}

// CaretLeft moves one cell left, stopping at the left margin.
func (es *EditState) CaretLeft() {
	_, _, left, _ := es.margins()
	if es.Caret.Position.X > left {
		es.Caret.Position.X--
	}
}

// CaretRight moves one cell right. With auto-wrap enabled the caret wraps
// to the start of the next line instead of sticking at the right margin.
func (es *EditState) CaretRight() {
	_, _, left, right := es.margins()
	if es.Caret.Position.X < right {
		es.Caret.Position.X++
		return
	}
	if es.Buffer.TerminalState().DECModeEnabled(DECModeAutoWrap) {
		es.Caret.Position.X = left
		es.CaretLF()
	}
}

// CaretUp moves one row up, stopping at the top margin.
func (es *EditState) CaretUp() {
	top, _, _, _ := es.margins()
	if es.Caret.Position.Y > top {
		es.Caret.Position.Y--
	}
}

// CaretDown moves one row down, stopping at the bottom margin.
func (es *EditState) CaretDown() {
	_, bottom, _, _ := es.margins()
	if es.Caret.Position.Y < bottom {
		es.Caret.Position.Y++
	}
}

// CaretHome moves to the left margin on the current row.
func (es *EditState) CaretHome() {
	_, _, left, _ := es.margins()
	es.Caret.Position.X = left
}

// CaretEol moves to the last populated column of the current row (or the
// right margin if the row is full).
func (es *EditState) CaretEol() {
	_, _, _, right := es.margins()
	x := right
	if l, err := es.currentLayer(); err == nil {
		y := es.Caret.Position.Y
		if y >= 0 && y < len(l.Lines) {
			if n := len(l.Lines[y]); n-1 < x {
				x = n - 1
			}
		} else {
			x = 0
		}
	}
	if x < 0 {
		x = 0
	}
	es.Caret.Position.X = x
}

// CaretCR is carriage return: column back to the left margin.
func (es *EditState) CaretCR() {
	es.CaretHome()
}

// CaretLF is line feed: down one row, scrolling the region up when the
// caret sits on the bottom margin.
func (es *EditState) CaretLF() {
	_, bottom, _, _ := es.margins()
	if es.Caret.Position.Y >= bottom {
		es.Buffer.ScrollUp(es.CurrentLayer, 1)
		return
	}
	es.Caret.Position.Y++
}

// CaretNextLine is CR followed by LF.
func (es *EditState) CaretNextLine() {
	es.CaretCR()
	es.CaretLF()
}

// CaretReverseLF moves one row up, scrolling the region down when the
// caret sits on the top margin (ESC M).
func (es *EditState) CaretReverseLF() {
	top, _, _, _ := es.margins()
	if es.Caret.Position.Y <= top {
		es.Buffer.ScrollDown(es.CurrentLayer, 1)
		return
	}
	es.Caret.Position.Y--
}

// CaretBackspace moves left one cell and blanks the cell under the caret,
// without joining lines.
func (es *EditState) CaretBackspace() {
	_, _, left, _ := es.margins()
	if es.Caret.Position.X <= left {
		return
	}
	es.Caret.Position.X--
	l, err := es.currentLayer()
	if err != nil {
		return
	}
	es.Buffer.mu.Lock()
	l.SetChar(es.Caret.Position, AttributedChar{Ch: ' ', Attribute: es.Caret.Attribute})
	es.Buffer.bumpVersion()
	es.Buffer.mu.Unlock()
}

// CaretDelete removes the cell under the caret, shifting the rest of the
// row left by one.
func (es *EditState) CaretDelete() {
	l, err := es.currentLayer()
	if err != nil {
		return
	}
	pos := es.Caret.Position
	es.Buffer.mu.Lock()
	if pos.Y >= 0 && pos.Y < len(l.Lines) {
		line := &l.Lines[pos.Y]
		if pos.X >= 0 && pos.X < len(*line) {
			*line = append((*line)[:pos.X], (*line)[pos.X+1:]...)
			es.Buffer.bumpVersion()
		}
	}
	es.Buffer.mu.Unlock()
}

// ToggleInsertMode flips the caret's insert/replace mode.
func (es *EditState) ToggleInsertMode() {
	es.Caret.Insert = !es.Caret.Insert
}

// CaretTabForward moves to the next tab stop, or the right margin when no
// stop remains.
func (es *EditState) CaretTabForward() {
	ts := es.Buffer.TerminalState()
	es.Caret.Position.X = ts.NextTabStop(es.Caret.Position.X, es.Buffer.GetWidth())
}

// TypeChar writes ch at the caret with the caret's current attribute and
// font page, honoring insert mode, then advances right by the glyph's
// cell width (wrapping per auto-wrap): wide East-Asian glyphs advance two
// cells, leaving a default spacer cell. Combining marks occupy no cell of
// their own; with one rune per cell there is nothing to attach them to,
// so they are dropped rather than mis-advancing the caret. This is the
// printable path terminal dialect appliers use; it does not record undo.
func (es *EditState) TypeChar(ch rune) {
	width := CharCellWidth(ch)
	if width == 0 {
		return
	}
	l, err := es.currentLayer()
	if err != nil {
		return
	}
	attr := es.Caret.Attribute
	attr.FontPage = es.Caret.FontPage
	cell := AttributedChar{Ch: ch, Attribute: attr}
	pos := es.Caret.Position
	es.Buffer.mu.Lock()
	if es.Caret.Insert {
		if pos.Y >= 0 && pos.Y < len(l.Lines) && pos.X >= 0 && pos.X < len(l.Lines[pos.Y]) {
			line := &l.Lines[pos.Y]
			*line = append(*line, Invisible())
			copy((*line)[pos.X+1:], (*line)[pos.X:])
			w := l.Size().Width
			if len(*line) > w {
				*line = (*line)[:w]
			}
		}
	}
	l.SetChar(pos, cell)
	es.Buffer.bumpVersion()
	es.Buffer.mu.Unlock()
	for i := 0; i < width; i++ {
		es.CaretRight()
	}
}
