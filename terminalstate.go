package icy

// ScrollingMode selects how the buffer scrolls when content exceeds its
// margins.
type ScrollingMode int

const (
	ScrollingSmooth ScrollingMode = iota
	ScrollingFast
)

// IceMode controls whether the high-intensity background bit is
// available by repurposing the blink attribute bit.
type IceMode int

const (
	IceModeBlink IceMode = iota // blink bit behaves as blink
	IceModeIce                  // blink bit behaves as high-intensity background
)

// FontMode controls how font-page selection sequences are interpreted.
type FontMode int

const (
	FontModeUnicode FontMode = iota
	FontModeSingle            // one font page, selection sequences ignored
	FontModeSauce             // font page chosen by SAUCE font name
)

// CursorShape is the caret rendering shape.
type CursorShape int

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeUnderline
	CursorShapeBar
)

// DECMode is a DEC private mode flag (CSI ? Pn h/l).
type DECMode int

const (
	DECModeCursorVisible DECMode = iota
	DECModeAutoWrap
	DECModeOriginMode
	DECModeReverseVideo
	DECModeInsertReplace
	DECModeLeftRightMargin
	DECModeVT200Mouse
	DECModeBracketedPaste
)

// savedCursor is the DECSC/DECRC snapshot.
type savedCursor struct {
	valid     bool
	position  Position
	attribute TextAttribute
	fontPage  uint8
	originMode bool
}

// TerminalState carries the buffer-wide emulation state that is not per
// layer: margins, tab stops, modes and the DEC-mode flag set.
type TerminalState struct {
	MarginTop, MarginBottom int
	MarginLeft, MarginRight int
	Scrolling               ScrollingMode
	TabStops                []int
	BaudEmulation           int // bytes/second; 0 = unlimited
	decModes                map[DECMode]bool
	saved                   savedCursor
	FontSlotSelection       uint8 // outcome of the last font-selection sequence
}

// NewTerminalState returns terminal state for a buffer of the given size,
// with margins spanning the full buffer and the default tab stops every
// 8 columns ({0, 8, 16, 24, ...}).
func NewTerminalState(size Size) *TerminalState {
	ts := &TerminalState{
		MarginTop:    0,
		MarginBottom: size.Height - 1,
		MarginLeft:   0,
		MarginRight:  size.Width - 1,
		decModes:     make(map[DECMode]bool),
	}
	ts.decModes[DECModeCursorVisible] = true
	ts.decModes[DECModeAutoWrap] = true
	ts.resetTabStops(size.Width)
	return ts
}

func (ts *TerminalState) resetTabStops(width int) {
	ts.TabStops = ts.TabStops[:0]
	for c := 0; c < width; c += 8 {
		ts.TabStops = append(ts.TabStops, c)
	}
}

// RemoveTabStop removes the tab stop at col, if present, keeping the
// remaining list strictly increasing.
func (ts *TerminalState) RemoveTabStop(col int) {
	for i, c := range ts.TabStops {
		if c == col {
			ts.TabStops = append(ts.TabStops[:i], ts.TabStops[i+1:]...)
			return
		}
	}
}

// AddTabStop inserts col into the tab-stop list, keeping it sorted and
// deduplicated.
func (ts *TerminalState) AddTabStop(col int) {
	for _, c := range ts.TabStops {
		if c == col {
			return
		}
	}
	i := 0
	for i < len(ts.TabStops) && ts.TabStops[i] < col {
		i++
	}
	ts.TabStops = append(ts.TabStops, 0)
	copy(ts.TabStops[i+1:], ts.TabStops[i:])
	ts.TabStops[i] = col
}

// ClearAllTabStops empties the tab-stop list (CSI 3 g).
func (ts *TerminalState) ClearAllTabStops() { ts.TabStops = ts.TabStops[:0] }

// NextTabStop returns the first tab stop strictly greater than col, or
// width-1 if none remains.
func (ts *TerminalState) NextTabStop(col, width int) int {
	for _, c := range ts.TabStops {
		if c > col {
			return c
		}
	}
	return width - 1
}

// SetMargins sets the scrolling region (DECSTBM/DECSLRM).
func (ts *TerminalState) SetMargins(top, bottom, left, right int) {
	ts.MarginTop, ts.MarginBottom = top, bottom
	ts.MarginLeft, ts.MarginRight = left, right
}

// SetDECMode sets or clears a DEC private mode flag.
func (ts *TerminalState) SetDECMode(m DECMode, on bool) { ts.decModes[m] = on }

// DECModeEnabled reports a DEC private mode flag's current value.
func (ts *TerminalState) DECModeEnabled(m DECMode) bool { return ts.decModes[m] }

// SaveCursor captures the given caret state for a later RestoreCursor.
func (ts *TerminalState) SaveCursor(pos Position, attr TextAttribute, fontPage uint8) {
	ts.saved = savedCursor{valid: true, position: pos, attribute: attr, fontPage: fontPage, originMode: ts.DECModeEnabled(DECModeOriginMode)}
}

// RestoreCursor returns the last saved caret state, and whether one exists.
func (ts *TerminalState) RestoreCursor() (Position, TextAttribute, uint8, bool) {
	s := ts.saved
	return s.position, s.attribute, s.fontPage, s.valid
}

// BaudDelayNanos returns the pacing delay a host should apply before
// feeding the next n bytes to a parser, given BaudEmulation. The core
// never sleeps itself; it only exposes
// the computed delay for a host's own pacing loop.
func (ts *TerminalState) BaudDelayNanos(n int) int64 {
	if ts.BaudEmulation <= 0 {
		return 0
	}
	return int64(n) * 1_000_000_000 / int64(ts.BaudEmulation)
}

// Clone returns an independent copy of the terminal state.
func (ts *TerminalState) Clone() *TerminalState {
	c := &TerminalState{
		MarginTop: ts.MarginTop, MarginBottom: ts.MarginBottom,
		MarginLeft: ts.MarginLeft, MarginRight: ts.MarginRight,
		Scrolling: ts.Scrolling, BaudEmulation: ts.BaudEmulation,
		saved: ts.saved, FontSlotSelection: ts.FontSlotSelection,
		TabStops: append([]int(nil), ts.TabStops...),
		decModes: make(map[DECMode]bool, len(ts.decModes)),
	}
	for k, v := range ts.decModes {
		c.decModes[k] = v
	}
	return c
}
