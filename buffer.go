package icy

import "sync"

// Buffer is the root entity: a stack of Layers sharing one Palette, font
// table, terminal state and tag list. It is safe for concurrent readers
// while a writer holds the exclusive lock (mutation requires
// exclusive access, render/serialization require at minimum a shared
// snapshot view).
type Buffer struct {
	mu sync.RWMutex

	size  Size
	layers []*Layer

	palette *Palette
	fonts   map[uint8]*BitFont

	terminalState *TerminalState

	tags     []Tag
	ShowTags bool

	bufferType BufferType

	UseLetterSpacing bool
	UseAspectRatio   bool

	iceMode     IceMode
	paletteMode PaletteMode
	fontMode    FontMode

	sauceMeta *SauceMetadata

	version uint64
}

// SauceMetadata is the opaque SAUCE comment-metadata record carried
// alongside a buffer. format/icydraw
// reads and writes it verbatim; the core does not interpret most fields
// beyond the font-name codepage resolution in codepage.go.
type SauceMetadata struct {
	Title, Author, Group string
	Comments              []string
	FontName              string
	Flags                 byte
	TInfo                 [4]uint16
	DataType, FileType     byte
}

// NewBuffer returns an editable buffer of the given size: one blank
// Normal layer, the default 16-color palette, and default terminal state.
func NewBuffer(size Size) *Buffer {
	b := &Buffer{
		size:          size,
		palette:       NewPalette(),
		fonts:         make(map[uint8]*BitFont),
		terminalState: NewTerminalState(size),
		bufferType:    BufferTypeCP437,
		paletteMode:   PaletteModeFixed16,
	}
	b.fonts[0] = BuiltinFallbackFont()
	b.layers = append(b.layers, NewLayer("Background", size))
	return b
}

// Version returns the monotonically increasing mutation counter. Renderers
// may read it without the lock as a hint; actual decisions still
// require a locked read of the data itself.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// bumpVersion increments the version counter. Callers must hold b.mu for
// writing.
func (b *Buffer) bumpVersion() { b.version++ }

// GetWidth returns the buffer's declared width.
func (b *Buffer) GetWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size.Width
}

// GetHeight returns the buffer's declared height.
func (b *Buffer) GetHeight() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size.Height
}

// Size returns the declared (width,height).
func (b *Buffer) Size() Size {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// GetLineCount returns max(height, highest non-empty row + 1) across all
// layers.
func (b *Buffer) GetLineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := b.size.Height
	for _, l := range b.layers {
		if c := l.GetLineCount(); c > n {
			n = c
		}
	}
	return n
}

// SetSize resizes the buffer itself (not its layers — ResizeBuffer in the
// undo engine additionally resizes layers that should track the buffer).
func (b *Buffer) SetSize(s Size) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = s
	b.terminalState.resetTabStops(s.Width)
	b.bumpVersion()
}

// Layers returns the layer stack, bottom-first. Callers must not mutate
// the returned slice directly except through EditState, which records undo.
func (b *Buffer) Layers() []*Layer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.layers
}

// LayerAt returns the layer at index i, or nil if out of range.
func (b *Buffer) LayerAt(i int) *Layer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= len(b.layers) {
		return nil
	}
	return b.layers[i]
}

// Palette returns the active palette.
func (b *Buffer) Palette() *Palette {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.palette
}

// SetPalette replaces the active palette wholesale (SwitchPalette undo op).
func (b *Buffer) SetPalette(p *Palette) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.palette = p
	b.bumpVersion()
}

// GetFont returns the font installed at page, or nil.
func (b *Buffer) GetFont(page uint8) *BitFont {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fonts[page]
}

// SetFont installs font at page, replacing any previous occupant.
func (b *Buffer) SetFont(page uint8, font *BitFont) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fonts[page] = font
	b.bumpVersion()
}

// RemoveFont removes and returns the font at page, or nil if absent.
func (b *Buffer) RemoveFont(page uint8) *BitFont {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := b.fonts[page]
	delete(b.fonts, page)
	b.bumpVersion()
	return f
}

// FontIter returns a snapshot of the font table as page->font pairs.
func (b *Buffer) FontIter() map[uint8]*BitFont {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[uint8]*BitFont, len(b.fonts))
	for k, v := range b.fonts {
		out[k] = v
	}
	return out
}

// TerminalState returns the buffer-wide emulation state.
func (b *Buffer) TerminalState() *TerminalState { return b.terminalState }

// BufferType returns the byte<->rune codepage selector.
func (b *Buffer) BufferType() BufferType {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bufferType
}

// SetBufferType changes the codepage selector.
func (b *Buffer) SetBufferType(t BufferType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bufferType = t
	b.bumpVersion()
}

// IceMode, PaletteMode and FontMode report the buffer-wide mode tags.
func (b *Buffer) IceMode() IceMode         { b.mu.RLock(); defer b.mu.RUnlock(); return b.iceMode }
func (b *Buffer) PaletteModeTag() PaletteMode { b.mu.RLock(); defer b.mu.RUnlock(); return b.paletteMode }
func (b *Buffer) FontModeTag() FontMode     { b.mu.RLock(); defer b.mu.RUnlock(); return b.fontMode }

// SetIceMode, SetPaletteModeTag and SetFontModeTag change the buffer-wide
// mode tags (mirrored by TerminalState-facing setters used by parsers).
func (b *Buffer) SetIceMode(m IceMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.iceMode = m
	b.bumpVersion()
}

func (b *Buffer) SetPaletteModeTag(m PaletteMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paletteMode = m
	b.bumpVersion()
}

func (b *Buffer) SetFontModeTag(m FontMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fontMode = m
	b.bumpVersion()
}

// SauceMeta returns the opaque SAUCE metadata, or nil if none is set.
func (b *Buffer) SauceMeta() *SauceMetadata {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sauceMeta
}

// SetSauceMeta replaces the SAUCE metadata (SetSauceData undo op).
func (b *Buffer) SetSauceMeta(m *SauceMetadata) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sauceMeta = m
	b.bumpVersion()
}

// Tags returns the tag list.
func (b *Buffer) Tags() []Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tags
}

// SetTags replaces the tag list wholesale, used by format/icydraw when
// loading a TAG chunk.
func (b *Buffer) SetTags(tags []Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tags = tags
	b.bumpVersion()
}

// ReplaceLayers replaces the entire layer stack wholesale, used by
// format/icydraw when assembling a Buffer from LAYER_<i> chunks. Unlike
// AddLayer/RemoveLayer on EditState this is not an undoable edit: it is
// the bulk-load primitive a freshly decoded buffer is built from, before
// any EditState wraps it.
func (b *Buffer) ReplaceLayers(layers []*Layer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layers = layers
	b.bumpVersion()
}

// GetChar composites all visible layers at pos, respecting each layer's
// offset, role, mode and alpha, bottom layer first.
func (b *Buffer) GetChar(pos Position) AttributedChar {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.compositeLocked(pos)
}

func (b *Buffer) compositeLocked(pos Position) AttributedChar {
	result := Invisible()
	haveResult := false
	for _, l := range b.layers {
		if !l.Properties.Visible || l.Role == RoleImage {
			continue
		}
		local := Position{X: pos.X - l.Offset.X, Y: pos.Y - l.Offset.Y}
		cell := l.CharAt(local)
		if !cell.IsVisible() {
			continue
		}
		switch l.Properties.Mode {
		case ModeChars:
			if !haveResult {
				result = cell
			} else {
				result.Ch = cell.Ch
			}
		case ModeAttributes:
			if !haveResult {
				result = cell
			} else {
				result.Attribute = cell.Attribute
			}
		default:
			result = cell
		}
		haveResult = true
	}
	return result
}

// WithLayerMutNoUndo runs fn with exclusive access to layer i, bypassing
// the undo stack. The version counter is bumped on exit, so renderers
// observing only the version still see the change (the interior-mutability
// escape hatch: versioning is pushed by the owner, layers hold no
// back-pointer to their buffer).
func (b *Buffer) WithLayerMutNoUndo(i int, fn func(*Layer)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(i)
	if l == nil {
		return
	}
	fn(l)
	b.bumpVersion()
}

// WithBufferMutNoUndo runs fn with exclusive access to the whole buffer,
// bypassing the undo stack, bumping the version on exit.
func (b *Buffer) WithBufferMutNoUndo(fn func(*Buffer)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
	b.bumpVersion()
}

// IsLineEmpty reports whether row y is transparent across every layer.
func (b *Buffer) IsLineEmpty(row int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for x := 0; x < b.size.Width; x++ {
		if b.compositeLocked(Position{X: x, Y: row}).IsVisible() {
			return false
		}
	}
	return true
}
