package icy

// SwitchPaletteOperation records replacing the buffer's palette wholesale.
type SwitchPaletteOperation struct {
	baseOp
	Old, New *Palette
}

func (s *SwitchPaletteOperation) Description() string          { return "Switch Palette" }
func (s *SwitchPaletteOperation) OperationType() OperationType { return OperationTypePalette }

func (s *SwitchPaletteOperation) Undo(es *EditState) error { es.Buffer.SetPalette(s.Old); return nil }
func (s *SwitchPaletteOperation) Redo(es *EditState) error { es.Buffer.SetPalette(s.New); return nil }

// SetSauceDataOperation records replacing the buffer's SAUCE metadata.
type SetSauceDataOperation struct {
	baseOp
	Old, New *SauceMetadata
}

func (s *SetSauceDataOperation) Description() string          { return "Set SAUCE Data" }
func (s *SetSauceDataOperation) OperationType() OperationType { return OperationTypeBuffer }

func (s *SetSauceDataOperation) Undo(es *EditState) error { es.Buffer.SetSauceMeta(s.Old); return nil }
func (s *SetSauceDataOperation) Redo(es *EditState) error { es.Buffer.SetSauceMeta(s.New); return nil }

// SetFontOperation records installing or replacing the font at a page.
type SetFontOperation struct {
	baseOp
	Page     uint8
	Old, New *BitFont
}

func (s *SetFontOperation) Description() string          { return "Set Font" }
func (s *SetFontOperation) OperationType() OperationType { return OperationTypeFont }

func (s *SetFontOperation) Undo(es *EditState) error {
	if s.Old == nil {
		es.Buffer.RemoveFont(s.Page)
	} else {
		es.Buffer.SetFont(s.Page, s.Old)
	}
	return nil
}

func (s *SetFontOperation) Redo(es *EditState) error { es.Buffer.SetFont(s.Page, s.New); return nil }

// RemoveFontOperation records removing the font at a page.
type RemoveFontOperation struct {
	baseOp
	Page uint8
	Old  *BitFont
}

func (r *RemoveFontOperation) Description() string          { return "Remove Font" }
func (r *RemoveFontOperation) OperationType() OperationType { return OperationTypeFont }

func (r *RemoveFontOperation) Redo(es *EditState) error {
	r.Old = es.Buffer.RemoveFont(r.Page)
	return nil
}

func (r *RemoveFontOperation) Undo(es *EditState) error {
	if r.Old != nil {
		es.Buffer.SetFont(r.Page, r.Old)
	}
	return nil
}

// SwitchToFontPageOperation records changing a layer's DefaultFontPage
// (used by SwitchToFontPage for the current layer).
type SwitchToFontPageOperation struct {
	baseOp
	Layer    int
	Old, New uint8
}

func (s *SwitchToFontPageOperation) Description() string          { return "Switch Font Page" }
func (s *SwitchToFontPageOperation) OperationType() OperationType { return OperationTypeFont }

func (s *SwitchToFontPageOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(s.Layer)
	if l == nil {
		return NewInvalidLayerError(s.Layer)
	}
	l.DefaultFontPage = s.Old
	b.bumpVersion()
	return nil
}

func (s *SwitchToFontPageOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(s.Layer)
	if l == nil {
		return NewInvalidLayerError(s.Layer)
	}
	l.DefaultFontPage = s.New
	b.bumpVersion()
	return nil
}

// ReplaceFontUsageOperation records remapping every cell on Layer that
// used OldPage to NewPage, used when a font slot is deleted and its
// glyphs need reassigning rather than disappearing.
type ReplaceFontUsageOperation struct {
	baseOp
	Layer            int
	OldPage, NewPage uint8
	touched          []Position
}

func (r *ReplaceFontUsageOperation) Description() string          { return "Replace Font Usage" }
func (r *ReplaceFontUsageOperation) OperationType() OperationType { return OperationTypeFont }

func (r *ReplaceFontUsageOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(r.Layer)
	if l == nil {
		return NewInvalidLayerError(r.Layer)
	}
	r.touched = r.touched[:0]
	for y, line := range l.Lines {
		for x, c := range line {
			if c.Attribute.FontPage == r.OldPage {
				line[x].Attribute.FontPage = r.NewPage
				r.touched = append(r.touched, Position{X: x, Y: y})
			}
		}
	}
	b.bumpVersion()
	return nil
}

func (r *ReplaceFontUsageOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(r.Layer)
	if l == nil {
		return NewInvalidLayerError(r.Layer)
	}
	for _, p := range r.touched {
		if p.Y < len(l.Lines) && p.X < len(l.Lines[p.Y]) {
			l.Lines[p.Y][p.X].Attribute.FontPage = r.OldPage
		}
	}
	b.bumpVersion()
	return nil
}

// flagOperation is the shared shape for the buffer-wide boolean toggles
// (SetUseLetterSpacing, SetUseAspectRatio): get/set closures over the
// specific field plus old/new values.
type flagOperation struct {
	baseOp
	desc     string
	get      func() bool
	set      func(bool)
	old, new bool
}

func (f *flagOperation) Description() string          { return f.desc }
func (f *flagOperation) OperationType() OperationType { return OperationTypeBuffer }
func (f *flagOperation) Undo(es *EditState) error      { f.set(f.old); return nil }
func (f *flagOperation) Redo(es *EditState) error      { f.set(f.new); return nil }

// AddTagOperation records appending a tag.
type AddTagOperation struct {
	baseOp
	Tag Tag
}

func (a *AddTagOperation) Description() string          { return "Add Tag" }
func (a *AddTagOperation) OperationType() OperationType { return OperationTypeTag }

func (a *AddTagOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tags = append(b.tags, a.Tag)
	b.bumpVersion()
	return nil
}

func (a *AddTagOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if n := len(b.tags); n > 0 {
		b.tags = b.tags[:n-1]
	}
	b.bumpVersion()
	return nil
}

// RemoveTagOperation records removing the tag at Index.
type RemoveTagOperation struct {
	baseOp
	Index int
	Tag   Tag
}

func (r *RemoveTagOperation) Description() string          { return "Remove Tag" }
func (r *RemoveTagOperation) OperationType() OperationType { return OperationTypeTag }

func (r *RemoveTagOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.Index < 0 || r.Index >= len(b.tags) {
		return NewOverflowError("tag index out of range")
	}
	r.Tag = b.tags[r.Index]
	b.tags = append(b.tags[:r.Index], b.tags[r.Index+1:]...)
	b.bumpVersion()
	return nil
}

func (r *RemoveTagOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.Index < 0 || r.Index > len(b.tags) {
		return NewOverflowError("tag index out of range")
	}
	b.tags = append(b.tags, Tag{})
	copy(b.tags[r.Index+1:], b.tags[r.Index:])
	b.tags[r.Index] = r.Tag
	b.bumpVersion()
	return nil
}

// UpdateTagOperation records replacing the tag at Index wholesale.
type UpdateTagOperation struct {
	baseOp
	Index    int
	Old, New Tag
}

func (u *UpdateTagOperation) Description() string          { return "Update Tag" }
func (u *UpdateTagOperation) OperationType() OperationType { return OperationTypeTag }

func (u *UpdateTagOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.Index < 0 || u.Index >= len(b.tags) {
		return NewOverflowError("tag index out of range")
	}
	b.tags[u.Index] = u.Old
	b.bumpVersion()
	return nil
}

func (u *UpdateTagOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.Index < 0 || u.Index >= len(b.tags) {
		return NewOverflowError("tag index out of range")
	}
	b.tags[u.Index] = u.New
	b.bumpVersion()
	return nil
}

// ReverseCaretPositionOperation records a caret move, allowing undo of
// navigation when it is grouped inside an AtomicUndo with a data edit
// (e.g. typing a character advances the caret).
type ReverseCaretPositionOperation struct {
	baseOp
	Old, New Position
}

func (r *ReverseCaretPositionOperation) Description() string          { return "Move Caret" }
func (r *ReverseCaretPositionOperation) OperationType() OperationType { return OperationTypeSelection }
func (r *ReverseCaretPositionOperation) Undo(es *EditState) error {
	es.Caret.Position = r.Old
	return nil
}
func (r *ReverseCaretPositionOperation) Redo(es *EditState) error {
	es.Caret.Position = r.New
	return nil
}

// MoveTagOperation records repositioning the tag at Index.
type MoveTagOperation struct {
	baseOp
	Index    int
	Old, New Position
}

func (m *MoveTagOperation) Description() string          { return "Move Tag" }
func (m *MoveTagOperation) OperationType() OperationType { return OperationTypeTag }

func (m *MoveTagOperation) apply(es *EditState, pos Position) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if m.Index < 0 || m.Index >= len(b.tags) {
		return NewOverflowError("tag index out of range")
	}
	b.tags[m.Index].Position = pos
	b.bumpVersion()
	return nil
}

func (m *MoveTagOperation) Undo(es *EditState) error { return m.apply(es, m.Old) }
func (m *MoveTagOperation) Redo(es *EditState) error { return m.apply(es, m.New) }

// LayerChangeOperation records a wholesale rectangular region replacement
// on a layer: unlike PasteOperation it overwrites invisible cells too, so
// Undo is simply stamping the old block back.
type LayerChangeOperation struct {
	baseOp
	Layer    int
	Pos      Position
	Old, New *Layer
}

func (o *LayerChangeOperation) Description() string          { return "Change Layer Region" }
func (o *LayerChangeOperation) OperationType() OperationType { return OperationTypeEditChar }

func (o *LayerChangeOperation) write(es *EditState, block *Layer) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(o.Layer)
	if l == nil {
		return NewInvalidLayerError(o.Layer)
	}
	for y := 0; y < block.Size().Height; y++ {
		for x := 0; x < block.Size().Width; x++ {
			l.SetChar(Position{X: o.Pos.X + x, Y: o.Pos.Y + y}, block.CharAt(Position{X: x, Y: y}))
		}
	}
	b.bumpVersion()
	return nil
}

func (o *LayerChangeOperation) Undo(es *EditState) error { return o.write(es, o.Old) }
func (o *LayerChangeOperation) Redo(es *EditState) error { return o.write(es, o.New) }

// SwitchPaletteModeOperation records a full palette-mode swap: the mode
// tag, the palette table and every layer (already recolored by the
// caller) change together.
type SwitchPaletteModeOperation struct {
	baseOp
	OldMode, NewMode       PaletteMode
	OldPalette, NewPalette *Palette
	OldLayers, NewLayers   []*Layer
}

func (o *SwitchPaletteModeOperation) Description() string          { return "Switch Palette Mode" }
func (o *SwitchPaletteModeOperation) OperationType() OperationType { return OperationTypeBuffer }

func (o *SwitchPaletteModeOperation) apply(es *EditState, mode PaletteMode, p *Palette, layers []*Layer) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paletteMode = mode
	b.palette = p
	if layers != nil {
		b.layers = layers
	}
	b.bumpVersion()
	return nil
}

func (o *SwitchPaletteModeOperation) Undo(es *EditState) error {
	return o.apply(es, o.OldMode, o.OldPalette, o.OldLayers)
}

func (o *SwitchPaletteModeOperation) Redo(es *EditState) error {
	return o.apply(es, o.NewMode, o.NewPalette, o.NewLayers)
}

// SetIceModeOperation records an ice-mode change together with the layer
// set the caller converted (blink bit re-used as bright background).
type SetIceModeOperation struct {
	baseOp
	OldMode, NewMode     IceMode
	OldLayers, NewLayers []*Layer
}

func (o *SetIceModeOperation) Description() string          { return "Set Ice Mode" }
func (o *SetIceModeOperation) OperationType() OperationType { return OperationTypeBuffer }

func (o *SetIceModeOperation) apply(es *EditState, mode IceMode, layers []*Layer) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	b.iceMode = mode
	if layers != nil {
		b.layers = layers
	}
	b.bumpVersion()
	return nil
}

func (o *SetIceModeOperation) Undo(es *EditState) error { return o.apply(es, o.OldMode, o.OldLayers) }
func (o *SetIceModeOperation) Redo(es *EditState) error { return o.apply(es, o.NewMode, o.NewLayers) }
