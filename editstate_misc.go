package icy

// SwitchPalette replaces the buffer's palette wholesale. The undo record
// is a ReversedUndo over a SwitchPaletteOperation built with Old/New
// already swapped, so Redo (the wrapper's Undo) restores the prior
// palette and Undo (the wrapper's Redo) re-applies p — exercising the
// "inverse of an inverse" case ReversedUndo exists for.
func (es *EditState) SwitchPalette(p *Palette) error {
	old := es.Buffer.Palette()
	inner := &SwitchPaletteOperation{baseOp: dataOp, Old: p, New: old}
	op := &ReversedUndo{Inner: inner}
	es.Buffer.SetPalette(p)
	es.pushUndo(op)
	return nil
}

// SwitchPaletteMode swaps the palette mode, the palette table and the
// (caller-recolored) layer set as one step. Passing nil layers keeps the
// current layer stack.
func (es *EditState) SwitchPaletteMode(mode PaletteMode, palette *Palette, layers []*Layer) error {
	b := es.Buffer
	b.mu.RLock()
	oldLayers := append([]*Layer(nil), b.layers...)
	op := &SwitchPaletteModeOperation{
		baseOp:  dataOp,
		OldMode: b.paletteMode, NewMode: mode,
		OldPalette: b.palette, NewPalette: palette,
		OldLayers: oldLayers, NewLayers: layers,
	}
	b.mu.RUnlock()
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	es.dirtyPalette = true
	return nil
}

// SetIceMode changes the blink-bit interpretation, swapping in the
// caller-converted layer set when layers is non-nil.
func (es *EditState) SetIceMode(mode IceMode, layers []*Layer) error {
	b := es.Buffer
	b.mu.RLock()
	oldLayers := append([]*Layer(nil), b.layers...)
	op := &SetIceModeOperation{
		baseOp:  dataOp,
		OldMode: b.iceMode, NewMode: mode,
		OldLayers: oldLayers, NewLayers: layers,
	}
	b.mu.RUnlock()
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// ReplaceRegion overwrites the rectangle at pos on the current layer with
// block's cells wholesale — unlike Paste, invisible block cells overwrite
// too (the brush/tool path; Paste is the clipboard path).
func (es *EditState) ReplaceRegion(pos Position, block *Layer) error {
	l, err := es.currentLayer()
	if err != nil {
		return err
	}
	old := NewLayer("", block.Size())
	for y := 0; y < block.Size().Height; y++ {
		for x := 0; x < block.Size().Width; x++ {
			old.SetChar(Position{X: x, Y: y}, l.CharAt(Position{X: pos.X + x, Y: pos.Y + y}))
		}
	}
	op := &LayerChangeOperation{baseOp: dataOp, Layer: es.CurrentLayer, Pos: pos, Old: old, New: block}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// SetSauceData replaces the buffer's SAUCE metadata.
func (es *EditState) SetSauceData(m *SauceMetadata) error {
	op := &SetSauceDataOperation{baseOp: selectionOp, Old: es.Buffer.SauceMeta(), New: m}
	op.Redo(es)
	es.pushUndo(op)
	return nil
}

// SetFont installs font at page, recording the previous occupant (if any).
func (es *EditState) SetFont(page uint8, font *BitFont) error {
	op := &SetFontOperation{baseOp: dataOp, Page: page, Old: es.Buffer.GetFont(page), New: font}
	op.Redo(es)
	es.pushUndo(op)
	return nil
}

// AddFont installs font at the first unused page at or above page.
func (es *EditState) AddFont(page uint8, font *BitFont) error {
	for es.Buffer.GetFont(page) != nil {
		page++
	}
	return es.SetFont(page, font)
}

// RemoveFont removes the font at page.
func (es *EditState) RemoveFont(page uint8) error {
	op := &RemoveFontOperation{baseOp: dataOp, Page: page}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// SwitchToFontPage changes the current layer's DefaultFontPage.
func (es *EditState) SwitchToFontPage(page uint8) error {
	l, err := es.currentLayer()
	if err != nil {
		return err
	}
	op := &SwitchToFontPageOperation{baseOp: selectionOp, Layer: es.CurrentLayer, Old: l.DefaultFontPage, New: page}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// ChangeFontSlot reassigns every cell on the current layer using oldPage
// to newPage, as part of deleting or consolidating a font slot.
func (es *EditState) ChangeFontSlot(oldPage, newPage uint8) error {
	op := &ReplaceFontUsageOperation{baseOp: dataOp, Layer: es.CurrentLayer, OldPage: oldPage, NewPage: newPage}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// SetUseLetterSpacing toggles the buffer-wide 9th-column letter-spacing flag.
func (es *EditState) SetUseLetterSpacing(v bool) error {
	old := es.Buffer.UseLetterSpacing
	op := &flagOperation{
		baseOp: selectionOp,
		desc:   "Set Letter Spacing",
		set:    func(b bool) { es.Buffer.mu.Lock(); es.Buffer.UseLetterSpacing = b; es.Buffer.bumpVersion(); es.Buffer.mu.Unlock() },
		old:    old, new: v,
	}
	op.Redo(es)
	es.pushUndo(op)
	return nil
}

// SetUseAspectRatio toggles the buffer-wide non-square-pixel correction flag.
func (es *EditState) SetUseAspectRatio(v bool) error {
	old := es.Buffer.UseAspectRatio
	op := &flagOperation{
		baseOp: selectionOp,
		desc:   "Set Aspect Ratio",
		set:    func(b bool) { es.Buffer.mu.Lock(); es.Buffer.UseAspectRatio = b; es.Buffer.bumpVersion(); es.Buffer.mu.Unlock() },
		old:    old, new: v,
	}
	op.Redo(es)
	es.pushUndo(op)
	return nil
}

// AddTag appends tag to the buffer's tag list.
func (es *EditState) AddTag(tag Tag) error {
	op := &AddTagOperation{baseOp: selectionOp, Tag: tag}
	op.Redo(es)
	es.pushUndo(op)
	return nil
}

// RemoveTag deletes the tag at index.
func (es *EditState) RemoveTag(index int) error {
	op := &RemoveTagOperation{baseOp: selectionOp, Index: index}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// UpdateTag replaces the tag at index wholesale.
func (es *EditState) UpdateTag(index int, tag Tag) error {
	es.Buffer.mu.RLock()
	if index < 0 || index >= len(es.Buffer.tags) {
		es.Buffer.mu.RUnlock()
		return NewOverflowError("tag index out of range")
	}
	old := es.Buffer.tags[index]
	es.Buffer.mu.RUnlock()
	op := &UpdateTagOperation{baseOp: selectionOp, Index: index, Old: old, New: tag}
	op.Redo(es)
	es.pushUndo(op)
	return nil
}

// MoveTag repositions the tag at index.
func (es *EditState) MoveTag(index int, pos Position) error {
	es.Buffer.mu.RLock()
	if index < 0 || index >= len(es.Buffer.tags) {
		es.Buffer.mu.RUnlock()
		return NewOverflowError("tag index out of range")
	}
	old := es.Buffer.tags[index].Position
	es.Buffer.mu.RUnlock()
	op := &MoveTagOperation{baseOp: selectionOp, Index: index, Old: old, New: pos}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// SetShowTags toggles buffer-wide tag-preview rendering.
func (es *EditState) SetShowTags(v bool) error {
	old := es.Buffer.ShowTags
	op := &flagOperation{
		baseOp: selectionOp,
		desc:   "Show Tags",
		set:    func(b bool) { es.Buffer.mu.Lock(); es.Buffer.ShowTags = b; es.Buffer.bumpVersion(); es.Buffer.mu.Unlock() },
		old:    old, new: v,
	}
	op.Redo(es)
	es.pushUndo(op)
	return nil
}

// MoveCaretTo moves the caret to pos, recording a ReverseCaretPosition
// step (typically grouped inside an AtomicUndo alongside a data edit).
func (es *EditState) MoveCaretTo(pos Position) {
	op := &ReverseCaretPositionOperation{baseOp: selectionOp, Old: es.Caret.Position, New: pos}
	op.Redo(es)
	es.pushUndo(op)
}
