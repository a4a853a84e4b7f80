package icy

// SetChar writes ch at pos on the current layer, recording an UndoSetChar.
func (es *EditState) SetChar(pos Position, ch AttributedChar) error {
	l, err := es.currentLayer()
	if err != nil {
		return err
	}
	old := l.CharAt(pos)
	if old.Equal(ch) {
		return nil
	}
	es.Buffer.mu.Lock()
	l.SetChar(pos, ch)
	es.Buffer.bumpVersion()
	es.Buffer.mu.Unlock()
	es.pushUndo(&UndoSetChar{baseOp: dataOp, Layer: es.CurrentLayer, Pos: pos, OldValue: old, NewValue: ch})
	return nil
}

// SetCharOnLayer writes ch at pos on an explicit layer index, recording an
// UndoSetChar against that layer (used by parsers targeting a sixel/image
// layer other than the current one).
func (es *EditState) SetCharOnLayer(layer int, pos Position, ch AttributedChar) error {
	es.Buffer.mu.Lock()
	l := es.Buffer.layerLocked(layer)
	if l == nil {
		es.Buffer.mu.Unlock()
		return NewInvalidLayerError(layer)
	}
	old := l.CharAt(pos)
	l.SetChar(pos, ch)
	es.Buffer.bumpVersion()
	es.Buffer.mu.Unlock()
	if old.Equal(ch) {
		return nil
	}
	es.pushUndo(&UndoSetChar{baseOp: dataOp, Layer: layer, Pos: pos, OldValue: old, NewValue: ch})
	return nil
}

// SwapChar exchanges the cells at p1 and p2 on the current layer.
func (es *EditState) SwapChar(p1, p2 Position) error {
	if _, err := es.currentLayer(); err != nil {
		return err
	}
	op := &UndoSwapChar{baseOp: dataOp, Layer: es.CurrentLayer, P1: p1, P2: p2}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// Paste stamps source onto the current layer at pos, recording the
// overwritten region for undo.
func (es *EditState) Paste(pos Position, source *Layer) error {
	if _, err := es.currentLayer(); err != nil {
		return err
	}
	op := &PasteOperation{baseOp: dataOp, Layer: es.CurrentLayer, Pos: pos, Source: source}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// ClearLayer wipes every cell on the current layer, recording its prior
// contents for undo.
func (es *EditState) ClearLayer() error {
	l, err := es.currentLayer()
	if err != nil {
		return err
	}
	old := make([]Line, len(l.Lines))
	for i, ln := range l.Lines {
		old[i] = ln.Clone()
	}
	op := &ClearLayerOperation{baseOp: dataOp, Layer: es.CurrentLayer, OldLines: old}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}
