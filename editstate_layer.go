package icy

// AddLayer inserts a new blank layer titled title at index, pushing the
// current layer down, and makes it current.
func (es *EditState) AddLayer(index int, title string) error {
	l := NewLayer(title, es.Buffer.Size())
	op := &AddLayerOperation{baseOp: dataOp, Index: index, Layer: l}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.CurrentLayer = index
	es.pushUndo(op)
	return nil
}

// AddFloatingLayer inserts layer (already populated, e.g. from a paste or
// an image load) at the top of the stack as the current layer.
func (es *EditState) AddFloatingLayer(layer *Layer) error {
	index := len(es.Buffer.Layers())
	op := &AddLayerOperation{baseOp: dataOp, Index: index, Layer: layer}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.CurrentLayer = index
	es.pushUndo(op)
	return nil
}

// RemoveLayer deletes the layer at index.
func (es *EditState) RemoveLayer(index int) error {
	op := &RemoveLayerOperation{baseOp: dataOp, Index: index}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// RaiseLayer swaps the current layer with the one above it.
func (es *EditState) RaiseLayer() error {
	if es.CurrentLayer+1 >= len(es.Buffer.Layers()) {
		return nil
	}
	op := &swapLayerOperation{baseOp: dataOp, desc: "Raise Layer", A: es.CurrentLayer, B: es.CurrentLayer + 1}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// LowerLayer swaps the current layer with the one below it.
func (es *EditState) LowerLayer() error {
	if es.CurrentLayer <= 0 {
		return nil
	}
	op := &swapLayerOperation{baseOp: dataOp, desc: "Lower Layer", A: es.CurrentLayer, B: es.CurrentLayer - 1}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// ToggleLayerVisibility flips the Visible flag of the layer at index.
func (es *EditState) ToggleLayerVisibility(index int) error {
	op := &ToggleLayerVisibilityOperation{baseOp: selectionOp, Index: index}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// MoveLayer repositions the layer at index to newOffset.
func (es *EditState) MoveLayer(index int, newOffset Position) error {
	es.Buffer.mu.RLock()
	l := es.Buffer.layerLocked(index)
	if l == nil {
		es.Buffer.mu.RUnlock()
		return NewInvalidLayerError(index)
	}
	old := l.Offset
	es.Buffer.mu.RUnlock()
	op := &MoveLayerOperation{baseOp: dataOp, Index: index, OldOff: old, NewOff: newOffset}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// SetLayerSize resizes the layer at index to newSize.
func (es *EditState) SetLayerSize(index int, newSize Size) error {
	es.Buffer.mu.RLock()
	l := es.Buffer.layerLocked(index)
	if l == nil {
		es.Buffer.mu.RUnlock()
		return NewInvalidLayerError(index)
	}
	oldSize := l.Size()
	oldLines := make([]Line, len(l.Lines))
	for i, ln := range l.Lines {
		oldLines[i] = ln.Clone()
	}
	es.Buffer.mu.RUnlock()
	op := &SetLayerSizeOperation{baseOp: dataOp, Index: index, OldSize: oldSize, NewSize: newSize, OldLines: oldLines}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// UpdateLayerProperties replaces the layer at index's Properties wholesale.
func (es *EditState) UpdateLayerProperties(index int, newProps Properties) error {
	es.Buffer.mu.RLock()
	l := es.Buffer.layerLocked(index)
	if l == nil {
		es.Buffer.mu.RUnlock()
		return NewInvalidLayerError(index)
	}
	old := l.Properties.Clone()
	es.Buffer.mu.RUnlock()
	op := &UpdateLayerPropertiesOperation{baseOp: selectionOp, Index: index, OldProps: old, NewProps: newProps}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// MergeLayerDown flattens the current layer into the one below it.
func (es *EditState) MergeLayerDown() error {
	op := &MergeLayerDownOperation{baseOp: dataOp, Index: es.CurrentLayer}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}
