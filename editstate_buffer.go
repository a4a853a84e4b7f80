package icy

// ResizeBuffer changes the buffer's declared size, along with every layer
// whose size currently tracks the canvas.
func (es *EditState) ResizeBuffer(newSize Size) error {
	es.Buffer.mu.RLock()
	oldSize := es.Buffer.size
	es.Buffer.mu.RUnlock()
	op := &ResizeBufferOperation{baseOp: dataOp, OldSize: oldSize, NewSize: newSize}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// Crop trims every layer to rect and shrinks the buffer to match.
func (es *EditState) Crop(rect Rectangle) error {
	op := &CropOperation{baseOp: dataOp, Rect: rect}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// RotateLayer flips the current layer 180 degrees.
func (es *EditState) RotateLayer() error {
	op := &RotateLayerOperation{baseOp: dataOp, Index: es.CurrentLayer}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// ScrollWholeLayerUp scrolls the current layer's entire content up by one
// row, wrapping the top row to the bottom.
func (es *EditState) ScrollWholeLayerUp() error {
	op := &scrollWholeLayerOperation{baseOp: dataOp, desc: "Scroll Layer Up", Index: es.CurrentLayer, Down: false}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// ScrollWholeLayerDown scrolls the current layer's entire content down by
// one row, wrapping the bottom row to the top.
func (es *EditState) ScrollWholeLayerDown() error {
	op := &scrollWholeLayerOperation{baseOp: dataOp, desc: "Scroll Layer Down", Index: es.CurrentLayer, Down: true}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}
