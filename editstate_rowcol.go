package icy

// InsertRow inserts a blank row at y on the current layer.
func (es *EditState) InsertRow(y int) error {
	op := &InsertRowOperation{baseOp: dataOp, Layer: es.CurrentLayer, Y: y}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// DeleteRow removes row y from the current layer.
func (es *EditState) DeleteRow(y int) error {
	op := &DeleteRowOperation{baseOp: dataOp, Layer: es.CurrentLayer, Y: y}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// InsertColumn inserts a blank column at x on the current layer.
func (es *EditState) InsertColumn(x int) error {
	op := &InsertColumnOperation{baseOp: dataOp, Layer: es.CurrentLayer, X: x}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}

// DeleteColumn removes column x from the current layer.
func (es *EditState) DeleteColumn(x int) error {
	op := &DeleteColumnOperation{baseOp: dataOp, Layer: es.CurrentLayer, X: x}
	if err := op.Redo(es); err != nil {
		return err
	}
	es.pushUndo(op)
	return nil
}
